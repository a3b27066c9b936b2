package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "amail.v1.MailService"

const (
	MailService_Ping_FullMethodName                 = "/" + ServiceName + "/Ping"
	MailService_RegisterAccount_FullMethodName      = "/" + ServiceName + "/RegisterAccount"
	MailService_GetSalt_FullMethodName              = "/" + ServiceName + "/GetSalt"
	MailService_Login_FullMethodName                = "/" + ServiceName + "/Login"
	MailService_RefreshToken_FullMethodName         = "/" + ServiceName + "/RefreshToken"
	MailService_SendMail_FullMethodName             = "/" + ServiceName + "/SendMail"
	MailService_GetSentMail_FullMethodName          = "/" + ServiceName + "/GetSentMail"
	MailService_GetReceivedMail_FullMethodName      = "/" + ServiceName + "/GetReceivedMail"
	MailService_GetMaskAndClassifier_FullMethodName = "/" + ServiceName + "/GetMaskAndClassifier"
	MailService_AddContact_FullMethodName           = "/" + ServiceName + "/AddContact"
	MailService_GetContacts_FullMethodName          = "/" + ServiceName + "/GetContacts"
	MailService_Tip_FullMethodName                  = "/" + ServiceName + "/Tip"
	MailService_GetBalance_FullMethodName           = "/" + ServiceName + "/GetBalance"
)

// MailServiceServer is the server API for the ledger service.
type MailServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SendMail(context.Context, *SendMailRequest) (*SendMailResponse, error)
	GetSentMail(context.Context, *GetSentMailRequest) (*MailIDsResponse, error)
	GetReceivedMail(context.Context, *GetReceivedMailRequest) (*MailIDsResponse, error)
	GetMaskAndClassifier(context.Context, *GetMaskAndClassifierRequest) (*GetMaskAndClassifierResponse, error)
	AddContact(context.Context, *AddContactRequest) (*AddContactResponse, error)
	GetContacts(context.Context, *GetContactsRequest) (*GetContactsResponse, error)
	Tip(context.Context, *TipRequest) (*TipResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
}

// UnimplementedMailServiceServer answers every call with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedMailServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedMailServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedMailServiceServer) RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error) {
	return nil, unimplemented("RegisterAccount")
}
func (UnimplementedMailServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, unimplemented("GetSalt")
}
func (UnimplementedMailServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedMailServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedMailServiceServer) SendMail(context.Context, *SendMailRequest) (*SendMailResponse, error) {
	return nil, unimplemented("SendMail")
}
func (UnimplementedMailServiceServer) GetSentMail(context.Context, *GetSentMailRequest) (*MailIDsResponse, error) {
	return nil, unimplemented("GetSentMail")
}
func (UnimplementedMailServiceServer) GetReceivedMail(context.Context, *GetReceivedMailRequest) (*MailIDsResponse, error) {
	return nil, unimplemented("GetReceivedMail")
}
func (UnimplementedMailServiceServer) GetMaskAndClassifier(context.Context, *GetMaskAndClassifierRequest) (*GetMaskAndClassifierResponse, error) {
	return nil, unimplemented("GetMaskAndClassifier")
}
func (UnimplementedMailServiceServer) AddContact(context.Context, *AddContactRequest) (*AddContactResponse, error) {
	return nil, unimplemented("AddContact")
}
func (UnimplementedMailServiceServer) GetContacts(context.Context, *GetContactsRequest) (*GetContactsResponse, error) {
	return nil, unimplemented("GetContacts")
}
func (UnimplementedMailServiceServer) Tip(context.Context, *TipRequest) (*TipResponse, error) {
	return nil, unimplemented("Tip")
}
func (UnimplementedMailServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, unimplemented("GetBalance")
}

// message constrains a type parameter to pointers to message structs.
type message[T any] interface {
	*T
	Message
}

func unary[Req any, PReq message[Req], Resp any](name string, call func(MailServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(MailServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// MailService_ServiceDesc describes amail.v1.MailService for grpc.Server.
var MailService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MailServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", MailServiceServer.Ping),
		unary("RegisterAccount", MailServiceServer.RegisterAccount),
		unary("GetSalt", MailServiceServer.GetSalt),
		unary("Login", MailServiceServer.Login),
		unary("RefreshToken", MailServiceServer.RefreshToken),
		unary("SendMail", MailServiceServer.SendMail),
		unary("GetSentMail", MailServiceServer.GetSentMail),
		unary("GetReceivedMail", MailServiceServer.GetReceivedMail),
		unary("GetMaskAndClassifier", MailServiceServer.GetMaskAndClassifier),
		unary("AddContact", MailServiceServer.AddContact),
		unary("GetContacts", MailServiceServer.GetContacts),
		unary("Tip", MailServiceServer.Tip),
		unary("GetBalance", MailServiceServer.GetBalance),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "amail.proto",
}

func RegisterMailServiceServer(s grpc.ServiceRegistrar, srv MailServiceServer) {
	s.RegisterService(&MailService_ServiceDesc, srv)
}
