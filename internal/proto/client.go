package proto

import (
	"context"

	"google.golang.org/grpc"
)

// MailServiceClient is the client API for the ledger service.
type MailServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*RegisterAccountResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SendMail(ctx context.Context, in *SendMailRequest, opts ...grpc.CallOption) (*SendMailResponse, error)
	GetSentMail(ctx context.Context, in *GetSentMailRequest, opts ...grpc.CallOption) (*MailIDsResponse, error)
	GetReceivedMail(ctx context.Context, in *GetReceivedMailRequest, opts ...grpc.CallOption) (*MailIDsResponse, error)
	GetMaskAndClassifier(ctx context.Context, in *GetMaskAndClassifierRequest, opts ...grpc.CallOption) (*GetMaskAndClassifierResponse, error)
	AddContact(ctx context.Context, in *AddContactRequest, opts ...grpc.CallOption) (*AddContactResponse, error)
	GetContacts(ctx context.Context, in *GetContactsRequest, opts ...grpc.CallOption) (*GetContactsResponse, error)
	Tip(ctx context.Context, in *TipRequest, opts ...grpc.CallOption) (*TipResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
}

type mailServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMailServiceClient(cc grpc.ClientConnInterface) MailServiceClient {
	return &mailServiceClient{cc: cc}
}

func invoke[Resp any, PResp message[Resp]](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mailServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MailService_Ping_FullMethodName, in, opts)
}

func (c *mailServiceClient) RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*RegisterAccountResponse, error) {
	return invoke[RegisterAccountResponse](ctx, c.cc, MailService_RegisterAccount_FullMethodName, in, opts)
}

func (c *mailServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MailService_GetSalt_FullMethodName, in, opts)
}

func (c *mailServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MailService_Login_FullMethodName, in, opts)
}

func (c *mailServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MailService_RefreshToken_FullMethodName, in, opts)
}

func (c *mailServiceClient) SendMail(ctx context.Context, in *SendMailRequest, opts ...grpc.CallOption) (*SendMailResponse, error) {
	return invoke[SendMailResponse](ctx, c.cc, MailService_SendMail_FullMethodName, in, opts)
}

func (c *mailServiceClient) GetSentMail(ctx context.Context, in *GetSentMailRequest, opts ...grpc.CallOption) (*MailIDsResponse, error) {
	return invoke[MailIDsResponse](ctx, c.cc, MailService_GetSentMail_FullMethodName, in, opts)
}

func (c *mailServiceClient) GetReceivedMail(ctx context.Context, in *GetReceivedMailRequest, opts ...grpc.CallOption) (*MailIDsResponse, error) {
	return invoke[MailIDsResponse](ctx, c.cc, MailService_GetReceivedMail_FullMethodName, in, opts)
}

func (c *mailServiceClient) GetMaskAndClassifier(ctx context.Context, in *GetMaskAndClassifierRequest, opts ...grpc.CallOption) (*GetMaskAndClassifierResponse, error) {
	return invoke[GetMaskAndClassifierResponse](ctx, c.cc, MailService_GetMaskAndClassifier_FullMethodName, in, opts)
}

func (c *mailServiceClient) AddContact(ctx context.Context, in *AddContactRequest, opts ...grpc.CallOption) (*AddContactResponse, error) {
	return invoke[AddContactResponse](ctx, c.cc, MailService_AddContact_FullMethodName, in, opts)
}

func (c *mailServiceClient) GetContacts(ctx context.Context, in *GetContactsRequest, opts ...grpc.CallOption) (*GetContactsResponse, error) {
	return invoke[GetContactsResponse](ctx, c.cc, MailService_GetContacts_FullMethodName, in, opts)
}

func (c *mailServiceClient) Tip(ctx context.Context, in *TipRequest, opts ...grpc.CallOption) (*TipResponse, error) {
	return invoke[TipResponse](ctx, c.cc, MailService_Tip_FullMethodName, in, opts)
}

func (c *mailServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, MailService_GetBalance_FullMethodName, in, opts)
}
