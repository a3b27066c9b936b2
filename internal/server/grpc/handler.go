package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/amail/internal/common"
	pb "github.com/dmitrijs2005/amail/internal/proto"
	"github.com/dmitrijs2005/amail/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorInvalidPhrase):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorTransferFailed):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, common.ErrorValueMismatch), errors.Is(err, common.ErrorInsufficientFunds):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) call(ctx context.Context, value int64) (models.Call, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return models.Call{}, status.Error(codes.Unauthenticated, "missing token")
	}
	return models.Call{Caller: account, Value: value}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) RegisterAccount(ctx context.Context, req *pb.RegisterAccountRequest) (*pb.RegisterAccountResponse, error) {

	s.logger.Info(ctx, "Registration request", "account", req.Name)

	account, err := s.accounts.Register(ctx, req.Name, req.Salt, req.Verifier)
	if err != nil {
		if !errors.Is(err, common.ErrorAlreadyExists) && !errors.Is(err, common.ErrorValidation) {
			s.logger.Error(ctx, "registration failed", "error", err)
		}
		return nil, toStatus(err)
	}

	balance, err := s.accounts.Balance(ctx, account.Name)
	if err != nil {
		s.logger.Error(ctx, "reading balance failed", "error", err)
		return nil, toStatus(err)
	}

	return &pb.RegisterAccountResponse{Name: account.Name, Balance: balance}, nil

}

func (s *GRPCServer) GetSalt(ctx context.Context, req *pb.GetSaltRequest) (*pb.GetSaltResponse, error) {

	result, err := s.accounts.GetSalt(ctx, req.Name)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &pb.GetSaltResponse{Salt: result}, nil

}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	tokens, err := s.accounts.Login(ctx, req.Name, req.VerifierCandidate)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {

	tokens, err := s.accounts.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		return nil, toStatus(err)
	}

	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) SendMail(ctx context.Context, req *pb.SendMailRequest) (*pb.SendMailResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	ok, err := s.ledger.SendMail(ctx, call, req.To, req.MailId, req.Phrase)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.SendMailResponse{Ok: ok}, nil
}

func (s *GRPCServer) GetSentMail(ctx context.Context, req *pb.GetSentMailRequest) (*pb.MailIDsResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	ids, err := s.ledger.SentMail(ctx, call)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.MailIDsResponse{MailIds: ids}, nil
}

func (s *GRPCServer) GetReceivedMail(ctx context.Context, req *pb.GetReceivedMailRequest) (*pb.MailIDsResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	ids, err := s.ledger.ReceivedMail(ctx, call)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.MailIDsResponse{MailIds: ids}, nil
}

func (s *GRPCServer) GetMaskAndClassifier(ctx context.Context, req *pb.GetMaskAndClassifierRequest) (*pb.GetMaskAndClassifierResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	secret, err := s.ledger.MaskAndClassifier(ctx, call, req.MailId)
	if err != nil {
		return nil, toStatus(err)
	}

	classifier := make([]uint32, len(secret.Classifier))
	for i, c := range secret.Classifier {
		classifier[i] = uint32(c)
	}

	return &pb.GetMaskAndClassifierResponse{Mask: secret.Mask, Classifier: classifier}, nil
}

func (s *GRPCServer) AddContact(ctx context.Context, req *pb.AddContactRequest) (*pb.AddContactResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	ok, err := s.ledger.AddContact(ctx, call, req.Account)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.AddContactResponse{Ok: ok}, nil
}

func (s *GRPCServer) GetContacts(ctx context.Context, req *pb.GetContactsRequest) (*pb.GetContactsResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	list, err := s.ledger.Contacts(ctx, call)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.GetContactsResponse{Accounts: list}, nil
}

func (s *GRPCServer) Tip(ctx context.Context, req *pb.TipRequest) (*pb.TipResponse, error) {
	call, err := s.call(ctx, req.Value)
	if err != nil {
		return nil, err
	}

	ok, err := s.ledger.Tip(ctx, call, req.Contact, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.TipResponse{Ok: ok}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	call, err := s.call(ctx, 0)
	if err != nil {
		return nil, err
	}

	amount, err := s.accounts.Balance(ctx, call.Caller)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.GetBalanceResponse{Amount: amount}, nil
}
