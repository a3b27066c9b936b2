package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/amail/internal/logging"
	pb "github.com/dmitrijs2005/amail/internal/proto"
	"github.com/dmitrijs2005/amail/internal/server/models"
	"github.com/dmitrijs2005/amail/internal/server/services"
	"google.golang.org/grpc"
)

type ledgerService interface {
	SendMail(ctx context.Context, call models.Call, to, mailID, phrase string) (bool, error)
	SentMail(ctx context.Context, call models.Call) ([]string, error)
	ReceivedMail(ctx context.Context, call models.Call) ([]string, error)
	MaskAndClassifier(ctx context.Context, call models.Call, mailID string) (*models.MailSecret, error)
	AddContact(ctx context.Context, call models.Call, account string) (bool, error)
	Contacts(ctx context.Context, call models.Call) ([]string, error)
	Tip(ctx context.Context, call models.Call, contact string, amount int64) (bool, error)
}

type accountService interface {
	Register(ctx context.Context, name string, salt, verifier []byte) (*models.Account, error)
	GetSalt(ctx context.Context, name string) ([]byte, error)
	Login(ctx context.Context, name string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Balance(ctx context.Context, account string) (int64, error)
}

type GRPCServer struct {
	pb.UnimplementedMailServiceServer
	address   string
	ledger    ledgerService
	accounts  accountService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ls ledgerService, as accountService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		ledger:    ls,
		accounts:  as,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	// registers service
	pb.RegisterMailServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
