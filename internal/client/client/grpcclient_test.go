package client

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/amail/internal/common"
	pb "github.com/dmitrijs2005/amail/internal/proto"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	lastRefreshTokenReq *pb.RefreshTokenRequest
	lastGetSaltReq      *pb.GetSaltRequest
	lastLoginReq        *pb.LoginRequest
	lastRegisterReq     *pb.RegisterAccountRequest
	lastSendReq         *pb.SendMailRequest
	lastMaskReq         *pb.GetMaskAndClassifierRequest
	lastAddContactReq   *pb.AddContactRequest
	lastTipReq          *pb.TipRequest

	refreshTokenResp *pb.RefreshTokenResponse
	pingResp         *pb.PingResponse
	getSaltResp      *pb.GetSaltResponse
	loginResp        *pb.LoginResponse
	registerResp     *pb.RegisterAccountResponse
	maskResp         *pb.GetMaskAndClassifierResponse
	ids              []string
	ok               bool
	amount           int64

	err error
}

func (f *fakePB) Ping(ctx context.Context, in *pb.PingRequest, opts ...grpc.CallOption) (*pb.PingResponse, error) {
	return f.pingResp, f.err
}
func (f *fakePB) RegisterAccount(ctx context.Context, in *pb.RegisterAccountRequest, opts ...grpc.CallOption) (*pb.RegisterAccountResponse, error) {
	f.lastRegisterReq = in
	return f.registerResp, f.err
}
func (f *fakePB) GetSalt(ctx context.Context, in *pb.GetSaltRequest, opts ...grpc.CallOption) (*pb.GetSaltResponse, error) {
	f.lastGetSaltReq = in
	return f.getSaltResp, f.err
}
func (f *fakePB) Login(ctx context.Context, in *pb.LoginRequest, opts ...grpc.CallOption) (*pb.LoginResponse, error) {
	f.lastLoginReq = in
	return f.loginResp, f.err
}
func (f *fakePB) RefreshToken(ctx context.Context, in *pb.RefreshTokenRequest, opts ...grpc.CallOption) (*pb.RefreshTokenResponse, error) {
	f.lastRefreshTokenReq = in
	return f.refreshTokenResp, f.err
}
func (f *fakePB) SendMail(ctx context.Context, in *pb.SendMailRequest, opts ...grpc.CallOption) (*pb.SendMailResponse, error) {
	f.lastSendReq = in
	return &pb.SendMailResponse{Ok: f.ok}, f.err
}
func (f *fakePB) GetSentMail(ctx context.Context, in *pb.GetSentMailRequest, opts ...grpc.CallOption) (*pb.MailIDsResponse, error) {
	return &pb.MailIDsResponse{MailIds: f.ids}, f.err
}
func (f *fakePB) GetReceivedMail(ctx context.Context, in *pb.GetReceivedMailRequest, opts ...grpc.CallOption) (*pb.MailIDsResponse, error) {
	return &pb.MailIDsResponse{MailIds: f.ids}, f.err
}
func (f *fakePB) GetMaskAndClassifier(ctx context.Context, in *pb.GetMaskAndClassifierRequest, opts ...grpc.CallOption) (*pb.GetMaskAndClassifierResponse, error) {
	f.lastMaskReq = in
	return f.maskResp, f.err
}
func (f *fakePB) AddContact(ctx context.Context, in *pb.AddContactRequest, opts ...grpc.CallOption) (*pb.AddContactResponse, error) {
	f.lastAddContactReq = in
	return &pb.AddContactResponse{Ok: f.ok}, f.err
}
func (f *fakePB) GetContacts(ctx context.Context, in *pb.GetContactsRequest, opts ...grpc.CallOption) (*pb.GetContactsResponse, error) {
	return &pb.GetContactsResponse{Accounts: f.ids}, f.err
}
func (f *fakePB) Tip(ctx context.Context, in *pb.TipRequest, opts ...grpc.CallOption) (*pb.TipResponse, error) {
	f.lastTipReq = in
	return &pb.TipResponse{Ok: f.ok}, f.err
}
func (f *fakePB) GetBalance(ctx context.Context, in *pb.GetBalanceRequest, opts ...grpc.CallOption) (*pb.GetBalanceResponse, error) {
	return &pb.GetBalanceResponse{Amount: f.amount}, f.err
}

/*************
 * accessTokenInterceptor tests
 *************/

func TestInterceptor_RefreshesTokenOnExpiredAndRetries(t *testing.T) {
	f := &fakePB{
		refreshTokenResp: &pb.RefreshTokenResponse{AccessToken: "A2", RefreshToken: "R2"},
	}
	c := &GRPCClient{
		client:       f,
		accessToken:  "A1",
		refreshToken: "R1",
	}

	callCount := 0
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		callCount++
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.AccessTokenHeaderName)
		require.Len(t, toks, 1)

		if callCount == 1 {
			require.Equal(t, "A1", toks[0])
			return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		require.Equal(t, "A2", toks[0])
		return nil
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.NoError(t, err)
	require.Equal(t, 2, callCount)
	require.Equal(t, "A2", c.accessToken)
	require.Equal(t, "R2", c.CurrentRefreshToken())
	require.Equal(t, "R1", f.lastRefreshTokenReq.RefreshToken)
}

func TestInterceptor_NoTokenNoHeader(t *testing.T) {
	c := &GRPCClient{}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.AccessTokenHeaderName))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_NoRefreshIfNoRefreshToken(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{
		client:      f,
		accessToken: "A1",
	}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
	require.Nil(t, f.lastRefreshTokenReq)
}

func TestInterceptor_RefreshFailureReturned(t *testing.T) {
	f := &fakePB{err: status.Error(codes.Unauthenticated, "unauthorized")}
	c := &GRPCClient{client: f, accessToken: "A1", refreshToken: "R1"}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.Equal(t, "A1", c.accessToken)
}

func TestInterceptor_IgnoresOtherErrors(t *testing.T) {
	c := &GRPCClient{accessToken: "X"}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Internal, "boom")
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
}

func TestInterceptor_UnauthenticatedButDifferentMessage_NoRefresh(t *testing.T) {
	c := &GRPCClient{accessToken: "X", refreshToken: "R"}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, "some other reason")
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
}

/*************
 * mapError tests
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.Equal(t, ErrUnauthorized, c.mapError(status.Error(codes.Unauthenticated, "x")))
	require.Equal(t, ErrForbidden, c.mapError(status.Error(codes.PermissionDenied, "x")))
	require.Equal(t, ErrNotFound, c.mapError(status.Error(codes.NotFound, "x")))
	require.Equal(t, ErrAlreadyExists, c.mapError(status.Error(codes.AlreadyExists, "x")))
	require.ErrorIs(t, c.mapError(status.Error(codes.InvalidArgument, "x")), ErrInvalidInput)
	require.ErrorIs(t, c.mapError(status.Error(codes.FailedPrecondition, "x")), ErrRejected)
	require.ErrorIs(t, c.mapError(status.Error(codes.Aborted, "x")), ErrRejected)
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.Unavailable, "x")))
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.DeadlineExceeded, "x")))
	require.NoError(t, c.mapError(nil))
	e := errors.New("plain")
	require.ErrorContains(t, c.mapError(e), "rpc error:")
}

/*************
 * call tests
 *************/

func TestPing(t *testing.T) {
	c := &GRPCClient{client: &fakePB{pingResp: &pb.PingResponse{Status: "OK"}}}
	require.NoError(t, c.Ping(context.Background()))

	c = &GRPCClient{client: &fakePB{pingResp: &pb.PingResponse{Status: "NOT_OK"}}}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c = &GRPCClient{client: &fakePB{err: status.Error(codes.Unavailable, "down")}}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestAccountCalls(t *testing.T) {
	f := &fakePB{
		registerResp: &pb.RegisterAccountResponse{Name: "bob", Balance: 10000},
		getSaltResp:  &pb.GetSaltResponse{Salt: []byte{1, 2, 3}},
		loginResp:    &pb.LoginResponse{AccessToken: "A", RefreshToken: "R"},
	}
	c := &GRPCClient{client: f, timeout: time.Second}
	ctx := context.Background()

	balance, err := c.Register(ctx, "bob", []byte{1}, []byte{2})
	require.NoError(t, err)
	require.Equal(t, int64(10000), balance)
	require.Equal(t, "bob", f.lastRegisterReq.Name)
	require.Equal(t, []byte{1}, f.lastRegisterReq.Salt)
	require.Equal(t, []byte{2}, f.lastRegisterReq.Verifier)

	salt, err := c.GetSalt(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, salt)
	require.Equal(t, "bob", f.lastGetSaltReq.Name)

	require.NoError(t, c.Login(ctx, "bob", []byte{9}))
	require.Equal(t, "A", c.accessToken)
	require.Equal(t, "R", c.CurrentRefreshToken())
	require.Equal(t, []byte{9}, f.lastLoginReq.VerifierCandidate)

	c.Logout()
	require.Empty(t, c.accessToken)
	require.Empty(t, c.CurrentRefreshToken())
}

func TestResume(t *testing.T) {
	f := &fakePB{refreshTokenResp: &pb.RefreshTokenResponse{AccessToken: "A2", RefreshToken: "R2"}}
	c := &GRPCClient{client: f}

	require.NoError(t, c.Resume(context.Background(), "R1"))
	require.Equal(t, "R1", f.lastRefreshTokenReq.RefreshToken)
	require.Equal(t, "A2", c.accessToken)
	require.Equal(t, "R2", c.CurrentRefreshToken())

	f.err = status.Error(codes.Unauthenticated, "unauthorized")
	require.ErrorIs(t, c.Resume(context.Background(), "R2"), ErrUnauthorized)
}

func TestMailCalls(t *testing.T) {
	f := &fakePB{
		ok:       true,
		ids:      []string{"m1"},
		maskResp: &pb.GetMaskAndClassifierResponse{Mask: "mask", Classifier: []uint32{2, 0, 1}},
		amount:   7,
	}
	c := &GRPCClient{client: f}
	ctx := context.Background()

	ok, err := c.SendMail(ctx, "eve", "m1", "konnichiwa")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, &pb.SendMailRequest{To: "eve", MailId: "m1", Phrase: "konnichiwa"}, f.lastSendReq)

	sent, err := c.SentMail(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"m1"}, sent)

	received, err := c.ReceivedMail(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"m1"}, received)

	mask, classifier, err := c.MaskAndClassifier(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "mask", mask)
	require.Equal(t, []uint32{2, 0, 1}, classifier)
	require.Equal(t, "m1", f.lastMaskReq.MailId)

	ok, err = c.AddContact(ctx, "eve")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "eve", f.lastAddContactReq.Account)

	contacts, err := c.Contacts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"m1"}, contacts)

	ok, err = c.Tip(ctx, "eve", 5, 5)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, &pb.TipRequest{Contact: "eve", Amount: 5, Value: 5}, f.lastTipReq)

	balance, err := c.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7), balance)
}

func TestMailCalls_MapErrors(t *testing.T) {
	c := &GRPCClient{client: &fakePB{err: status.Error(codes.PermissionDenied, "unauthorized")}}
	ctx := context.Background()

	_, _, err := c.MaskAndClassifier(ctx, "m1")
	require.ErrorIs(t, err, ErrForbidden)

	c = &GRPCClient{client: &fakePB{err: status.Error(codes.FailedPrecondition, "attached value does not match amount")}}
	_, err = c.Tip(ctx, "eve", 5, 4)
	require.ErrorIs(t, err, ErrRejected)
	require.ErrorContains(t, err, "attached value")
}

/*************
 * end to end over bufconn
 *************/

type expiringServer struct {
	pb.UnimplementedMailServiceServer
}

func (expiringServer) RefreshToken(ctx context.Context, in *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	if in.RefreshToken != "R1" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return &pb.RefreshTokenResponse{AccessToken: "fresh", RefreshToken: "R2"}, nil
}

func (expiringServer) GetBalance(ctx context.Context, in *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	if toks := md.Get(common.AccessTokenHeaderName); len(toks) == 0 || toks[0] != "fresh" {
		return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	return &pb.GetBalanceResponse{Amount: 42}, nil
}

func TestGRPCClient_RefreshOverTheWire(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterMailServiceServer(srv, expiringServer{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c := &GRPCClient{endpointURL: "passthrough:///bufnet", timeout: 5 * time.Second}
	require.NoError(t, c.InitGRPCClient(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})))
	t.Cleanup(func() { _ = c.Close() })

	c.setTokens("stale", "R1")

	amount, err := c.Balance(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), amount)
	require.Equal(t, "R2", c.CurrentRefreshToken())
}

/*************
 * session file
 *************/

func TestInitDatabase_CreatesMetadataTable(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='metadata'`).Scan(&n))
	require.Equal(t, 1, n)

	require.NoError(t, RunMigrations(ctx, db))
}

func TestInitDatabase_BadPath(t *testing.T) {
	_, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "missing", "session.db"))
	require.Error(t, err)
}
