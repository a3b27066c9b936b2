package grpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/logging"
	pb "github.com/dmitrijs2005/amail/internal/proto"
	"github.com/dmitrijs2005/amail/internal/server/chain"
	"github.com/dmitrijs2005/amail/internal/server/config"
	"github.com/dmitrijs2005/amail/internal/server/metrics"
	"github.com/dmitrijs2005/amail/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/amail/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, &fakeLedger{}, &fakeAccounts{}, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeLedger{}, &fakeAccounts{}, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startLedger serves real services backed by a temp SQLite ledger over an
// in-memory listener and returns a connected client.
func startLedger(t *testing.T) pb.MailServiceClient {
	t.Helper()

	cfg := config.Config{
		SecretKey:                    "secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: time.Hour,
		ContractAccount:              "amail",
		GenesisBalance:               100,
		RollingStateSeed:             common.DefaultRollingStateSeed,
	}

	db, rm, err := repomanager.Open(repomanager.SQLiteDSNPrefix + filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	clock := chain.ClockFunc(func() int64 { return 0 })
	ledger := services.NewLedgerService(db, rm, clock, &cfg, metrics.New(), logging.Nop{})
	require.NoError(t, ledger.Init(context.Background()))
	accounts := services.NewAccountService(db, rm, &cfg, logging.Nop{})

	srv := NewGRPCServer("bufnet", logging.Nop{}, ledger, accounts, cfg.SecretKey)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewMailServiceClient(conn)
}

func login(t *testing.T, c pb.MailServiceClient, name string) context.Context {
	t.Helper()
	ctx := context.Background()

	verifier := []byte(name + "-verifier")
	_, err := c.RegisterAccount(ctx, &pb.RegisterAccountRequest{Name: name, Salt: []byte("salt"), Verifier: verifier})
	require.NoError(t, err)

	tokens, err := c.Login(ctx, &pb.LoginRequest{Name: name, VerifierCandidate: verifier})
	require.NoError(t, err)

	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, tokens.AccessToken)
}

func TestEndToEnd_MailFlow(t *testing.T) {
	c := startLedger(t)

	bob := login(t, c, "bob")
	eve := login(t, c, "eve")
	mallory := login(t, c, "mallory")

	sent, err := c.SendMail(bob, &pb.SendMailRequest{To: "eve", MailId: "mail1", Phrase: "konnichiwa"})
	require.NoError(t, err)
	assert.True(t, sent.Ok)

	again, err := c.SendMail(bob, &pb.SendMailRequest{To: "eve", MailId: "mail1", Phrase: "konnichiwa"})
	require.NoError(t, err)
	assert.False(t, again.Ok)

	outbox, err := c.GetSentMail(bob, &pb.GetSentMailRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mail1"}, outbox.MailIds)

	inbox, err := c.GetReceivedMail(eve, &pb.GetReceivedMailRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mail1"}, inbox.MailIds)

	secret, err := c.GetMaskAndClassifier(eve, &pb.GetMaskAndClassifierRequest{MailId: "mail1"})
	require.NoError(t, err)
	assert.Equal(t, "konnnonceecno0nichiwa", secret.Mask)
	assert.Equal(t, []uint32{2, 0, 1}, secret.Classifier)

	_, err = c.GetMaskAndClassifier(mallory, &pb.GetMaskAndClassifierRequest{MailId: "mail1"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = c.GetMaskAndClassifier(eve, &pb.GetMaskAndClassifierRequest{MailId: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.SendMail(bob, &pb.SendMailRequest{To: "eve", MailId: "mail2", Phrase: "hi"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.GetSentMail(context.Background(), &pb.GetSentMailRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEndToEnd_ContactsAndTip(t *testing.T) {
	c := startLedger(t)

	bob := login(t, c, "bob")
	eve := login(t, c, "eve")

	added, err := c.AddContact(bob, &pb.AddContactRequest{Account: "eve"})
	require.NoError(t, err)
	assert.True(t, added.Ok)

	contacts, err := c.GetContacts(bob, &pb.GetContactsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"eve"}, contacts.Accounts)

	tip, err := c.Tip(bob, &pb.TipRequest{Contact: "eve", Amount: 30, Value: 30})
	require.NoError(t, err)
	assert.True(t, tip.Ok)

	bobBalance, err := c.GetBalance(bob, &pb.GetBalanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(70), bobBalance.Amount)

	eveBalance, err := c.GetBalance(eve, &pb.GetBalanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(130), eveBalance.Amount)

	_, err = c.Tip(bob, &pb.TipRequest{Contact: "eve", Amount: 30, Value: 20})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = c.Tip(bob, &pb.TipRequest{Contact: "eve", Amount: 500, Value: 500})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	bobBalance, err = c.GetBalance(bob, &pb.GetBalanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(70), bobBalance.Amount)
}

func TestEndToEnd_AccountLifecycle(t *testing.T) {
	c := startLedger(t)
	ctx := context.Background()

	resp, err := c.RegisterAccount(ctx, &pb.RegisterAccountRequest{Name: "bob", Salt: []byte("s"), Verifier: []byte("v")})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Name)
	assert.Equal(t, int64(100), resp.Balance)

	_, err = c.RegisterAccount(ctx, &pb.RegisterAccountRequest{Name: "bob", Salt: []byte("s"), Verifier: []byte("v")})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = c.RegisterAccount(ctx, &pb.RegisterAccountRequest{Name: "amail", Salt: []byte("s"), Verifier: []byte("v")})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	salt, err := c.GetSalt(ctx, &pb.GetSaltRequest{Name: "bob"})
	require.NoError(t, err)
	assert.Equal(t, []byte("s"), salt.Salt)

	_, err = c.Login(ctx, &pb.LoginRequest{Name: "bob", VerifierCandidate: []byte("wrong")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	tokens, err := c.Login(ctx, &pb.LoginRequest{Name: "bob", VerifierCandidate: []byte("v")})
	require.NoError(t, err)

	refreshed, err := c.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = c.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	pong, err := c.Ping(ctx, &pb.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)
}
