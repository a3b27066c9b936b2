package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/amail/internal/client/client"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

// ---- fake client ----

type fakeClient struct {
	CloseErr error
	closed   bool

	RegisterRet int64
	RegisterErr error

	GetSaltRet []byte
	GetSaltErr error

	LoginErr  error
	ResumeErr error
	PingErr   error

	refreshToken string
	// token the server hands out on Login and Resume
	IssuedToken string

	SendOK  bool
	IDs     []string
	Mask    string
	Class   []uint32
	Amount  int64
	CallErr error

	LastRegisterName     string
	LastRegisterSalt     []byte
	LastRegisterVerifier []byte
	LastGetSaltName      string
	LastLoginName        string
	LastLoginVerifier    []byte
	LastResumeToken      string
	LastSend             [3]string
	LastMailID           string
	LastContact          string
	LastTip              [2]int64
}

func (f *fakeClient) Close() error {
	f.closed = true
	return f.CloseErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Register(ctx context.Context, name string, salt []byte, verifier []byte) (int64, error) {
	f.LastRegisterName = name
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterVerifier = append([]byte(nil), verifier...)
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, name string) ([]byte, error) {
	f.LastGetSaltName = name
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, name string, verifier []byte) error {
	f.LastLoginName = name
	f.LastLoginVerifier = append([]byte(nil), verifier...)
	if f.LoginErr == nil {
		f.refreshToken = f.IssuedToken
	}
	return f.LoginErr
}

func (f *fakeClient) Resume(ctx context.Context, refreshToken string) error {
	f.LastResumeToken = refreshToken
	if f.ResumeErr == nil {
		f.refreshToken = f.IssuedToken
	}
	return f.ResumeErr
}

func (f *fakeClient) CurrentRefreshToken() string { return f.refreshToken }

func (f *fakeClient) Logout() { f.refreshToken = "" }

func (f *fakeClient) SendMail(ctx context.Context, to, mailID, phrase string) (bool, error) {
	f.LastSend = [3]string{to, mailID, phrase}
	return f.SendOK, f.CallErr
}

func (f *fakeClient) SentMail(ctx context.Context) ([]string, error) { return f.IDs, f.CallErr }

func (f *fakeClient) ReceivedMail(ctx context.Context) ([]string, error) { return f.IDs, f.CallErr }

func (f *fakeClient) MaskAndClassifier(ctx context.Context, mailID string) (string, []uint32, error) {
	f.LastMailID = mailID
	return f.Mask, f.Class, f.CallErr
}

func (f *fakeClient) AddContact(ctx context.Context, account string) (bool, error) {
	f.LastContact = account
	return true, f.CallErr
}

func (f *fakeClient) Contacts(ctx context.Context) ([]string, error) { return f.IDs, f.CallErr }

func (f *fakeClient) Tip(ctx context.Context, contact string, amount, value int64) (bool, error) {
	f.LastContact = contact
	f.LastTip = [2]int64{amount, value}
	return f.CallErr == nil, f.CallErr
}

func (f *fakeClient) Balance(ctx context.Context) (int64, error) { return f.Amount, f.CallErr }

var _ client.Client = (*fakeClient)(nil)
