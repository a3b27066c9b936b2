package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/amail/internal/client/services"
)

func stubInputs(t *testing.T, text string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type fakeAuth struct {
	regUser    string
	regPass    []byte
	regBalance int64
	regErr     error

	loginUser string
	loginPass []byte
	loginErr  error

	resumeName string
	resumeErr  error

	logoutCalled bool
	logoutErr    error

	pingErr error

	closeCalled bool
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) (int64, error) {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regBalance, f.regErr
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginErr
}

func (f *fakeAuth) Resume(_ context.Context) (string, error) { return f.resumeName, f.resumeErr }

func (f *fakeAuth) Logout(_ context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeAuth) Close(_ context.Context) error {
	f.closeCalled = true
	return nil
}

var _ services.AuthService = (*fakeAuth)(nil)

type fakeMail struct {
	sendArgs [3]string
	sendID   string
	sendOK   bool

	ids      []string
	secret   *services.MailSecret
	secretID string
	contact  string
	tipArgs  struct {
		contact string
		amount  int64
	}
	tipCalled bool
	balance   int64

	err error
}

func (f *fakeMail) Send(_ context.Context, to, mailID, phrase string) (string, bool, error) {
	f.sendArgs = [3]string{to, mailID, phrase}
	id := mailID
	if id == "" {
		id = f.sendID
	}
	return id, f.sendOK, f.err
}

func (f *fakeMail) Sent(_ context.Context) ([]string, error)  { return f.ids, f.err }
func (f *fakeMail) Inbox(_ context.Context) ([]string, error) { return f.ids, f.err }

func (f *fakeMail) Secret(_ context.Context, mailID string) (*services.MailSecret, error) {
	f.secretID = mailID
	return f.secret, f.err
}

func (f *fakeMail) AddContact(_ context.Context, account string) error {
	f.contact = account
	return f.err
}

func (f *fakeMail) Contacts(_ context.Context) ([]string, error) { return f.ids, f.err }

func (f *fakeMail) Tip(_ context.Context, contact string, amount int64) error {
	f.tipCalled = true
	f.tipArgs.contact, f.tipArgs.amount = contact, amount
	return f.err
}

func (f *fakeMail) Balance(_ context.Context) (int64, error) { return f.balance, f.err }

var _ services.MailService = (*fakeMail)(nil)
