package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/amail/internal/client/client"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Send(ctx context.Context, args []string) error { return f.record("send", args) }
func (f *fakeExec) Sent(ctx context.Context) error                { return f.record("sent", nil) }
func (f *fakeExec) Inbox(ctx context.Context) error               { return f.record("inbox", nil) }
func (f *fakeExec) Mask(ctx context.Context, args []string) error { return f.record("mask", args) }
func (f *fakeExec) AddContact(ctx context.Context, args []string) error {
	return f.record("addcontact", args)
}
func (f *fakeExec) Contacts(ctx context.Context) error           { return f.record("contacts", nil) }
func (f *fakeExec) Tip(ctx context.Context, args []string) error { return f.record("tip", args) }
func (f *fakeExec) Balance(ctx context.Context) error            { return f.record("balance", nil) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func runLines(exec execIface, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runLines(exec,
		"help",
		"login",
		"help",
		"send eve m1",
		"sent",
		"inbox",
		"mask m1",
		"addcontact eve",
		"contacts",
		"tip eve 30",
		"balance",
		"foobar",
		"logout",
		"exit",
		"balance",
	)

	require.Equal(t, []string{
		"login", "send", "sent", "inbox", "mask", "addcontact", "contacts", "tip", "balance", "logout",
	}, exec.calls)
	require.Equal(t, []string{"eve", "m1"}, exec.args[1])
	require.Equal(t, []string{"m1"}, exec.args[4])
	require.Equal(t, []string{"eve", "30"}, exec.args[7])

	require.Contains(t, *out, "Available commands: register, login, exit")
	require.Contains(t, *out, "Unknown command: foobar")
	require.Contains(t, *out, "Bye!")
	require.Contains(t, *out, "amail status> ")
}

func TestRunREPL_SessionCommandsNeedLogin(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runLines(exec, "send eve", "balance", "whatever")

	require.Empty(t, exec.calls)
	require.Contains(t, *out, "Please log in first")
	require.Contains(t, *out, "Unknown command: whatever")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runLines(exec, "", "   ", "balance")

	require.Equal(t, []string{"balance"}, exec.calls)
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{client.ErrUnavailable, "Server unavailable, try again later"},
		{client.ErrForbidden, "Access denied"},
		{client.ErrNotFound, "Not found"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out := captureOutput(t)
			exec := &fakeExec{loggedIn: true, err: tt.err}
			runLines(exec, "balance")
			require.Contains(t, *out, tt.want)
		})
	}
}

func TestRunREPL_UsageErrorIsSilent(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{loggedIn: true, err: errUsage}
	runLines(exec, "tip eve")

	for _, line := range *out {
		require.NotContains(t, line, "Error")
	}
}
