package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/amail/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Sent(ctx context.Context) error
	Inbox(ctx context.Context) error
	Mask(ctx context.Context, args []string) error
	AddContact(ctx context.Context, args []string) error
	Contacts(ctx context.Context) error
	Tip(ctx context.Context, args []string) error
	Balance(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the AMail CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit". Commands that need a session are refused until
// the user logs in.
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  send <to> [id]        record a mail, the phrase is prompted for
//	  sent, inbox           list mail ids
//	  mask <id>             show mask and classifier of a mail
//	  addcontact <account>  add to the contact list
//	  contacts              list contacts
//	  tip <contact> <n>     transfer n units to a contact
//	  balance               show own balance
//	  logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("amail %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: send, sent, inbox, mask, addcontact, contacts, tip, balance, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			report(a.Register(ctx))
			continue

		case "login":
			report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if isSessionCommand(cmd) {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "send":
			report(a.Send(ctx, args))
		case "sent":
			report(a.Sent(ctx))
		case "inbox":
			report(a.Inbox(ctx))
		case "mask":
			report(a.Mask(ctx, args))
		case "addcontact":
			report(a.AddContact(ctx, args))
		case "contacts":
			report(a.Contacts(ctx))
		case "tip":
			report(a.Tip(ctx, args))
		case "balance":
			report(a.Balance(ctx))
		case "logout":
			report(a.Logout(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isSessionCommand(cmd string) bool {
	switch cmd {
	case "send", "sent", "inbox", "mask", "addcontact", "contacts", "tip", "balance", "logout":
		return true
	}
	return false
}

// report prints a command error in user terms. Usage errors were already
// explained by the command itself.
func report(err error) {
	switch {
	case err == nil, errors.Is(err, errUsage):
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	case errors.Is(err, client.ErrForbidden):
		printlnFn("Access denied")
	case errors.Is(err, client.ErrNotFound):
		printlnFn("Not found")
	default:
		printlnFn("Error:", err.Error())
	}
}
