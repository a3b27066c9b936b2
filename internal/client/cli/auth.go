package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/amail/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an account name and password and creates
// the account on the ledger. The new account's balance is printed on
// success. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter account name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	balance, err := a.authService.Register(ctx, userName, password)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Account %s registered, balance %d", userName, balance))
	return nil
}

// Login prompts the user for credentials and opens a session. The session
// is saved so the next run can resume it without asking again.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter account name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	a.setMode(ModeOnline)
	printlnFn("Login successful")
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	return nil
}
