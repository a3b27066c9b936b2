package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var errUsage = errors.New("wrong arguments")

// Send records a mail to args[0]. The mail id is args[1] when given,
// otherwise a fresh one is generated. The phrase is asked for interactively.
func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		printlnFn("Usage: send <to> [mail id]")
		return errUsage
	}
	to := args[0]
	mailID := ""
	if len(args) == 2 {
		mailID = args[1]
	}

	phrase, err := getSimpleText(a.reader, "Enter phrase", os.Stdout)
	if err != nil {
		return err
	}

	id, ok, err := a.mailService.Send(ctx, to, mailID, phrase)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn(fmt.Sprintf("Mail id %s is already taken, nothing sent", id))
		return nil
	}
	printlnFn(fmt.Sprintf("Mail %s sent to %s", id, to))
	return nil
}

func (a *App) Sent(ctx context.Context) error {
	ids, err := a.mailService.Sent(ctx)
	if err != nil {
		return err
	}
	printList(ids)
	return nil
}

func (a *App) Inbox(ctx context.Context) error {
	ids, err := a.mailService.Inbox(ctx)
	if err != nil {
		return err
	}
	printList(ids)
	return nil
}

// Mask prints the masked phrase and classifier of a mail the caller sent
// or received.
func (a *App) Mask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: mask <mail id>")
		return errUsage
	}

	secret, err := a.mailService.Secret(ctx, args[0])
	if err != nil {
		return err
	}

	printlnFn("Mask:       " + secret.Mask)
	printlnFn("Classifier: " + formatClassifier(secret.Classifier))
	return nil
}

func (a *App) AddContact(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: addcontact <account>")
		return errUsage
	}
	if err := a.mailService.AddContact(ctx, args[0]); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s added to contacts", args[0]))
	return nil
}

func (a *App) Contacts(ctx context.Context) error {
	contacts, err := a.mailService.Contacts(ctx)
	if err != nil {
		return err
	}
	printList(contacts)
	return nil
}

// Tip transfers args[1] units from the caller's balance to contact args[0].
func (a *App) Tip(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: tip <contact> <amount>")
		return errUsage
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount < 0 {
		printlnFn("Amount must be a non-negative integer")
		return errUsage
	}

	if err := a.mailService.Tip(ctx, args[0], amount); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Tipped %d to %s", amount, args[0]))
	return nil
}

func (a *App) Balance(ctx context.Context) error {
	balance, err := a.mailService.Balance(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Balance: %d", balance))
	return nil
}

func printList(items []string) {
	if len(items) == 0 {
		printlnFn("(empty)")
		return
	}
	for _, item := range items {
		printlnFn(item)
	}
}

func formatClassifier(c []uint32) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
