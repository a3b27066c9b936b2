package services

import (
	"context"

	"github.com/dmitrijs2005/amail/internal/client/client"
	"github.com/google/uuid"
)

// MailSecret is what the ledger reveals about a mail to its sender and
// recipient.
type MailSecret struct {
	Mask       string
	Classifier []uint32
}

// MailService wraps the ledger calls the CLI makes once logged in.
type MailService interface {
	Send(ctx context.Context, to, mailID, phrase string) (string, bool, error)
	Sent(ctx context.Context) ([]string, error)
	Inbox(ctx context.Context) ([]string, error)
	Secret(ctx context.Context, mailID string) (*MailSecret, error)
	AddContact(ctx context.Context, account string) error
	Contacts(ctx context.Context) ([]string, error)
	Tip(ctx context.Context, contact string, amount int64) error
	Balance(ctx context.Context) (int64, error)
}

type mailService struct {
	client client.Client
	newID  func() string
}

func NewMailService(c client.Client) MailService {
	return &mailService{client: c, newID: uuid.NewString}
}

// Send records the mail on the ledger. An empty mailID is replaced by a
// fresh UUID; the id actually used is returned. The bool is false when
// the id was already taken.
func (m *mailService) Send(ctx context.Context, to, mailID, phrase string) (string, bool, error) {
	if mailID == "" {
		mailID = m.newID()
	}
	ok, err := m.client.SendMail(ctx, to, mailID, phrase)
	if err != nil {
		return "", false, err
	}
	return mailID, ok, nil
}

func (m *mailService) Sent(ctx context.Context) ([]string, error) {
	return m.client.SentMail(ctx)
}

func (m *mailService) Inbox(ctx context.Context) ([]string, error) {
	return m.client.ReceivedMail(ctx)
}

func (m *mailService) Secret(ctx context.Context, mailID string) (*MailSecret, error) {
	mask, classifier, err := m.client.MaskAndClassifier(ctx, mailID)
	if err != nil {
		return nil, err
	}
	return &MailSecret{Mask: mask, Classifier: classifier}, nil
}

func (m *mailService) AddContact(ctx context.Context, account string) error {
	_, err := m.client.AddContact(ctx, account)
	return err
}

func (m *mailService) Contacts(ctx context.Context) ([]string, error) {
	return m.client.Contacts(ctx)
}

// Tip attaches exactly amount as call value, which is what the ledger
// requires of a tip.
func (m *mailService) Tip(ctx context.Context, contact string, amount int64) error {
	_, err := m.client.Tip(ctx, contact, amount, amount)
	return err
}

func (m *mailService) Balance(ctx context.Context) (int64, error) {
	return m.client.Balance(ctx)
}
