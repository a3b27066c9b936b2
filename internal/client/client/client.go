package client

import (
	"context"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, name string, salt []byte, verifier []byte) (int64, error)
	GetSalt(ctx context.Context, name string) ([]byte, error)
	Login(ctx context.Context, name string, verifier []byte) error
	Resume(ctx context.Context, refreshToken string) error
	CurrentRefreshToken() string
	Logout()

	SendMail(ctx context.Context, to, mailID, phrase string) (bool, error)
	SentMail(ctx context.Context) ([]string, error)
	ReceivedMail(ctx context.Context) ([]string, error)
	MaskAndClassifier(ctx context.Context, mailID string) (string, []uint32, error)
	AddContact(ctx context.Context, account string) (bool, error)
	Contacts(ctx context.Context) ([]string, error)
	Tip(ctx context.Context, contact string, amount, value int64) (bool, error)
	Balance(ctx context.Context) (int64, error)
}
