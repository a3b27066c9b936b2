// Package mailindex keeps the per-account sent and received sequences of
// mail ids. Entries are append-only; order is the order of appends.
package mailindex

import (
	"context"

	"github.com/dmitrijs2005/amail/internal/server/models"
)

type Repository interface {
	// Append adds mailID to the end of account's index for role.
	Append(ctx context.Context, account string, role models.MailRole, mailID string) error

	// List returns account's index for role in append order. An account
	// with no entries gets an empty slice.
	List(ctx context.Context, account string, role models.MailRole) ([]string, error)

	// Contains reports whether mailID is in either of account's indices.
	Contains(ctx context.Context, account, mailID string) (bool, error)

	// All returns every entry ordered by account, role and position.
	All(ctx context.Context) ([]models.IndexEntry, error)
}
