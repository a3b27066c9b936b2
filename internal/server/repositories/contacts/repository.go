// Package contacts keeps each account's append-only contact list.
// Duplicates are allowed.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/amail/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, owner, contact string) error

	// List returns owner's contacts in append order, or an empty slice.
	List(ctx context.Context, owner string) ([]string, error)

	All(ctx context.Context) ([]models.ContactEntry, error)
}
