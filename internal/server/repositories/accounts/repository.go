// Package accounts stores registered ledger identities.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/amail/internal/server/models"
)

// Repository defines persistence for accounts.
type Repository interface {
	// Create inserts a new account. It returns common.ErrorAlreadyExists if
	// the name is taken.
	Create(ctx context.Context, account *models.Account) error

	// GetByName returns common.ErrorNotFound for unknown names.
	GetByName(ctx context.Context, name string) (*models.Account, error)
}
