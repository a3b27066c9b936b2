// Package ledgerstate persists the rolling state string ("code") that every
// send feeds into the next mask derivation.
package ledgerstate

import "context"

type Repository interface {
	// Init stores seed unless a state is already present.
	Init(ctx context.Context, seed string) error

	// Get returns common.ErrorNotFound before Init.
	Get(ctx context.Context) (string, error)

	Put(ctx context.Context, code string) error
}
