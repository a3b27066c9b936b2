// Package metadata stores small key/value items of the CLI session, such
// as the logged-in account and its refresh token.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccount      = "account"
	KeyRefreshToken = "refresh_token"
)

type Repository interface {
	// Get returns nil, nil for an absent key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
