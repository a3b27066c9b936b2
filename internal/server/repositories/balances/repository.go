// Package balances holds account balances for the host's value-transfer
// primitive.
package balances

import "context"

type Repository interface {
	// Get returns 0 for accounts that never held funds.
	Get(ctx context.Context, account string) (int64, error)

	// Credit adds amount, creating the row if needed.
	Credit(ctx context.Context, account string, amount int64) error

	// Debit subtracts amount. It returns common.ErrorInsufficientFunds and
	// changes nothing if the balance is smaller than amount.
	Debit(ctx context.Context, account string, amount int64) error
}
