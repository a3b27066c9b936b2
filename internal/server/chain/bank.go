package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/server/repositories/balances"
)

// Bank is the value-transfer primitive over a balances repository. Bind it
// to a transaction-scoped repository so that a failed operation leaves no
// partial movement behind.
type Bank struct {
	balances   balances.Repository
	contract   string
	minBalance int64
}

// NewBank returns a Bank holding contract funds on the named account.
// Transfers out of contract may not leave it below minBalance.
func NewBank(repo balances.Repository, contract string, minBalance int64) *Bank {
	return &Bank{balances: repo, contract: contract, minBalance: minBalance}
}

func (b *Bank) Contract() string { return b.contract }

func (b *Bank) Balance(ctx context.Context, account string) (int64, error) {
	return b.balances.Get(ctx, account)
}

// ContractBalance is the balance of the contract account.
func (b *Bank) ContractBalance(ctx context.Context) (int64, error) {
	return b.balances.Get(ctx, b.contract)
}

// Mint credits amount to account out of nothing. Registration uses it for
// the genesis balance.
func (b *Bank) Mint(ctx context.Context, account string, amount int64) error {
	if amount < 0 {
		return common.ErrorValidation
	}
	if amount == 0 {
		return nil
	}
	return b.balances.Credit(ctx, account, amount)
}

// Deposit moves the value attached to a payable call from the caller to
// the contract.
func (b *Bank) Deposit(ctx context.Context, from string, amount int64) error {
	return b.move(ctx, from, b.contract, amount)
}

// Transfer moves amount from one account to another. A zero amount is a
// no-op. Any failure is reported as common.ErrorTransferFailed.
func (b *Bank) Transfer(ctx context.Context, from, to string, amount int64) error {
	if from == b.contract && amount > 0 {
		bal, err := b.balances.Get(ctx, from)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrorTransferFailed, err)
		}
		if bal-amount < b.minBalance {
			return fmt.Errorf("%w: contract balance would drop below %d", common.ErrorTransferFailed, b.minBalance)
		}
	}
	if err := b.move(ctx, from, to, amount); err != nil {
		if errors.Is(err, common.ErrorTransferFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", common.ErrorTransferFailed, err)
	}
	return nil
}

func (b *Bank) move(ctx context.Context, from, to string, amount int64) error {
	if amount < 0 {
		return common.ErrorValidation
	}
	if amount == 0 {
		return nil
	}
	if err := b.balances.Debit(ctx, from, amount); err != nil {
		return err
	}
	return b.balances.Credit(ctx, to, amount)
}
