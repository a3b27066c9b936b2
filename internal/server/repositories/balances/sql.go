package balances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/dbx"
)

// SQLRepository implements Repository over dbx.DBTX.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Get(ctx context.Context, account string) (int64, error) {
	query := `SELECT amount FROM balances WHERE account = $1`
	var amount int64
	if err := r.db.QueryRowContext(ctx, query, account).Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return amount, nil
}

func (r *SQLRepository) Credit(ctx context.Context, account string, amount int64) error {
	query := `
		INSERT INTO balances (account, amount) VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET amount = balances.amount + EXCLUDED.amount
	`
	if _, err := r.db.ExecContext(ctx, query, account, amount); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Debit(ctx context.Context, account string, amount int64) error {
	query := `
		UPDATE balances SET amount = amount - $1
		WHERE account = $2 AND amount >= $1
	`
	res, err := r.db.ExecContext(ctx, query, amount, account)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorInsufficientFunds
	}
	return nil
}
