package ledgerstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/dbx"
)

// stateRowID is the id of the single ledger_state row.
const stateRowID = 1

// SQLRepository implements Repository over dbx.DBTX.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Init(ctx context.Context, seed string) error {
	query := `
		INSERT INTO ledger_state (id, code) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, stateRowID, []byte(seed)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context) (string, error) {
	query := `SELECT code FROM ledger_state WHERE id = $1`
	var code []byte
	if err := r.db.QueryRowContext(ctx, query, stateRowID).Scan(&code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return string(code), nil
}

func (r *SQLRepository) Put(ctx context.Context, code string) error {
	query := `UPDATE ledger_state SET code = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, []byte(code), stateRowID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return common.ErrorNotFound
	}
	return nil
}
