package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/dbx"
	"github.com/dmitrijs2005/amail/internal/server/models"
)

// SQLRepository implements Repository over a dbx.DBTX. The statements run
// unchanged on PostgreSQL and SQLite.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (name, salt, verifier, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, query, account.Name, account.Salt, account.Verifier, account.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *SQLRepository) GetByName(ctx context.Context, name string) (*models.Account, error) {
	query := `
		SELECT name, salt, verifier, created_at
		FROM accounts
		WHERE name = $1
	`
	var (
		account   models.Account
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, name).Scan(&account.Name, &account.Salt, &account.Verifier, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	account.CreatedAt = time.Unix(createdAt, 0)
	return &account, nil
}
