package mailindex

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/amail/internal/dbx"
	"github.com/dmitrijs2005/amail/internal/server/models"
)

// SQLRepository implements Repository over dbx.DBTX.
type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Append computes the next position inside the same statement, so it is safe
// to call repeatedly in one transaction.
func (r *SQLRepository) Append(ctx context.Context, account string, role models.MailRole, mailID string) error {
	query := `
		INSERT INTO mail_index (account, role, seq, mail_id)
		SELECT $1, $2, COALESCE(MAX(seq), 0) + 1, $3
		FROM mail_index
		WHERE account = $1 AND role = $2
	`
	if _, err := r.db.ExecContext(ctx, query, account, string(role), mailID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context, account string, role models.MailRole) ([]string, error) {
	query := `
		SELECT mail_id FROM mail_index
		WHERE account = $1 AND role = $2
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, account, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to select mail index: %w", err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Contains(ctx context.Context, account, mailID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM mail_index WHERE account = $1 AND mail_id = $2)`
	var found bool
	if err := r.db.QueryRowContext(ctx, query, account, mailID).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func (r *SQLRepository) All(ctx context.Context) ([]models.IndexEntry, error) {
	query := `
		SELECT account, role, seq, mail_id FROM mail_index
		ORDER BY account, role, seq
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select mail index: %w", err)
	}
	defer rows.Close()

	var result []models.IndexEntry
	for rows.Next() {
		var (
			e    models.IndexEntry
			role string
		)
		if err := rows.Scan(&e.Account, &role, &e.Seq, &e.MailID); err != nil {
			return nil, err
		}
		e.Role = models.MailRole(role)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
