package contacts

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

func (r *SQLRepository) Append(ctx context.Context, owner, contact string) error {
	query := `
		INSERT INTO contacts (owner, seq, contact)
		SELECT $1, COALESCE(MAX(seq), 0) + 1, $2
		FROM contacts
		WHERE owner = $1
	`
	if _, err := r.db.ExecContext(ctx, query, owner, contact); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context, owner string) ([]string, error) {
	query := `SELECT contact FROM contacts WHERE owner = $1 ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) All(ctx context.Context) ([]models.ContactEntry, error) {
	query := `SELECT owner, seq, contact FROM contacts ORDER BY owner, seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	var result []models.ContactEntry
	for rows.Next() {
		var e models.ContactEntry
		if err := rows.Scan(&e.Owner, &e.Seq, &e.Contact); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
