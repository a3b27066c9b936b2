package mails

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/amail/internal/common"
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

func (r *SQLRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM mails WHERE mail_id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *SQLRepository) Create(ctx context.Context, mail *models.MailRecord) error {
	query := `
		INSERT INTO mails (mail_id, sent_at, algo1, algo2, algo3, mask)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mail_id) DO NOTHING
	`
	c := mail.Classifier
	res, err := r.db.ExecContext(ctx, query, mail.ID, mail.Timestamp, int16(c[0]), int16(c[1]), int16(c[2]), []byte(mail.Mask))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.MailRecord, error) {
	query := `
		SELECT mail_id, sent_at, algo1, algo2, algo3, mask
		FROM mails
		WHERE mail_id = $1
	`
	mail, err := scanMail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return mail, nil
}

func (r *SQLRepository) All(ctx context.Context) ([]*models.MailRecord, error) {
	query := `
		SELECT mail_id, sent_at, algo1, algo2, algo3, mask
		FROM mails
		ORDER BY mail_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select mails: %w", err)
	}
	defer rows.Close()

	var result []*models.MailRecord
	for rows.Next() {
		mail, err := scanMail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, mail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMail(s scanner) (*models.MailRecord, error) {
	var (
		mail       models.MailRecord
		a1, a2, a3 int16
		maskBytes  []byte
	)
	if err := s.Scan(&mail.ID, &mail.Timestamp, &a1, &a2, &a3, &maskBytes); err != nil {
		return nil, err
	}
	mail.Mask = string(maskBytes)
	mail.Classifier[0] = uint8(a1)
	mail.Classifier[1] = uint8(a2)
	mail.Classifier[2] = uint8(a3)
	return &mail, nil
}
