// Package mails stores one record per mail id: block timestamp, classifier
// and mask. Records are insert-only.
package mails

import (
	"context"

	"github.com/dmitrijs2005/amail/internal/server/models"
)

type Repository interface {
	// Exists reports whether anything is recorded for id.
	Exists(ctx context.Context, id string) (bool, error)

	// Create inserts the record. It returns common.ErrorAlreadyExists if the
	// id is taken.
	Create(ctx context.Context, mail *models.MailRecord) error

	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.MailRecord, error)

	// All returns every record ordered by id.
	All(ctx context.Context) ([]*models.MailRecord, error)
}
