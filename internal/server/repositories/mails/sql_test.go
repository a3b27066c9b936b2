package mails

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/mask"
	"github.com/dmitrijs2005/amail/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSQLRepository(db), mock, db
}

var mailColumns = []string{"mail_id", "sent_at", "algo1", "algo2", "algo3", "mask"}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS`).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "inserted", affected: 1},
		{name: "duplicate", affected: 0, wantErr: common.ErrorAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(`INSERT\s+INTO\s+mails`).
				WithArgs("m1", int64(0), int16(2), int16(0), int16(1), []byte("konn")).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Create(context.Background(), &models.MailRecord{
				ID:         "m1",
				Classifier: mask.Classifier{2, 0, 1},
				Mask:       "konn",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+mails\s+WHERE\s+mail_id\s*=\s*\$1`).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows(mailColumns).AddRow("m1", int64(42), int16(2), int16(0), int16(1), []byte("konn")))

	got, err := repo.Get(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, &models.MailRecord{ID: "m1", Timestamp: 42, Classifier: mask.Classifier{2, 0, 1}, Mask: "konn"}, got)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+mails`).WithArgs("m9").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "m9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+mails\s+ORDER\s+BY\s+mail_id`).
		WillReturnRows(sqlmock.NewRows(mailColumns).
			AddRow("a", int64(1), int16(0), int16(0), int16(0), []byte("x")).
			AddRow("b", int64(2), int16(1), int16(1), int16(1), []byte("y")))

	got, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, mask.Classifier{1, 1, 1}, got[1].Classifier)
}

func TestMaskBytesAreKeptVerbatim(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// split inside "é" and "©" of a multibyte phrase
	raw := "h\xc3nonceecn1700000000000on\xa9llo w\xc3\xb6rld"

	mock.ExpectExec(`INSERT\s+INTO\s+mails`).
		WithArgs("m1", int64(1700000000000), int16(2), int16(0), int16(1), []byte(raw)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM\s+mails\s+WHERE`).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows(mailColumns).AddRow("m1", int64(1700000000000), int16(2), int16(0), int16(1), []byte(raw)))

	in := &models.MailRecord{ID: "m1", Timestamp: 1700000000000, Classifier: mask.Classifier{2, 0, 1}, Mask: raw}
	require.NoError(t, repo.Create(context.Background(), in))

	got, err := repo.Get(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, raw, got.Mask)
	require.NoError(t, mock.ExpectationsWereMet())
}
