package contacts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestAppend(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+contacts`).
		WithArgs("bob", "eve").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Append(context.Background(), "bob", "eve"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+contact\s+FROM\s+contacts\s+WHERE\s+owner\s*=\s*\$1\s+ORDER\s+BY\s+seq`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"contact"}).AddRow("eve").AddRow("eve"))

	got, err := repo.List(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"eve", "eve"}, got)
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+contacts`).
		WithArgs("carol").
		WillReturnRows(sqlmock.NewRows([]string{"contact"}))

	got, err := repo.List(context.Background(), "carol")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+owner,\s*seq,\s*contact\s+FROM\s+contacts`).
		WillReturnRows(sqlmock.NewRows([]string{"owner", "seq", "contact"}).AddRow("bob", int64(1), "eve"))

	got, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.ContactEntry{{Owner: "bob", Seq: 1, Contact: "eve"}}, got)
}
