// Package repomanager provides a concrete RepositoryManager for the SQL
// backends, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/amail/internal/dbx"
	"github.com/dmitrijs2005/amail/internal/server/migrations"
	"github.com/dmitrijs2005/amail/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/amail/internal/server/repositories/balances"
	"github.com/dmitrijs2005/amail/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/amail/internal/server/repositories/ledgerstate"
	"github.com/dmitrijs2005/amail/internal/server/repositories/mailindex"
	"github.com/dmitrijs2005/amail/internal/server/repositories/mails"
	"github.com/dmitrijs2005/amail/internal/server/repositories/refreshtokens"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteDSNPrefix marks a DSN as a path to an SQLite database file.
const SQLiteDSNPrefix = "sqlite:"

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// SQLRepositoryManager vends SQL-backed repository implementations and
// exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect string
}

func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Mails(db dbx.DBTX) mails.Repository {
	return mails.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) MailIndex(db dbx.DBTX) mailindex.Repository {
	return mailindex.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Contacts(db dbx.DBTX) contacts.Repository {
	return contacts.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) LedgerState(db dbx.DBTX) ledgerstate.Repository {
	return ledgerstate.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Balances(db dbx.DBTX) balances.Repository {
	return balances.NewSQLRepository(db)
}

// Dialect reports the goose dialect used for migrations.
func (m *SQLRepositoryManager) Dialect() string {
	return m.dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for the given goose
// dialect.
func NewSQLRepositoryManager(dialect string) (*SQLRepositoryManager, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return &SQLRepositoryManager{dialect: dialect}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// Open connects to the database named by dsn. A DSN starting with
// SQLiteDSNPrefix opens an SQLite file, anything else goes to PostgreSQL
// through pgx.
func Open(dsn string) (*sql.DB, *SQLRepositoryManager, error) {
	driver, source, dialect := "pgx", dsn, DialectPostgres
	if path, ok := strings.CutPrefix(dsn, SQLiteDSNPrefix); ok {
		driver, source, dialect = "sqlite", path, DialectSQLite
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if dialect == DialectSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	m, err := NewSQLRepositoryManager(dialect)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, m, nil
}
