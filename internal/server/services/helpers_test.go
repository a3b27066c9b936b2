package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/amail/internal/logging"
	"github.com/dmitrijs2005/amail/internal/server/chain"
	"github.com/dmitrijs2005/amail/internal/server/config"
	"github.com/dmitrijs2005/amail/internal/server/metrics"
	"github.com/dmitrijs2005/amail/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		ContractAccount:              "amail",
		GenesisBalance:               10000,
		RollingStateSeed:             "nonceecnon",
	}
}

// openTestDB returns a migrated SQLite database in a temp dir.
func openTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, m, err := repomanager.Open(repomanager.SQLiteDSNPrefix + filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

type ledgerFixture struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	ledger  *LedgerService
	metrics *metrics.Metrics
	now     int64
}

func newLedgerFixture(t *testing.T, cfg *config.Config) *ledgerFixture {
	t.Helper()
	db, rm := openTestDB(t)
	f := &ledgerFixture{db: db, rm: rm, metrics: metrics.New()}
	clock := chain.ClockFunc(func() int64 { return f.now })
	f.ledger = NewLedgerService(db, rm, clock, cfg, f.metrics, logging.Nop{})
	require.NoError(t, f.ledger.Init(context.Background()))
	return f
}

func (f *ledgerFixture) credit(t *testing.T, account string, amount int64) {
	t.Helper()
	require.NoError(t, f.rm.Balances(f.db).Credit(context.Background(), account, amount))
}

func (f *ledgerFixture) balance(t *testing.T, account string) int64 {
	t.Helper()
	got, err := f.rm.Balances(f.db).Get(context.Background(), account)
	require.NoError(t, err)
	return got
}
