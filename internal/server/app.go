// Package server wires the ledger node together: storage, services, the
// public gRPC endpoint, the Prometheus endpoint and periodic snapshots.
// It also handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/amail/internal/logging"
	"github.com/dmitrijs2005/amail/internal/server/chain"
	"github.com/dmitrijs2005/amail/internal/server/config"
	"github.com/dmitrijs2005/amail/internal/server/metrics"
	"github.com/dmitrijs2005/amail/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/amail/internal/server/services"
	"github.com/dmitrijs2005/amail/internal/server/snapshot"

	gs "github.com/dmitrijs2005/amail/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	metrics        *metrics.Metrics
	ledgerService  *services.LedgerService
	accountService *services.AccountService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, rm, err := repomanager.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	met := metrics.New()
	ls := services.NewLedgerService(db, rm, chain.SystemClock{}, c, met, logger)
	if err := ls.Init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger init error: %w", err)
	}
	as := services.NewAccountService(db, rm, c, logger)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		metrics:        met,
		ledgerService:  ls,
		accountService: as,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.ledgerService, app.accountService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startSnapshotExporter(ctx context.Context) {

	client, err := snapshot.NewS3Client(ctx, app.config)
	if err != nil {
		app.logger.Error(ctx, "snapshot exporter disabled", "error", err)
		return
	}

	exporter := snapshot.NewExporter(app.ledgerService, client, app.config.S3Bucket, app.metrics, app.logger)
	exporter.Run(ctx, app.config.SnapshotInterval)
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// waits for every component to stop and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	if app.config.SnapshotInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startSnapshotExporter(ctx)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
