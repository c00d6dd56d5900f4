// Package server initializes and runs the PantryKeeper server: it opens the
// configured store, runs migrations, then serves the JSON API over HTTP and
// the health service over gRPC until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/blob"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/sessions"

	gs "github.com/dmitrijs2005/pantrykeeper/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

// openStore connects to the database of the configured driver and returns
// the matching repository manager. The memory driver keeps accounts in a
// private in-memory SQLite database.
func openStore(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	switch c.StoreDriver {
	case config.DriverPostgres:
		db, err := dbx.Open(ctx, dbx.Postgres, c.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, repomanager.NewSQLRepositoryManager(dbx.Postgres), nil
	case config.DriverSQLite:
		db, err := dbx.Open(ctx, dbx.SQLite, c.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, repomanager.NewSQLRepositoryManager(dbx.SQLite), nil
	case config.DriverMemory:
		db, err := dbx.Open(ctx, dbx.SQLite, ":memory:")
		if err != nil {
			return nil, nil, err
		}
		return db, repomanager.NewMemoryRepositoryManager(), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, m, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	images, err := blob.NewS3ImageStore(ctx, blob.S3Options{
		User:          c.S3RootUser,
		Password:      c.S3RootPassword,
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		BaseEndpoint:  c.S3BaseEndpoint,
		PublicBaseURL: c.S3PublicBaseURL,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("image store: %w", err)
	}

	us := services.NewUserService(db, m, c, logger)
	registry := sessions.NewRegistry(m.Items(db), c.SessionIdleTTL, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewServer(us, registry, images, logger, httpapi.Options{MaxImageSize: c.MaxImageSize}),
		grpc:   gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db.PingContext, 0),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until ctx is cancelled, a signal arrives or one of the servers
// fails; either server failing stops the other.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.StoreDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx, app.config.EndpointAddrHTTP); err != nil {
			app.logger.Error(ctx, "http server failed", "error", err)
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.grpc.Run(ctx); err != nil {
			app.logger.Error(ctx, "grpc server failed", "error", err)
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
