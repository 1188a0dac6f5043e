// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/logging"
	"github.com/dmitrijs2005/voltdrive/internal/server/auth"
	"github.com/dmitrijs2005/voltdrive/internal/server/config"
	"github.com/dmitrijs2005/voltdrive/internal/server/httpapi"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/voltdrive/internal/server/services"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewApp(c *config.Config) (*App, error) {
	level := slog.LevelInfo
	if c.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	if err := ensureSecret(c, logger); err != nil {
		return nil, err
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: repomanager.NewPostgresRepositoryManager(),
	}, nil
}

// ensureSecret refuses to sign production tokens with the well-known
// development secret and swaps in a random per-process one instead.
func ensureSecret(c *config.Config, logger logging.Logger) error {
	if c.IsDevelopment() || c.SecretKey != config.DefaultSecretKey {
		return nil
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return fmt.Errorf("error generating secret: %w", err)
	}
	c.SecretKey = secret
	logger.Warn(context.Background(), "JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) deps() httpapi.Deps {
	hasher := auth.NewBcryptHasher(app.config.BcryptCost)

	return httpapi.Deps{
		Users:    services.NewUserService(app.db, app.repomanager, hasher, app.config),
		Avatars:  services.NewAvatarService(app.db, app.repomanager, app.config),
		Cars:     services.NewCarService(app.db, app.repomanager),
		Bookings: services.NewBookingService(app.db, app.repomanager),
		Ping: func(ctx context.Context) error {
			return app.repomanager.Ping(ctx, app.db)
		},
		Metrics:     httpapi.NewMetrics(),
		Logger:      app.logger,
		Secret:      []byte(app.config.SecretKey),
		Development: app.config.IsDevelopment(),
		RateLimit:   app.config.RateLimitRequests,
		RateWindow:  app.config.RateLimitWindow,
	}
}

// Run migrates the schema and serves until a termination signal arrives or
// ctx is cancelled. A database that is down at startup does not stop the
// server; /health reports it as degraded.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "mode", app.config.Mode)

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err.Error())
	}

	router := httpapi.NewRouter(app.deps())
	srv := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger, app.config.ShutdownTimeout)

	err := srv.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "error closing database", "error", cerr.Error())
	}

	if err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
