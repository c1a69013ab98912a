// Package server wires the SyncHub components together and runs the HTTP
// server until it is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/auth"
	"github.com/LouisLiuNova/SyncHub/internal/server/blob"
	"github.com/LouisLiuNova/SyncHub/internal/server/config"
	"github.com/LouisLiuNova/SyncHub/internal/server/hub"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/repomanager"
	"github.com/LouisLiuNova/SyncHub/internal/server/rest"
	"github.com/LouisLiuNova/SyncHub/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	hub    *hub.Hub
	server *rest.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect, repomanager.WithLogger(logger))
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	blobs, err := newBlobStore(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.AccessTokenValidityDuration, c.DownloadTokenValidityDuration)
	guard := auth.NewGuard(tokens, rm.Users(db))

	h := hub.New(logger,
		hub.WithSendTimeout(c.SendTimeout),
		hub.WithMaxParallelSends(c.MaxParallelSends),
	)

	srv := rest.NewServer(c.HTTPAddr, rest.Deps{
		Auth:           guard,
		Users:          services.NewUserService(db, rm, guard, logger),
		Tags:           services.NewTagService(db, rm, h, logger),
		Clipboard:      services.NewClipboardService(db, rm, guard, h, logger),
		Files:          services.NewFileService(db, rm, blobs, guard, h, logger),
		Hub:            h,
		AllowedOrigins: c.AllowedOrigins,
	}, logger)

	return &App{config: c, logger: logger, db: db, hub: h, server: srv}, nil
}

func newBlobStore(ctx context.Context, c *config.Config) (blob.Store, error) {
	switch c.BlobBackend {
	case config.BlobBackendLocal:
		return blob.NewLocalStore(c.UploadDir)
	case config.BlobBackendS3:
		return blob.NewS3Store(ctx, blob.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", c.BlobBackend)
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives. Live
// WebSocket connections are closed as soon as shutdown starts; pending
// broadcasts are drained and the database closed once the server stops.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver, "blob_backend", app.config.BlobBackend)

	app.initSignalHandler(ctx, cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(gctx, "Closing live connections", "connections", app.hub.Len())
		app.hub.Close()
		return nil
	})

	err := g.Wait()
	app.shutdown(context.WithoutCancel(ctx))
	return err
}

func (app *App) shutdown(ctx context.Context) {
	app.hub.Close()
	app.hub.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
