// Package server initializes and runs the main application server.
// It opens the database, applies migrations, wires the services and the
// photo storage backend, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stevegmedia/voxceleris/internal/logging"
	"github.com/stevegmedia/voxceleris/internal/server/config"
	"github.com/stevegmedia/voxceleris/internal/server/httpapi"
	"github.com/stevegmedia/voxceleris/internal/server/mailer"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/repomanager"
	"github.com/stevegmedia/voxceleris/internal/server/services"
	"github.com/stevegmedia/voxceleris/internal/server/storage"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	photos, err := newPhotoStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("photo storage init error: %w", err)
	}

	mail := mailer.NewMailer(c)

	us := services.NewUserService(db, rm, mail, c)
	fs := services.NewFollowService(db, rm)
	ps := services.NewPostService(db, rm)
	ds := services.NewDirectoryService(db, rm)

	srv, err := httpapi.NewHTTPServer(c.EndpointAddr, logger, us, fs, ps, ds, photos, c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, httpServer: srv}, nil
}

func newPhotoStorage(ctx context.Context, c *config.Config) (storage.PhotoStorage, error) {
	switch c.PhotoStorage {
	case "s3":
		return storage.NewS3Storage(ctx, c)
	case "local":
		return storage.NewLocalStorage(c.UploadDir)
	default:
		return nil, fmt.Errorf("unknown photo storage backend: %q", c.PhotoStorage)
	}
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
