// Package server initializes and runs the Furari backend. It wires the
// database, object storage, message broker, and HTTP surface together and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/furari-app/furari/internal/logging"
	"github.com/furari-app/furari/internal/mq"
	"github.com/furari-app/furari/internal/server/config"
	"github.com/furari-app/furari/internal/server/httpapi"
	"github.com/furari-app/furari/internal/server/repositories/repomanager"
	"github.com/furari-app/furari/internal/server/services"
	"github.com/furari-app/furari/internal/server/watch"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	publisher *mq.Publisher
	router    http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	publisher, err := mq.NewPublisher(cfg.AMQPUrl, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("mq init error: %w", err)
	}

	hub := watch.NewHub()

	userService := services.NewUserService(db, rm, publisher, cfg)
	recordService := services.NewRecordService(db, rm, hub, cfg)
	storageService := services.NewStorageService(cfg)
	geocodeService := services.NewGeocodeService(cfg)

	handler := httpapi.NewHandler(userService, recordService, storageService, geocodeService, hub, cfg, logger)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
		router:    httpapi.NewRouter(handler),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	if err := app.publisher.Close(); err != nil {
		app.logger.Error(context.Background(), "mq close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	return nil
}
