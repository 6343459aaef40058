package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/schedule"
)

// App encapsulates the HTTP server and background scheduler lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	scheduler *schedule.Scheduler
}

// NewApp is used by Wire to build the runnable app. scheduler may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, scheduler *schedule.Scheduler) *App {
	return &App{
		cfg:       cfg,
		logger:    logger.With("component", "bootstrap"),
		server:    server,
		scheduler: scheduler,
	}
}

// Run starts the HTTP server and scheduler and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.scheduler != nil {
		a.scheduler.Start()
	}

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if a.scheduler != nil {
			a.scheduler.Stop(shutdownCtx)
		}
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if a.scheduler != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.scheduler.Stop(stopCtx)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
