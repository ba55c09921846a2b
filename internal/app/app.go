// Package app provides the top-level application lifecycle for the raisegate
// backend: dependency wiring, server startup, and graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avencrest/raisegate/internal/config"
)

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all dependencies, starts the HTTP server, and blocks until the
// context is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	a.logger.InfoContext(ctx, "starting application",
		slog.Bool("dealmaker_configured", deps.ConfigService.Configured()),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- deps.Server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := deps.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// Close tears down all resources in reverse registration order. It is safe
// to call multiple times.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
