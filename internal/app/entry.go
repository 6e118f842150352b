// Package app wires the portfolio server together and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/handlers"
	"rainfolio.dev/internal/logging"
	"rainfolio.dev/internal/services"
	"rainfolio.dev/internal/session"
)

// Run starts the server with the given options and blocks until ctx is
// cancelled, a shutdown signal arrives or a component fails.
func Run(ctx context.Context, opts ...Option) error {
	a := &application{}
	for _, opt := range opts {
		opt(a)
	}

	if a.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := a.config

	logger := a.logger
	if logger == nil {
		var err error
		logger, err = logging.New(cfg.App.LogLevel, cfg.App.LogFormat)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}
	restore := zap.ReplaceGlobals(logger)
	defer restore()

	logger.Info("Configuration loaded",
		zap.String("http_address", cfg.HTTP.Address()),
		zap.String("content_dir", cfg.Content.Dir),
		zap.Bool("content_watch", cfg.Content.Watch),
		zap.Strings("sections", cfg.Sections),
		zap.String("log_level", cfg.App.LogLevel))

	c, err := content.Load(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	store := content.NewStore(c)
	logger.Info("Content loaded",
		zap.Int("projects", len(c.Projects)),
		zap.Int("experience", len(c.Experience)),
		zap.Int("education", len(c.Education)))

	sessions := session.NewManager(cfg.SessionOptions(),
		services.NewProjectService(store),
		services.NewProfileService(store),
		logger.Named("session"))

	router, err := handlers.SetupRoutes(cfg, store, sessions, logger.Named("http"))
	if err != nil {
		return fmt.Errorf("setup routes: %w", err)
	}

	httpServer := &http.Server{
		Addr:        cfg.HTTP.Address(),
		Handler:     router,
		ReadTimeout: cfg.HTTP.ReadTimeout,
		// sessions are long-lived; the write timeout only guards plain requests
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", httpServer.Addr, err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Content.Watch {
		g.Go(func() error {
			err := content.Watch(gCtx, store, cfg.Content.Dir, logger.Named("content"), sessions.ContentChanged)
			if err != nil {
				// the server keeps running on the content it has
				logger.Error("content watcher failed", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("address", ln.Addr().String()))
		if a.ready != nil {
			a.ready(ln.Addr().String())
		}
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		// hijacked connections are not tracked by the server, end them first
		if err := sessions.Shutdown(shutdownCtx); err != nil {
			logger.Warn("sessions did not finish in time", zap.Error(err))
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", zap.Error(err))
		}
		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", zap.Error(err))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
