package app

import (
	"go.uber.org/zap"

	"rainfolio.dev/internal/config"
)

// Option is a functional option for configuring the application
type Option func(*application)

type application struct {
	config *config.Config
	logger *zap.Logger
	ready  func(addr string)
}

// WithConfig sets the application configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger replaces the logger built from the configuration
func WithLogger(logger *zap.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithReady registers a callback invoked with the listen address once the
// server accepts connections
func WithReady(fn func(addr string)) Option {
	return func(a *application) {
		a.ready = fn
	}
}
