package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/http"
	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/metrics"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the gatekeeper service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	auth    *Auth
	metrics *metrics.Metrics

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeeper",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.metrics = metrics.New(BuildVersion)

	auth, err := InitAuth(ctx, app.cfg, app.logger, app.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verification: %w", err)
	}
	app.auth = auth

	if err := app.initHTTP(); err != nil {
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return app.Serve(ln)
}

// Serve accepts connections on ln until SIGINT/SIGTERM, then shuts down
// gracefully.
func (app *Application) Serve(ln net.Listener) error {
	app.logger.Info("gatekeeper starting",
		"addr", ln.Addr().String(),
		"version", BuildVersion,
		"upstream", app.cfg.UpstreamURL,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekeeper...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		return err
	}

	app.logger.Info("gatekeeper stopped")
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	var upstream *url.URL
	if app.cfg.UpstreamURL != "" {
		u, err := url.Parse(app.cfg.UpstreamURL)
		if err != nil {
			return fmt.Errorf("invalid upstream url: %w", err)
		}
		upstream = u
	} else {
		app.logger.Warn("no upstream configured, resource routes answer 503 after the gate")
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:           app.auth.Gate,
		Keys:           app.auth.Keys,
		Upstream:       upstream,
		Limits:         app.cfg.RateLimits,
		TrustForwarded: app.cfg.TrustForwarded,
		Metrics:        app.metrics,
		BuildVersion:   BuildVersion,
		Logger:         app.logger,
	})
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
