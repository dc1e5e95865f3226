package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/orbitalhq/console-api/config"
	httpx "github.com/orbitalhq/console-api/internal/http"
)

// HTTPServerOptions groups inputs for StartHTTPServer.
type HTTPServerOptions struct {
	Config   config.AppConfig
	Services *ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
}

// StartHTTPServer builds the router and starts listening. The returned server
// is handed to ShutdownHTTPServer on exit.
func StartHTTPServer(opts HTTPServerOptions) *http.Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Sessions:      opts.Services.Sessions,
		Tenants:       opts.Services.Tenants,
		Tickets:       opts.Services.Tickets,
		Audit:         opts.Services.Audit,
		Releases:      opts.Services.Releases,
		Activity:      opts.Services.Activity,
		SessionCookie: opts.Config.Auth.SessionCookie,
		DB:            opts.DB,
		PageSize: httpx.PageSizeConfig{
			Default: opts.Config.HTTP.DefaultPageSize,
			Max:     opts.Config.HTTP.MaxPageSize,
		},
		Logger: logger,
	})

	server := &http.Server{
		Addr:              opts.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()
	return server
}

// ShutdownHTTPServer drains in-flight requests with a bounded grace period.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
