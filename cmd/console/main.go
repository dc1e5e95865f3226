// Command console runs the admin portal backend: it bridges browser sessions
// to backend bearer tokens, proxies and aggregates per-tenant backend data,
// and serves the portal's REST API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orbitalhq/console-api/internal/bootstrap"
)

func main() {
	logger := bootstrap.InitLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("connect database failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("close database failed", "error", closeErr)
		}
	}()

	cache, err := bootstrap.NewCache(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Error("connect cache failed", "error", err)
		os.Exit(1)
	}

	services, err := bootstrap.BuildServices(ctx, bootstrap.BuildServicesOptions{
		Config: cfg,
		DB:     db,
		Cache:  cache,
		Logger: logger,
	})
	if err != nil {
		logger.Error("build services failed", "error", err)
		os.Exit(1)
	}

	server := bootstrap.StartHTTPServer(bootstrap.HTTPServerOptions{
		Config:   cfg,
		Services: services,
		DB:       db,
		Logger:   logger,
	})

	<-ctx.Done()
	logger.Info("shutting down")
	bootstrap.ShutdownHTTPServer(context.Background(), server, logger)
}
