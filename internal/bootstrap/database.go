package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	goredis "github.com/redis/go-redis/v9"

	"github.com/orbitalhq/console-api/config"
	redisadapter "github.com/orbitalhq/console-api/internal/adapters/redis"
	"github.com/orbitalhq/console-api/internal/data"
	"github.com/orbitalhq/console-api/internal/ports"
)

// ConnectDB opens the PostgreSQL connection backing the portal activity log
// and optionally applies migrations.
func ConnectDB(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*sql.DB, error) {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()

	db, err := sql.Open("pgx", u.String())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.RunMigrationsOnStart {
		migrateCtx, cancelMigrate := context.WithTimeout(ctx, 5*time.Minute)
		defer cancelMigrate()
		if err := data.RunMigrations(migrateCtx, db); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close database connection: %w", closeErr))
			}
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}
	return db, nil
}

// NewCache builds the release/CI cache. With a Redis address configured it
// verifies connectivity and returns the Redis-backed cache, otherwise an
// in-process cache.
func NewCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (ports.CacheRepository, error) {
	if cfg.Addr == "" {
		logger.Info("no redis configured, using in-process cache")
		return redisadapter.NewMemoryCache(), nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis cache connected", "addr", cfg.Addr)
	return redisadapter.NewCache(client), nil
}
