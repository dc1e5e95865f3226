package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/orbitalhq/console-api/config"
	"github.com/orbitalhq/console-api/internal/adapters/authbridge"
	"github.com/orbitalhq/console-api/internal/adapters/backend"
	"github.com/orbitalhq/console-api/internal/adapters/github"
	"github.com/orbitalhq/console-api/internal/adapters/oidc"
	"github.com/orbitalhq/console-api/internal/data"
	"github.com/orbitalhq/console-api/internal/observability/statsd"
	"github.com/orbitalhq/console-api/internal/ports"
	"github.com/orbitalhq/console-api/internal/service"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Sessions *service.SessionService
	Tenants  *service.TenantService
	Tickets  *service.TicketService
	Audit    *service.AuditService
	Releases *service.ReleaseService // nil without GitHub configuration
	Activity *service.ActivityService

	Metrics statsd.Sink
}

// BuildServicesOptions groups inputs for BuildServices.
type BuildServicesOptions struct {
	Config config.AppConfig
	DB     *sql.DB
	Cache  ports.CacheRepository
	Logger *slog.Logger
}

// BuildServices wires adapters and services from configuration.
func BuildServices(ctx context.Context, opts BuildServicesOptions) (*ServiceContainer, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := buildMetrics(cfg.Observability, logger)

	var verifier ports.TokenVerifier
	if cfg.Auth.VerifyTokens() {
		v, err := oidc.NewVerifier(ctx, oidc.VerifierConfig{
			IssuerURL: cfg.Auth.IssuerURL,
			Audience:  cfg.Auth.Audience,
		})
		if err != nil {
			return nil, fmt.Errorf("init token verifier: %w", err)
		}
		verifier = v
		logger.Info("access token verification enabled", "issuer", cfg.Auth.IssuerURL)
	}

	bridge := authbridge.New(authbridge.Options{
		Config:   cfg.Auth,
		BaseHost: baseHost(cfg.HTTP.BaseURL),
		Verifier: verifier,
		Logger:   logger,
	})

	gateway := backend.New(backend.Options{
		Registry: cfg.Backends.Registry(),
		Bridge:   bridge,
		Timeout:  cfg.Backends.Timeout,
		Metrics:  metrics,
		Logger:   logger,
	})

	activity := service.NewActivityService(service.ActivityServiceOptions{
		Repo:   data.NewActivityRepo(opts.DB),
		Logger: logger,
	})

	tenants := service.NewTenantService(service.TenantServiceOptions{
		Gateway:  gateway,
		Activity: activity,
		Config:   service.TenantServiceConfig{PageSize: cfg.Backends.TenantPageSize},
		Logger:   logger,
	})

	aggregator := service.NewAggregator(service.AggregatorOptions{
		Tenants: tenants,
		Logger:  logger,
		Metrics: metrics,
	})

	container := &ServiceContainer{
		Sessions: service.NewSessionService(service.SessionServiceOptions{Bridge: bridge, Logger: logger}),
		Tenants:  tenants,
		Tickets: service.NewTicketService(service.TicketServiceOptions{
			Gateway:    gateway,
			Aggregator: aggregator,
			Activity:   activity,
			Logger:     logger,
		}),
		Audit: service.NewAuditService(service.AuditServiceOptions{
			Gateway:    gateway,
			Aggregator: aggregator,
			Logger:     logger,
		}),
		Activity: activity,
		Metrics:  metrics,
	}

	if cfg.GitHub.Enabled() {
		container.Releases = service.NewReleaseService(service.ReleaseServiceOptions{
			Fetcher: github.NewClient(cfg.GitHub),
			Cache:   opts.Cache,
			Config: service.ReleaseServiceConfig{
				Repos: cfg.GitHub.Repos,
				TTL:   cfg.Cache.ReleaseTTL,
			},
			Logger:  logger,
			Metrics: metrics,
		})
		logger.Info("release aggregation enabled", "repos", len(cfg.GitHub.Repos))
	}

	return container, nil
}

func buildMetrics(cfg config.ObservabilityConfig, logger *slog.Logger) statsd.Sink {
	if !cfg.Metrics.IsEnabled() {
		return statsd.Discard{}
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("statsd client init failed, metrics disabled", "error", err)
		return statsd.Discard{}
	}
	return client
}

func baseHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}
