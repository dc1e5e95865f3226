package config

import "time"

// DBConfig contains PostgreSQL configuration for the portal activity log.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"console"`
	Password string `env:"PASSWORD"                envDefault:"console"`
	Name     string `env:"NAME"                    envDefault:"console"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the release/CI cache.
// When Addr is empty the cache falls back to an in-process map.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// CacheConfig contains TTL settings for the release/CI status cache.
type CacheConfig struct {
	// ReleaseTTL is how long a GitHub API response is reused before a fresh
	// fetch. Staleness up to this window is an accepted tradeoff to reduce
	// upstream rate-limit pressure.
	ReleaseTTL time.Duration `env:"CACHE_RELEASE_TTL" envDefault:"30s"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.ReleaseTTL <= 0 {
		c.ReleaseTTL = 30 * time.Second
	}
}
