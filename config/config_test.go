package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.SessionCookie != "portal_session" {
		t.Errorf("SessionCookie = %q, want portal_session", cfg.Auth.SessionCookie)
	}
	if cfg.Auth.SessionHeader != "X-Session-ID" {
		t.Errorf("SessionHeader = %q, want X-Session-ID", cfg.Auth.SessionHeader)
	}
	if cfg.Backends.Timeout != 10*time.Second {
		t.Errorf("Backends.Timeout = %v, want 10s", cfg.Backends.Timeout)
	}
	if cfg.Cache.ReleaseTTL != 30*time.Second {
		t.Errorf("Cache.ReleaseTTL = %v, want 30s", cfg.Cache.ReleaseTTL)
	}
	if cfg.HTTP.DefaultPageSize != 20 || cfg.HTTP.MaxPageSize != 100 {
		t.Errorf("page sizes = %d/%d, want 20/100", cfg.HTTP.DefaultPageSize, cfg.HTTP.MaxPageSize)
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_BASE_URL", "https://auth.internal.example.com/")
	t.Setenv("TENANT_SERVICE_URL", "https://tenants.internal.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("GITHUB_REPOS", "acme/platform, acme/console ,bad-entry")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.BaseURL != "https://auth.internal.example.com" {
		t.Errorf("Auth.BaseURL = %q, trailing slash should be trimmed", cfg.Auth.BaseURL)
	}
	if got := cfg.Backends.Registry()[ServiceTenants]; got != "https://tenants.internal.example.com" {
		t.Errorf("tenant registry entry = %q", got)
	}
	if cfg.Backends.Timeout != 3*time.Second {
		t.Errorf("Backends.Timeout = %v, want 3s", cfg.Backends.Timeout)
	}
	if len(cfg.GitHub.Repos) != 2 {
		t.Fatalf("GitHub.Repos = %v, want 2 valid entries", cfg.GitHub.Repos)
	}
	if cfg.GitHub.Repos[1] != "acme/console" {
		t.Errorf("GitHub.Repos[1] = %q", cfg.GitHub.Repos[1])
	}
}

func TestBackendsConfig_Validate(t *testing.T) {
	cfg := BackendsConfig{
		TenantServiceURL:  "http://tenant-service:4001",
		TicketsServiceURL: "http://tickets-service:4002",
		AuditServiceURL:   "http://audit-service:4003",
	}
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg.AuditServiceURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed base URL")
	}

	cfg.AuditServiceURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestBackendsConfig_SanitizeClampsPageSize(t *testing.T) {
	cfg := BackendsConfig{TenantPageSize: 5000}
	cfg.Sanitize()
	if cfg.TenantPageSize != 100 {
		t.Errorf("TenantPageSize = %d, want clamp to 100", cfg.TenantPageSize)
	}

	cfg = BackendsConfig{TenantPageSize: -1}
	cfg.Sanitize()
	if cfg.TenantPageSize != 100 {
		t.Errorf("TenantPageSize = %d, want default 100", cfg.TenantPageSize)
	}
}

func TestAuthConfig_VerifyTokens(t *testing.T) {
	cfg := AuthConfig{}
	cfg.Sanitize()
	if cfg.VerifyTokens() {
		t.Error("verification should be disabled without an issuer")
	}

	cfg.IssuerURL = "https://auth.internal.example.com/oidc/"
	cfg.Sanitize()
	if !cfg.VerifyTokens() {
		t.Error("verification should be enabled with an issuer")
	}
	if cfg.IssuerURL != "https://auth.internal.example.com/oidc" {
		t.Errorf("IssuerURL = %q, trailing slash should be trimmed", cfg.IssuerURL)
	}
}

func TestHTTPConfig_SanitizeOrdersPageSizes(t *testing.T) {
	cfg := HTTPConfig{DefaultPageSize: 500, MaxPageSize: 50}
	cfg.Sanitize()
	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want clamp to MaxPageSize", cfg.DefaultPageSize)
	}
}
