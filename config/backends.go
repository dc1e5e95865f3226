package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Well-known logical backend service names. Handlers address backends by
// these names; the gateway resolves them through the registry built here.
const (
	ServiceTenants = "tenant-service"
	ServiceTickets = "tickets-service"
	ServiceAudit   = "audit-service"
)

// BackendsConfig holds the static registry of per-tenant backend services and
// the outbound gateway behavior. The registry is constructed once at process
// start and injected into the gateway, rather than referenced as ambient
// global state, so tests can substitute doubles.
type BackendsConfig struct {
	TenantServiceURL  string `env:"TENANT_SERVICE_URL"  envDefault:"http://tenant-service:4001"`
	TicketsServiceURL string `env:"TICKETS_SERVICE_URL" envDefault:"http://tickets-service:4002"`
	AuditServiceURL   string `env:"AUDIT_SERVICE_URL"   envDefault:"http://audit-service:4003"`

	// Timeout bounds each outbound backend call, including every per-tenant
	// call issued during cross-tenant fan-out. A stalled backend times out
	// rather than hanging the aggregate response.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	// TenantPageSize bounds the tenant enumeration call used for
	// cross-tenant aggregation.
	TenantPageSize int `env:"BACKEND_TENANT_PAGE_SIZE" envDefault:"100"`
}

// Sanitize applies guardrails to backend configuration values.
func (c *BackendsConfig) Sanitize() {
	c.TenantServiceURL = strings.TrimRight(strings.TrimSpace(c.TenantServiceURL), "/")
	c.TicketsServiceURL = strings.TrimRight(strings.TrimSpace(c.TicketsServiceURL), "/")
	c.AuditServiceURL = strings.TrimRight(strings.TrimSpace(c.AuditServiceURL), "/")

	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.TenantPageSize < 1 {
		c.TenantPageSize = 100
	}
	if c.TenantPageSize > 100 {
		c.TenantPageSize = 100
	}
}

// Registry returns the logical-name to base-URL map for the gateway.
func (c *BackendsConfig) Registry() map[string]string {
	return map[string]string{
		ServiceTenants: c.TenantServiceURL,
		ServiceTickets: c.TicketsServiceURL,
		ServiceAudit:   c.AuditServiceURL,
	}
}

// Validate checks that every registered backend has a parseable base URL.
func (c *BackendsConfig) Validate() error {
	for name, base := range c.Registry() {
		if base == "" {
			return fmt.Errorf("backend %s: base URL is required", name)
		}
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("backend %s: invalid base URL %q", name, base)
		}
	}
	return nil
}
