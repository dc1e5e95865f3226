package config

import (
	"strings"
	"time"
)

// AuthConfig groups configuration for the session-to-token auth bridge.
//
// The console never validates sessions itself: the opaque session cookie is
// forwarded to the internal auth service, which exchanges it for a short-lived
// bearer token. Token verification against the issuer is optional hardening.
type AuthConfig struct {
	// BaseURL is the base URL of the internal auth service used for token
	// exchange and session-detail lookups.
	BaseURL string `env:"AUTH_BASE_URL" envDefault:"http://auth-service:4000"`

	// SessionCookie is the name of the opaque session cookie set by the
	// external auth subsystem at login.
	SessionCookie string `env:"AUTH_SESSION_COOKIE" envDefault:"portal_session"`

	// SessionHeader is the custom header the session value is mirrored into
	// on exchange calls, for proxy hops that strip cookies.
	SessionHeader string `env:"AUTH_SESSION_HEADER" envDefault:"X-Session-ID"`

	// ForwardedHost is the host hint sent to the auth service for
	// multi-domain session validation. Defaults to the host of HTTP.BaseURL
	// when empty.
	ForwardedHost string `env:"AUTH_FORWARDED_HOST"`

	// Timeout bounds each auth service call.
	Timeout time.Duration `env:"AUTH_TIMEOUT" envDefault:"5s"`

	// IssuerURL enables local verification of exchanged access tokens
	// against the auth service's OIDC issuer when set. Disabled by default;
	// the downstream services verify tokens themselves either way.
	IssuerURL string `env:"AUTH_ISSUER_URL"`

	// Audience is the expected audience claim when IssuerURL is set.
	Audience string `env:"AUTH_AUDIENCE" envDefault:"console"`
}

// Sanitize applies guardrails to auth configuration values.
func (c *AuthConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.SessionCookie = strings.TrimSpace(c.SessionCookie)
	if c.SessionCookie == "" {
		c.SessionCookie = "portal_session"
	}
	c.SessionHeader = strings.TrimSpace(c.SessionHeader)
	if c.SessionHeader == "" {
		c.SessionHeader = "X-Session-ID"
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	c.IssuerURL = strings.TrimRight(strings.TrimSpace(c.IssuerURL), "/")
}

// VerifyTokens returns true when exchanged tokens should be verified locally.
func (c *AuthConfig) VerifyTokens() bool {
	return c.IssuerURL != ""
}
