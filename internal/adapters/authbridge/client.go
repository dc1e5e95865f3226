package authbridge

// Package authbridge exchanges opaque portal sessions for short-lived bearer
// tokens against the internal auth service. It is stateless: every call
// re-exchanges, so a revoked session stops working on the next request.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/orbitalhq/console-api/config"
	domainauth "github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/ports"
)

const (
	tokenPath   = "/internal/auth/token"
	sessionPath = "/internal/auth/session"
)

// Options groups dependencies for New.
type Options struct {
	Config config.AuthConfig
	// BaseHost is the portal host used as the forwarded-host hint when the
	// config does not pin one explicitly.
	BaseHost string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Verifier optionally verifies exchanged tokens against the issuer.
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

// Client implements ports.AuthBridge over HTTP.
type Client struct {
	baseURL       string
	cookieName    string
	headerName    string
	forwardedHost string
	timeout       time.Duration
	httpClient    *http.Client
	verifier      ports.TokenVerifier
	logger        *slog.Logger
}

var _ ports.AuthBridge = (*Client)(nil)

// New constructs an auth bridge client from configuration.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       opts.Config.BaseURL,
		cookieName:    opts.Config.SessionCookie,
		headerName:    opts.Config.SessionHeader,
		forwardedHost: forwardedHost(opts.Config.ForwardedHost, opts.BaseHost),
		timeout:       opts.Config.Timeout,
		httpClient:    httpClient,
		verifier:      opts.Verifier,
		logger:        logger,
	}
}

// forwardedHost picks the multi-domain validation hint: the configured host
// when pinned, else the portal host normalized to its registrable domain so
// per-environment subdomains all validate against one session domain.
func forwardedHost(configured, baseHost string) string {
	if configured != "" {
		return configured
	}
	if baseHost == "" {
		return ""
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(baseHost); err == nil {
		return etld
	}
	// localhost and bare hostnames have no public suffix
	return baseHost
}

// Exchange trades the session for an access token. Every failure mode maps
// to ports.ErrUnauthenticated so callers treat them uniformly.
func (c *Client) Exchange(ctx context.Context, session string) (*domainauth.AccessToken, error) {
	var token domainauth.AccessToken
	if err := c.get(ctx, session, tokenPath, &token); err != nil {
		return nil, err
	}
	if !token.Valid() {
		return nil, fmt.Errorf("%w: token payload missing credential", ports.ErrUnauthenticated)
	}

	if c.verifier != nil {
		if err := c.verifier.Verify(ctx, token.AccessToken); err != nil {
			c.logger.WarnContext(ctx, "token failed local verification", "error", err)
			return nil, fmt.Errorf("%w: %v", ports.ErrUnauthenticated, err)
		}
	}

	return &token, nil
}

// SessionDetail fetches display name, email, and roles for the session.
func (c *Client) SessionDetail(ctx context.Context, session string) (*ports.SessionDetail, error) {
	var detail ports.SessionDetail
	if err := c.get(ctx, session, sessionPath, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) get(ctx context.Context, session, path string, dst any) error {
	if session == "" {
		return ports.ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrUnauthenticated, err)
	}

	// The session rides both as a cookie and a custom header so it survives
	// proxy hops that rewrite either transport.
	req.AddCookie(&http.Cookie{Name: c.cookieName, Value: session})
	req.Header.Set(c.headerName, session)
	if c.forwardedHost != "" {
		req.Header.Set("X-Forwarded-Host", c.forwardedHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrUnauthenticated, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: auth service returned %d", ports.ErrUnauthenticated, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed auth payload: %v", ports.ErrUnauthenticated, err)
	}
	return nil
}
