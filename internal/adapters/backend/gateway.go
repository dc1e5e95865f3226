package backend

// Package backend implements the outbound gateway to per-tenant backend
// services. The gateway authenticates via the session-to-token bridge,
// stamps tenant scoping headers, and hands raw responses back to call sites.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	errclass "github.com/orbitalhq/console-api/internal/observability/errors"
	"github.com/orbitalhq/console-api/internal/observability/statsd"
	"github.com/orbitalhq/console-api/internal/ports"
)

// Options groups dependencies for New.
type Options struct {
	// Registry maps logical service names to base URLs. Built from config at
	// process start and injected, never referenced as ambient global state.
	Registry map[string]string
	Bridge   ports.AuthBridge
	// Timeout bounds each call, including per-tenant fan-out calls.
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// Gateway implements ports.Gateway.
type Gateway struct {
	registry   map[string]string
	bridge     ports.AuthBridge
	timeout    time.Duration
	httpClient *http.Client
	metrics    statsd.Sink
	logger     *slog.Logger
}

var _ ports.Gateway = (*Gateway)(nil)

const defaultTimeout = 10 * time.Second

// New constructs a Gateway.
func New(opts Options) *Gateway {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = statsd.Discard{}
	}

	return &Gateway{
		registry:   opts.Registry,
		bridge:     opts.Bridge,
		timeout:    timeout,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger,
	}
}

// Do performs one authenticated call to a named backend. A missing session or
// a failed token exchange short-circuits to a synthesized 401 without (for
// the missing-session case) any network traffic. Transport failures surface
// as errors; everything with a downstream status comes back as a response.
func (g *Gateway) Do(ctx context.Context, call ports.BackendCall) (*ports.BackendResponse, error) {
	base, ok := g.registry[call.Service]
	if !ok {
		return nil, fmt.Errorf("unknown backend service %q", call.Service)
	}

	if call.Session == "" {
		g.count(call.Service, http.StatusUnauthorized)
		return synthesized401("Unauthorized"), nil
	}

	token, err := g.bridge.Exchange(ctx, call.Session)
	if err != nil {
		g.logger.DebugContext(ctx, "token exchange failed", "service", call.Service, "error", err)
		g.count(call.Service, http.StatusUnauthorized)
		return synthesized401("Session expired"), nil
	}

	req, err := g.buildRequest(ctx, base, call, token.AccessToken, g.tenantID(call, token.TenantID))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.metrics.Count("gateway.transport_error", 1, map[string]string{
			"service": call.Service,
			"cause":   errclass.Classify(err),
		})
		return nil, fmt.Errorf("backend %s: %w", call.Service, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend %s: read body: %w", call.Service, err)
	}

	g.count(call.Service, resp.StatusCode)
	g.metrics.Timing("gateway.request_duration", time.Since(start), map[string]string{"service": call.Service})

	return &ports.BackendResponse{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}

// tenantID picks the X-Tenant-ID value: explicit override first, then the
// token's own tenant claim, else none (platform-admin calls).
func (g *Gateway) tenantID(call ports.BackendCall, tokenTenant string) string {
	if call.TenantID != "" {
		return call.TenantID
	}
	return tokenTenant
}

func (g *Gateway) buildRequest(
	ctx context.Context,
	base string,
	call ports.BackendCall,
	bearer, tenantID string,
) (*http.Request, error) {
	method := call.Method
	if method == "" {
		method = http.MethodGet
	}

	u := base + call.Path
	if len(call.Query) > 0 {
		u += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, vs := range call.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}

	return req, nil
}

func (g *Gateway) count(service string, status int) {
	g.metrics.Count("gateway.request", 1, map[string]string{
		"service": service,
		"status":  strconv.Itoa(status),
	})
}

func synthesized401(message string) *ports.BackendResponse {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	body, _ := json.Marshal(map[string]string{"error": message})
	return &ports.BackendResponse{
		Status: http.StatusUnauthorized,
		Header: header,
		Body:   body,
	}
}
