package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/orbitalhq/console-api/internal/domain/model"
)

// BackendCall describes one outbound request to a named backend service.
type BackendCall struct {
	// Service is the logical service name resolved through the registry.
	Service string
	// Method defaults to GET when empty.
	Method string
	// Path is appended to the service base URL.
	Path string
	// Query is encoded onto the request URL when non-empty.
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Session is the caller's opaque session value. Empty short-circuits to
	// a synthesized 401 without any network call.
	Session string
	// TenantID overrides the token's tenant claim for the X-Tenant-ID header.
	TenantID string
	// Header carries additional request headers.
	Header http.Header
}

// BackendResponse is the raw downstream result. The gateway does not map
// backend error codes to a taxonomy; call sites interpret status and body.
type BackendResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports whether the response status is 2xx.
func (r *BackendResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// DecodeJSON unmarshals the response body into dst.
func (r *BackendResponse) DecodeJSON(dst any) error {
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// Gateway performs authenticated calls to named backend services. A single
// attempt per invocation; no retries, no circuit breaking. A non-nil error
// indicates a transport or configuration failure where no downstream status
// exists; auth failures come back as synthesized 401 responses instead.
type Gateway interface {
	Do(ctx context.Context, call BackendCall) (*BackendResponse, error)
}

// TenantDirectory enumerates the tenants visible to the caller's session.
type TenantDirectory interface {
	List(ctx context.Context, session string) ([]model.Tenant, error)
}
