package ports

// Package ports defines interfaces (hexagonal ports) for the console's
// outbound collaborators. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/orbitalhq/console-api/internal/domain/auth"
)

// ErrUnauthenticated is returned for any auth bridge failure: missing or
// rejected session, transport failure, malformed payload. Callers uniformly
// treat "no token" as "unauthenticated" rather than distinguishing transport
// failure from rejection.
var ErrUnauthenticated = errors.New("unauthenticated")

// SessionDetail carries the display fields and role list returned by the
// session-detail endpoint.
type SessionDetail struct {
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	TenantSlug string            `json:"tenant_slug,omitempty"`
	Roles      []domainauth.Role `json:"roles"`
}

// AuthBridge exchanges an opaque session for a short-lived access token and
// looks up session details from the internal auth service.
type AuthBridge interface {
	// Exchange trades the session value for an access token. Any failure is
	// reported as ErrUnauthenticated (wrapped with the cause).
	Exchange(ctx context.Context, session string) (*domainauth.AccessToken, error)

	// SessionDetail fetches display name, email, and roles for the session.
	SessionDetail(ctx context.Context, session string) (*SessionDetail, error)
}

// TokenVerifier optionally verifies exchanged access tokens against the
// issuer. A nil verifier, or one that is disabled, accepts every token.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) error
}
