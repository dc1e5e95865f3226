package auth

// Package auth contains domain-level types for the session-to-token bridge.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application authorization role as reported by the
// session-detail endpoint. Kept in string form for easy serialization.
type Role string

const (
	// RolePlatformAdmin can view data aggregated across all tenants.
	RolePlatformAdmin Role = "platform_admin"
	// RoleTenantAdmin administers a single tenant.
	RoleTenantAdmin Role = "tenant_admin"
	// RoleMember is a regular tenant member.
	RoleMember Role = "member"
)

// AccessToken is the short-lived credential obtained by exchanging an opaque
// session. It is built fresh per request and never cached across requests, so
// a revoked session stops working on the very next call.
type AccessToken struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	TenantID    string    `json:"tenant_id,omitempty"`
	TenantSlug  string    `json:"tenant_slug,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the token carries a usable credential.
func (t AccessToken) Valid() bool {
	return t.AccessToken != "" && t.UserID != ""
}

// SessionContext is the enriched, read-only identity assembled from the token
// exchange plus the session-detail lookup. An empty TenantID means the caller
// is a platform admin with no single tenant scope.
type SessionContext struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	TenantID    string `json:"tenant_id,omitempty"`
	TenantSlug  string `json:"tenant_slug,omitempty"`
	Roles []Role `json:"roles"`

	// Session is the caller's opaque session value, carried so downstream
	// gateway calls can run their own per-request token exchange. Never
	// serialized.
	Session string `json:"-"`

	// AccessToken is the exchanged bearer credential for this request only.
	// Never serialized.
	AccessToken string `json:"-"`
}

// HasRole reports whether the context carries the given role.
func (s *SessionContext) HasRole(role Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPlatformAdmin reports whether the caller operates without a tenant scope.
// Tenant attribution on the token wins over role claims: a caller bound to a
// tenant never aggregates across tenants regardless of its roles.
func (s *SessionContext) IsPlatformAdmin() bool {
	return s.TenantID == "" && s.HasRole(RolePlatformAdmin)
}
