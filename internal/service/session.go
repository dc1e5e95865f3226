package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Bridge ports.AuthBridge // Required: token exchange + session detail
	Logger *slog.Logger     // Optional: structured logger
}

// SessionService resolves an opaque browser session into a full
// SessionContext by combining the token exchange with the session-detail
// lookup. Resolution is performed per request; nothing is cached.
type SessionService struct {
	bridge ports.AuthBridge
	logger *slog.Logger
}

// NewSessionService creates a SessionService. Bridge is required.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Bridge == nil {
		panic("SessionService requires an AuthBridge")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{bridge: opts.Bridge, logger: logger}
}

// Resolve exchanges the session for an access token and fetches session
// details. A failure at either step yields ports.ErrUnauthenticated; partial
// data is never returned.
func (s *SessionService) Resolve(ctx context.Context, session string) (*auth.SessionContext, error) {
	token, err := s.bridge.Exchange(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	detail, err := s.bridge.SessionDetail(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("resolve session detail: %w", err)
	}

	slug := token.TenantSlug
	if slug == "" {
		slug = detail.TenantSlug
	}

	return &auth.SessionContext{
		UserID:      token.UserID,
		Email:       detail.Email,
		Name:        detail.Name,
		TenantID:    token.TenantID,
		TenantSlug:  slug,
		Roles:       detail.Roles,
		Session:     session,
		AccessToken: token.AccessToken,
	}, nil
}
