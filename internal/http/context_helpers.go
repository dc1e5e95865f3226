package httpx

import (
	"context"

	domainauth "github.com/orbitalhq/console-api/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions.
type sessionKey struct{}

type requestIDKey struct{}

// SetSessionInContext returns a child context carrying the resolved session.
// A nil session returns ctx unchanged.
func SetSessionInContext(ctx context.Context, sess *domainauth.SessionContext) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the resolved session and whether one is present.
func SessionFromContext(ctx context.Context) (*domainauth.SessionContext, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*domainauth.SessionContext)
	return sess, ok && sess != nil
}

// SetRequestID returns a child context carrying the request id.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or empty when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
