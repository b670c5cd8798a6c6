package session

import "context"

type sessionContextKey struct{}

// WithSession attaches a session to the context. Besides the middleware's own
// use, an upstream identity layer may attach a federated session here before
// routing; the middleware consumes it as-is without persisting it.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext retrieves the session attached to the context.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok
}

// MustFromContext retrieves the session or panics. Use only below the
// middleware, where a session is guaranteed.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return s
}

// UserIDFromContext returns the authenticated user bound to the session.
func UserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return "", false
	}
	return s.UserID, true
}
