package session

import (
	"log/slog"

	"github.com/sessionkit/sessionkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithTokenSource sets the token generator.
func WithTokenSource(tokens TokenSource) Option {
	return func(m *Manager) { m.tokens = tokens }
}

// WithTransport replaces the default cookie > bearer > parameter chain.
func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

// WithCookieManager sets the cookie manager used by the default transport
// and the CSRF guard.
func WithCookieManager(cookies *cookie.Manager) Option {
	return func(m *Manager) { m.cookies = cookies }
}

// WithCSRFGuard replaces the default guard.
func WithCSRFGuard(guard *CSRFGuard) Option {
	return func(m *Manager) { m.csrf = guard }
}

// WithCORS sets the collaborator invoked to stamp cross-origin headers on
// every non-health-check response.
func WithCORS(fn CORSFunc) Option {
	return func(m *Manager) { m.cors = fn }
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}
