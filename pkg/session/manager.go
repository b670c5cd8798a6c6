package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sessionkit/sessionkit/pkg/clientip"
	"github.com/sessionkit/sessionkit/pkg/cookie"
)

// CORSFunc sets cross-origin response headers. The manager only triggers the
// call; header policy belongs to the collaborator (see pkg/cors).
type CORSFunc func(w http.ResponseWriter, r *http.Request)

// Manager drives the per-request session lifecycle: token resolution,
// resume-or-create, CSRF enforcement and response-time persistence.
type Manager struct {
	cfg       Config
	store     Store
	tokens    TokenSource
	cookies   *cookie.Manager
	transport Transport
	csrf      *CSRFGuard
	cors      CORSFunc
	log       *slog.Logger
}

// New creates a manager for the given configuration. Without options it runs
// on an in-memory store with the default random token source and the
// cookie > bearer > parameter transport chain.
func New(cfg Config, opts ...Option) *Manager {
	m := &Manager{cfg: cfg}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.tokens == nil {
		m.tokens = RandomTokenSource{}
	}
	if m.cookies == nil {
		m.cookies = cookie.New()
	}
	if m.transport == nil {
		m.transport = NewCompositeTransport(
			NewCookieTransport(m.cookies, cfg),
			NewBearerTransport(),
			NewParamTransport(defaultParamName),
		)
	}
	if m.csrf == nil {
		m.csrf = NewCSRFGuard(cfg, m.tokens, m.cookies)
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return m
}

// OnRequest is the "before routing" hook. It attaches a session to the
// returned request's context and reports whether the pipeline should
// continue; false means the CSRF fail policy already wrote the response.
func (m *Manager) OnRequest(w http.ResponseWriter, r *http.Request) (*http.Request, bool) {
	if r.URL.Path == m.cfg.HealthCheckPath {
		return r, true
	}

	// A federated session attached upstream is consumed as-is: no store
	// round-trip, no CSRF, no persistence later.
	if existing, ok := FromContext(r.Context()); ok && existing.Federated {
		if m.cors != nil {
			m.cors(w, r)
		}
		return r, true
	}

	sess := m.resolve(r.Context(), r)

	if m.cfg.CSRFEnabled && (sess.State != StateNew || isStateChanging(r.Method)) {
		if !m.csrf.Check(r, sess) {
			switch m.cfg.CSRFPolicy {
			case CSRFFail:
				m.log.WarnContext(r.Context(), "csrf check failed, rejecting request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
				return r, false
			case CSRFLog:
				m.log.WarnContext(r.Context(), "csrf check failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
			}
		}
	}

	if m.cors != nil {
		m.cors(w, r)
	}

	return r.WithContext(WithSession(r.Context(), sess)), true
}

// OnResponseHeaders is the "before headers sent" hook: it persists the
// attached session and emits the session cookie (plus the CSRF cookie when
// enabled). Federated and degraded sessions are left untouched; an aborted
// request saves nothing.
func (m *Manager) OnResponseHeaders(ctx context.Context, w http.ResponseWriter) {
	sess, ok := FromContext(ctx)
	if !ok || sess.Federated || sess.ephemeral || sess.Token == "" {
		return
	}
	if ctx.Err() != nil {
		return
	}

	if err := m.store.Save(ctx, sess); err != nil {
		m.log.ErrorContext(ctx, "session save failed", slog.Any("error", err))
	}

	_ = m.transport.SetToken(w, sess.Token, time.Duration(sess.Idle)*time.Second)
	if m.cfg.CSRFEnabled {
		m.csrf.SetCookie(w, sess)
	}
}

// Destroy deletes the current session and expires its cookie. Used for
// explicit logout. Federated sessions are never destroyed here.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token := ""
	if sess, ok := FromContext(r.Context()); ok {
		if sess.Federated {
			return nil
		}
		token = sess.Token
		// Block the response phase from resurrecting the record.
		sess.ephemeral = true
	} else if t, err := m.transport.GetToken(r); err == nil {
		token = t
	}

	if token != "" {
		if err := m.store.Destroy(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

// resolve runs the resume-or-create state machine for one request. It always
// returns a usable session; backend failures degrade to an ephemeral
// anonymous record that is never persisted.
func (m *Manager) resolve(ctx context.Context, r *http.Request) *Session {
	token, err := m.transport.GetToken(r)
	if err == nil && token != "" {
		sess, rerr := m.store.Resume(ctx, token)
		switch {
		case rerr == nil:
			if verr := m.validate(sess, r); verr == nil {
				sess.State = StateResumed
				return sess
			}
			// Expired or failed ownership check: drop the stale
			// record and fall through to creation.
			if derr := m.store.Destroy(ctx, token); derr != nil {
				m.log.ErrorContext(ctx, "stale session destroy failed", slog.Any("error", derr))
			}
		case errors.Is(rerr, ErrSessionNotFound):
			// Normal miss, issue a fresh session below.
		default:
			m.log.ErrorContext(ctx, "session resume failed", slog.Any("error", rerr))
			return m.degraded(r)
		}
	}

	return m.create(ctx, r)
}

func (m *Manager) create(ctx context.Context, r *http.Request) *Session {
	sess, err := m.newSession(r)
	if err != nil {
		m.log.ErrorContext(ctx, "session token generation failed", slog.Any("error", err))
		return m.degraded(r)
	}

	if err := m.store.Create(ctx, sess); err != nil {
		m.log.ErrorContext(ctx, "session create failed", slog.Any("error", err))
		sess.ephemeral = true
	}
	return sess
}

func (m *Manager) newSession(r *http.Request) (*Session, error) {
	token, err := m.tokens.Generate()
	if err != nil {
		return nil, err
	}

	sess := NewSession(token, clientip.GetIP(r), userAgent(r), m.cfg.idleSeconds())
	if m.cfg.CSRFEnabled {
		if err := m.csrf.Attach(sess); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// degraded builds the anonymous fallback session used when the backend is
// unreachable. It carries a token and CSRF secret so downstream handlers
// work, but is never saved and never issues a cookie.
func (m *Manager) degraded(r *http.Request) *Session {
	token, _ := m.tokens.Generate()
	sess := NewSession(token, clientip.GetIP(r), userAgent(r), m.cfg.idleSeconds())
	if m.cfg.CSRFEnabled {
		_ = m.csrf.Attach(sess)
	}
	sess.ephemeral = true
	return sess
}

// validate applies the expiry check and the configured ownership policy.
func (m *Manager) validate(s *Session, r *http.Request) error {
	if s.IsExpired() {
		return ErrSessionExpired
	}

	switch m.cfg.Binding {
	case BindingLog:
		if !m.bindingMatches(s, r) {
			m.log.WarnContext(r.Context(), "session binding mismatch",
				slog.String("stored_ip", s.ClientIP),
				slog.String("request_ip", clientip.GetIP(r)))
		}
	case BindingStrict:
		if !m.bindingMatches(s, r) {
			return ErrInvalidSession
		}
	}
	return nil
}

func (m *Manager) bindingMatches(s *Session, r *http.Request) bool {
	return s.ClientIP == clientip.GetIP(r) && s.UserAgent == userAgent(r)
}

// isStateChanging reports whether the method requires CSRF proof.
func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
