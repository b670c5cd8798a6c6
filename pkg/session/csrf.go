package session

import (
	"crypto/subtle"
	"net/http"

	"github.com/sessionkit/sessionkit/pkg/cookie"
)

// CSRFGuard issues and validates per-session anti-forgery secrets using the
// double-submit pattern: the secret lives in the session payload and is
// mirrored into a client-readable cookie; state-changing requests must echo
// it back via header or form field.
type CSRFGuard struct {
	tokens  TokenSource
	cookies *cookie.Manager
	cfg     Config
}

// NewCSRFGuard creates a guard bound to the given configuration.
func NewCSRFGuard(cfg Config, tokens TokenSource, cookies *cookie.Manager) *CSRFGuard {
	if tokens == nil {
		tokens = RandomTokenSource{}
	}
	if cookies == nil {
		cookies = cookie.New()
	}
	return &CSRFGuard{tokens: tokens, cookies: cookies, cfg: cfg}
}

// Attach generates a fresh secret and binds it to the session. Called once
// at session creation.
func (g *CSRFGuard) Attach(s *Session) error {
	secret, err := g.tokens.Generate()
	if err != nil {
		return err
	}
	s.Set(csrfDataKey, secret)
	return nil
}

// Check reports whether the request carries the secret bound to the session.
// Safe methods pass unconditionally; for state-changing ones the client token
// is read from the configured header first, then from the form field.
// Comparison is constant-time.
func (g *CSRFGuard) Check(r *http.Request, s *Session) bool {
	if !isStateChanging(r.Method) {
		return true
	}

	secret := s.csrfSecret()
	if secret == "" {
		return false
	}

	supplied := r.Header.Get(g.cfg.CSRFHeader)
	if supplied == "" {
		supplied = r.FormValue(g.cfg.CSRFField)
	}
	if supplied == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) == 1
}

// SetCookie mirrors the session's secret into a client-readable cookie so
// scripts can echo it on the next state-changing call. HttpOnly is
// deliberately off; the cookie is the readable half of the double submit.
func (g *CSRFGuard) SetCookie(w http.ResponseWriter, s *Session) {
	secret := s.csrfSecret()
	if secret == "" {
		return
	}

	g.cookies.Set(w, g.cfg.CSRFCookieName, secret,
		cookie.WithPath(g.cfg.CookiePath),
		cookie.WithDomain(g.cfg.CookieDomain),
		cookie.WithMaxAge(s.Idle),
		cookie.WithSecure(g.cfg.CookieSecure),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(g.cfg.CookieSameSite),
	)
}
