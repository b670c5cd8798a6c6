package session

import (
	"net/http"
	"time"

	"github.com/sessionkit/sessionkit/pkg/cookie"
)

// CookieTransport carries the token in a cookie whose attributes come from
// the session configuration.
type CookieTransport struct {
	cookies *cookie.Manager
	cfg     Config
}

// NewCookieTransport creates a cookie-based transport.
func NewCookieTransport(cookies *cookie.Manager, cfg Config) *CookieTransport {
	return &CookieTransport{cookies: cookies, cfg: cfg}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.Get(r, t.cfg.CookieName)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	t.cookies.Set(w, t.cfg.CookieName, token, t.cookieOptions(int(ttl.Seconds()))...)
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.cfg.CookieName, t.cookieOptions(0)...)
	return nil
}

func (t *CookieTransport) cookieOptions(maxAge int) []cookie.Option {
	return []cookie.Option{
		cookie.WithPath(t.cfg.CookiePath),
		cookie.WithDomain(t.cfg.CookieDomain),
		cookie.WithMaxAge(maxAge),
		cookie.WithSecure(t.cfg.CookieSecure),
		cookie.WithHTTPOnly(t.cfg.CookieHTTPOnly),
		cookie.WithSameSite(t.cfg.CookieSameSite),
	}
}
