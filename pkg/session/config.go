package session

import (
	"fmt"
	"net/http"
	"time"
)

// CSRFPolicy selects what happens when the anti-forgery check fails.
type CSRFPolicy string

const (
	// CSRFFail rejects the request with 406 and halts the pipeline.
	CSRFFail CSRFPolicy = "fail"
	// CSRFLog records the violation and lets the request through.
	CSRFLog CSRFPolicy = "log"
	// CSRFSilent lets the request through without a trace.
	CSRFSilent CSRFPolicy = "silent"
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (p *CSRFPolicy) UnmarshalText(text []byte) error {
	switch v := CSRFPolicy(text); v {
	case CSRFFail, CSRFLog, CSRFSilent:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown csrf policy %q", text)
	}
}

// BindingPolicy controls the client IP / user agent ownership check applied
// when resuming a session.
type BindingPolicy string

const (
	// BindingOff skips the ownership check entirely.
	BindingOff BindingPolicy = "off"
	// BindingLog records mismatches but still resumes the session.
	BindingLog BindingPolicy = "log"
	// BindingStrict treats a mismatch like an expired session: the record
	// is destroyed and a fresh one issued.
	BindingStrict BindingPolicy = "strict"
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (p *BindingPolicy) UnmarshalText(text []byte) error {
	switch v := BindingPolicy(text); v {
	case BindingOff, BindingLog, BindingStrict:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown binding policy %q", text)
	}
}

// Config holds session configuration. Construct it once at startup and hand
// it to New; nothing in this package reads ambient global state.
type Config struct {
	// CookieName is the name of the session cookie carrying the token.
	CookieName     string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	CookieDomain   string        `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	CookiePath     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // 2 = Lax

	// IdleTimeout is copied into each record at creation; the cookie's
	// relative expiry mirrors it.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"24h"`

	// CSRFEnabled toggles the anti-forgery handshake as a whole.
	CSRFEnabled    bool       `env:"SESSION_CSRF_ENABLED" envDefault:"true"`
	CSRFPolicy     CSRFPolicy `env:"SESSION_CSRF_POLICY" envDefault:"fail"`
	CSRFHeader     string     `env:"SESSION_CSRF_HEADER" envDefault:"X-CSRF-Token"`
	CSRFField      string     `env:"SESSION_CSRF_FIELD" envDefault:"_csrf"`
	CSRFCookieName string     `env:"SESSION_CSRF_COOKIE_NAME" envDefault:"csrf"`

	// Binding selects the IP/UA ownership check strictness.
	Binding BindingPolicy `env:"SESSION_BINDING" envDefault:"off"`

	// HealthCheckPath is exempt from all session, CSRF and CORS handling.
	HealthCheckPath string `env:"SESSION_HEALTHCHECK_PATH" envDefault:"/healthcheck"`

	// PurgeInterval is the janitor's sweep interval.
	PurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL" envDefault:"1h"`

	// Table is the backing table name. It comes from trusted configuration
	// only; request input never reaches identifier position.
	Table string `env:"SESSION_TABLE" envDefault:"sessions"`
}

// DefaultConfig returns the configuration used when no env is loaded.
func DefaultConfig() Config {
	return Config{
		CookieName:      "session",
		CookiePath:      "/",
		CookieHTTPOnly:  true,
		CookieSameSite:  http.SameSiteLaxMode,
		IdleTimeout:     24 * time.Hour,
		CSRFEnabled:     true,
		CSRFPolicy:      CSRFFail,
		CSRFHeader:      "X-CSRF-Token",
		CSRFField:       "_csrf",
		CSRFCookieName:  "csrf",
		Binding:         BindingOff,
		HealthCheckPath: "/healthcheck",
		PurgeInterval:   time.Hour,
		Table:           "sessions",
	}
}

// idleSeconds returns the idle timeout as whole seconds, as stored per record.
func (c Config) idleSeconds() int {
	return int(c.IdleTimeout / time.Second)
}
