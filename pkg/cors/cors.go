// Package cors writes Cross-Origin Resource Sharing response headers. It is
// the collaborator the session middleware triggers on every non-health-check
// request; it carries no routing or preflight-termination logic of its own.
package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Config holds the CORS header policy.
type Config struct {
	// AllowOrigins lists allowed origins. "*" allows all.
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	// AllowMethods lists allowed HTTP methods for preflight responses.
	AllowMethods []string `env:"CORS_ALLOW_METHODS" envDefault:"GET,HEAD,POST,PUT,PATCH,DELETE"`
	// AllowHeaders lists allowed request headers for preflight responses.
	AllowHeaders []string `env:"CORS_ALLOW_HEADERS" envDefault:"Accept,Content-Type,Authorization,X-CSRF-Token"`
	// AllowCredentials permits cookies on cross-origin requests. Ignored
	// for wildcard origins; browsers reject that combination.
	AllowCredentials bool `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	// MaxAge caches preflight results, in seconds. Zero omits the header.
	MaxAge int `env:"CORS_MAX_AGE" envDefault:"0"`
}

// DefaultConfig allows every origin with common methods and headers.
func DefaultConfig() Config {
	return Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders: []string{"Accept", "Content-Type", "Authorization", "X-CSRF-Token"},
	}
}

// Headers applies a Config to responses.
type Headers struct {
	cfg Config
}

// New creates a header writer for the given policy. Empty lists fall back to
// the defaults.
func New(cfg Config) *Headers {
	def := DefaultConfig()
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = def.AllowOrigins
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = def.AllowMethods
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = def.AllowHeaders
	}
	return &Headers{cfg: cfg}
}

// Apply stamps the CORS headers for the request's origin. Requests without
// an Origin header and origins outside the allow list get nothing.
func (h *Headers) Apply(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}

	allowed, wildcard := h.allowOrigin(origin)
	if allowed == "" {
		return
	}

	header := w.Header()
	header.Add("Vary", "Origin")
	header.Set("Access-Control-Allow-Origin", allowed)
	header.Set("Access-Control-Allow-Methods", strings.Join(h.cfg.AllowMethods, ", "))
	header.Set("Access-Control-Allow-Headers", strings.Join(h.cfg.AllowHeaders, ", "))

	if h.cfg.AllowCredentials && !wildcard {
		header.Set("Access-Control-Allow-Credentials", "true")
	}
	if h.cfg.MaxAge > 0 {
		header.Set("Access-Control-Max-Age", strconv.Itoa(h.cfg.MaxAge))
	}
}

// allowOrigin returns the header value for the given origin and whether the
// match was the wildcard.
func (h *Headers) allowOrigin(origin string) (string, bool) {
	if slices.Contains(h.cfg.AllowOrigins, "*") {
		return "*", true
	}
	if slices.Contains(h.cfg.AllowOrigins, origin) {
		return origin, false
	}
	return "", false
}
