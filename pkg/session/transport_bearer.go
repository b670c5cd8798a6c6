package session

import (
	"net/http"
	"strings"
	"time"
)

// bearerPrefix is matched case-sensitively and stripped before lookup.
const bearerPrefix = "Bearer "

// BearerTransport reads the token from the Authorization header. It never
// writes to the response; the cookie transport owns token issuance.
type BearerTransport struct{}

// NewBearerTransport creates an Authorization-header transport.
func NewBearerTransport() *BearerTransport {
	return &BearerTransport{}
}

func (t *BearerTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get("Authorization")
	if !strings.HasPrefix(value, bearerPrefix) {
		return "", ErrSessionNotFound
	}
	token := strings.TrimPrefix(value, bearerPrefix)
	if token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *BearerTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return nil
}

func (t *BearerTransport) ClearToken(w http.ResponseWriter) error {
	return nil
}
