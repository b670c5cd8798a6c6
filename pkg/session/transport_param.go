package session

import (
	"net/http"
	"time"
)

// defaultParamName is the query/form parameter carrying the token.
const defaultParamName = "session"

// ParamTransport reads the token from a query or form parameter. Like the
// bearer transport it is read-only on the response side.
type ParamTransport struct {
	name string
}

// NewParamTransport creates a parameter-based transport. An empty name falls
// back to "session".
func NewParamTransport(name string) *ParamTransport {
	if name == "" {
		name = defaultParamName
	}
	return &ParamTransport{name: name}
}

func (t *ParamTransport) GetToken(r *http.Request) (string, error) {
	// FormValue covers both the query string and an urlencoded body; the
	// parsed form is cached on the request so handlers still see it.
	token := r.FormValue(t.name)
	if token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *ParamTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return nil
}

func (t *ParamTransport) ClearToken(w http.ResponseWriter) error {
	return nil
}
