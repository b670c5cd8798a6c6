package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/cookie"
)

func setCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	w := httptest.NewRecorder()
	m.Set(w, "token", "abc")

	c := setCookie(t, w, "token")
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.Secure)
}

func TestSetOverrides(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	w := httptest.NewRecorder()
	m.Set(w, "token", "abc",
		cookie.WithPath("/app"),
		cookie.WithDomain("example.com"),
		cookie.WithMaxAge(3600),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	c := setCookie(t, w, "token")
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.Secure)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestManagerDefaultsFromNew(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecure(true))

	w := httptest.NewRecorder()
	m.Set(w, "token", "abc")

	c := setCookie(t, w, "token")
	assert.True(t, c.Secure, "constructor options become defaults")
	assert.Equal(t, "/", c.Path)
}

func TestGet(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})

	got, err := m.Get(r, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	_, err = m.Get(r, "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	w := httptest.NewRecorder()
	m.Delete(w, "token")

	c := setCookie(t, w, "token")
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Expires.Unix() <= 0)
}
