package cookie

import "errors"

var (
	// ErrCookieNotFound indicates no cookie with the requested name exists.
	ErrCookieNotFound = errors.New("cookie.not_found")
)
