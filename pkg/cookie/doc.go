// Package cookie provides a small cookie manager with shared default
// attributes and per-call functional options.
//
// A Manager is configured once with the attributes the application wants on
// every cookie (path, domain, security flags) and individual writes override
// only what differs:
//
//	mgr := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"))
//	mgr.Set(w, "session", token, cookie.WithMaxAge(86400))
//	mgr.Set(w, "csrf", secret, cookie.WithHTTPOnly(false))
//
// Values are written verbatim. Callers that need tamper-proof cookies should
// store server-side state keyed by an opaque random value instead, which is
// exactly what the session package does.
package cookie
