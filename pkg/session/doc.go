// Package session implements server-side session management for HTTP
// services: it issues, resumes, persists and expires session records
// identified by an opaque token, and enforces CSRF protection on
// state-changing requests through a double-submit handshake.
//
// The package is storage-agnostic: any backend satisfying the Store
// interface can be plugged in. PostgreSQL (PGStore), Redis (RedisStore) and
// a concurrent in-memory implementation ship out of the box. Tokens are
// resolved from the request through the Transport interface; the default
// chain tries the session cookie, then the Authorization bearer header, then
// a "session" query/form parameter, first non-empty match wins.
//
// # Architecture
//
// A Manager orchestrates the per-request lifecycle through two host hooks:
//
//	r, ok := manager.OnRequest(w, r)   // before routing
//	manager.OnResponseHeaders(ctx, w)  // before headers are sent
//
// OnRequest resolves the token, resumes the record (or creates a fresh one
// when the token is missing, unknown, expired or fails the ownership check),
// applies the CSRF gate and stamps CORS headers. OnResponseHeaders saves the
// record and emits the session and CSRF cookies. Middleware composes both
// hooks into a standard net/http middleware. A Janitor sweeps expired rows
// on its own ticker, independent of request traffic.
//
// # Usage
//
//	cfg := session.DefaultConfig()
//	store, _ := session.NewPGStore(pool, cfg.Table)
//	_ = store.EnsureSchema(ctx)
//
//	manager := session.New(cfg,
//	    session.WithStore(store),
//	    session.WithLogger(log),
//	)
//	go session.NewJanitor(store, cfg.PurgeInterval, log).Run(ctx)
//
//	mux := http.NewServeMux()
//	handler := manager.Middleware(mux)
//
//	func profile(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    sess.Set("theme", "dark") // persisted when the response starts
//	}
//
// # Failure semantics
//
// Backend unavailability never aborts a request: the manager degrades to an
// ephemeral anonymous session that is not persisted and issues no cookie.
// The only condition that halts the pipeline before the handler is a CSRF
// mismatch under the "fail" policy, which responds 406.
//
// Sessions marked Federated (sourced from an external identity layer and
// attached to the request context upstream) bypass the store, the CSRF gate
// and Destroy entirely.
//
// # Concurrency
//
// Two concurrent requests resuming the same token both read and both write,
// yielding last-writer-wins on the payload and the Updated timestamp. The
// package deliberately performs no cross-request locking or caching.
package session
