package session

import "context"

// Store is the persistence contract for session records. Every method maps to
// a single parameterized statement against the backend; no multi-statement
// transaction is ever required. Implementations must be safe for concurrent
// use from multiple request-handling goroutines.
type Store interface {
	// Create inserts a new record. Backend failures are reported wrapped
	// in ErrPersistence.
	Create(ctx context.Context, s *Session) error

	// Resume loads a record by exact token match and deserializes its
	// payload. A miss returns ErrSessionNotFound; expiry and ownership are
	// the manager's concern, not the store's.
	Resume(ctx context.Context, token string) (*Session, error)

	// Save upserts the record and bumps its Updated timestamp. It is a
	// no-op for records with an empty token and for federated sessions.
	Save(ctx context.Context, s *Session) error

	// Destroy deletes the record. Destroying an absent token is not an
	// error.
	Destroy(ctx context.Context, token string) error

	// DeleteExpired removes every record whose idle window closed before
	// the cutoff (unix seconds). Invoked by the janitor only.
	DeleteExpired(ctx context.Context, cutoff int64) error

	// EnsureSchema idempotently creates backing structures. Called once at
	// process startup, never per-request.
	EnsureSchema(ctx context.Context) error
}
