package session

import "errors"

var (
	// ErrSessionNotFound indicates no record exists for the given token.
	// This is the normal "no such session" branch, not a backend failure.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the record's idle timeout has elapsed.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidSession indicates the record failed the ownership check
	// (client IP / user agent binding under the strict policy).
	ErrInvalidSession = errors.New("session.invalid")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrPersistence indicates the backing store could not complete a
	// statement. The manager degrades to an ephemeral anonymous session
	// instead of surfacing this to the client.
	ErrPersistence = errors.New("session.persistence_failed")

	// ErrCSRFViolation indicates an anti-forgery token mismatch.
	ErrCSRFViolation = errors.New("session.csrf_violation")
)
