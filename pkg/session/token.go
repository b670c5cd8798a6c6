package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// TokenSource produces opaque session identifiers. Implementations must be
// safe for concurrent use and must draw from a cryptographically secure
// source; the store's primary-key constraint is only the backstop against
// collisions, not the defense.
type TokenSource interface {
	Generate() (string, error)
}

// RandomTokenSource is the default source: 32 bytes from crypto/rand,
// URL-safe base64 encoded (256 bits of entropy).
type RandomTokenSource struct{}

func (RandomTokenSource) Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// UUIDTokenSource generates random (v4) UUID tokens. Useful when tokens must
// be consumable by systems that expect UUID-shaped identifiers.
type UUIDTokenSource struct{}

func (UUIDTokenSource) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return id.String(), nil
}
