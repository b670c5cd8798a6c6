package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidConfig     = errors.New("failed to parse postgres config")
	ErrConnectionFailed  = errors.New("failed to open postgres connection")
	ErrHealthcheckFailed = errors.New("postgres healthcheck failed")
)

// IsNotFoundError detects pgx.ErrNoRows for uniform miss handling.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError detects unique constraint violations (SQLSTATE 23505),
// e.g. a session token collision caught by the primary key.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
