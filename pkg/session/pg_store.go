package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the narrow slice of pgxpool.Pool the store needs. Every access
// goes through a parameterized statement on this interface; it is the
// injection-safety boundary and the seam used by tests to fake the backend.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// identPattern guards the one spot where an identifier is interpolated into
// SQL. The table name originates from trusted configuration, never from
// request input; this is a startup-time sanity check, not request filtering.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PGStore implements Store against a PostgreSQL table.
//
// Column layout: token TEXT primary key, userid TEXT, created/updated BIGINT
// unix seconds, idle INTEGER seconds, data TEXT payload blob, ipaddress TEXT,
// useragent TEXT.
type PGStore struct {
	db    Querier
	table string
}

// NewPGStore creates a PostgreSQL-backed session store. The table name must
// be a plain SQL identifier.
func NewPGStore(db Querier, table string) (*PGStore, error) {
	if table == "" {
		table = "sessions"
	}
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid session table name %q", table)
	}
	return &PGStore{db: db, table: table}, nil
}

func (p *PGStore) Create(ctx context.Context, s *Session) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (token, userid, created, updated, idle, data, ipaddress, useragent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, p.table)

	_, err := p.db.Exec(ctx, stmt,
		s.Token, s.UserID, s.Created, s.Updated, s.Idle,
		encodePayload(s.Data), s.ClientIP, s.UserAgent)
	if err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

func (p *PGStore) Resume(ctx context.Context, token string) (*Session, error) {
	stmt := fmt.Sprintf(`SELECT token, userid, created, updated, idle, data, ipaddress, useragent
		FROM %s WHERE token = $1`, p.table)

	var (
		s    Session
		data string
	)
	err := p.db.QueryRow(ctx, stmt, token).Scan(
		&s.Token, &s.UserID, &s.Created, &s.Updated, &s.Idle,
		&data, &s.ClientIP, &s.UserAgent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}

	s.Data = decodePayload(data)
	s.State = StateResumed
	return &s, nil
}

func (p *PGStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" || s.Federated {
		return nil
	}
	s.Touch()

	stmt := fmt.Sprintf(`INSERT INTO %s (token, userid, created, updated, idle, data, ipaddress, useragent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (token) DO UPDATE
		SET userid = EXCLUDED.userid, updated = EXCLUDED.updated,
		    idle = EXCLUDED.idle, data = EXCLUDED.data`, p.table)

	_, err := p.db.Exec(ctx, stmt,
		s.Token, s.UserID, s.Created, s.Updated, s.Idle,
		encodePayload(s.Data), s.ClientIP, s.UserAgent)
	if err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

func (p *PGStore) Destroy(ctx context.Context, token string) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE token = $1`, p.table)
	if _, err := p.db.Exec(ctx, stmt, token); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

func (p *PGStore) DeleteExpired(ctx context.Context, cutoff int64) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE updated + idle < $1`, p.table)
	if _, err := p.db.Exec(ctx, stmt, cutoff); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

func (p *PGStore) EnsureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		token TEXT PRIMARY KEY,
		userid TEXT,
		created BIGINT NOT NULL DEFAULT 0,
		updated BIGINT NOT NULL DEFAULT 0,
		idle INTEGER NOT NULL DEFAULT 0,
		data TEXT,
		ipaddress TEXT,
		useragent TEXT
	)`, p.table)

	if _, err := p.db.Exec(ctx, stmt); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}
