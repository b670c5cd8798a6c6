package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/session"
)

// fakeQuerier records statements instead of hitting a database. The store's
// Querier seam exists precisely so these tests need no running PostgreSQL.
type fakeQuerier struct {
	execSQL  []string
	execArgs [][]any
	execErr  error

	rowSQL  string
	rowArgs []any
	row     fakeRow
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("OK 1"), nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.rowSQL = sql
	f.rowArgs = args
	return f.row
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: want %d destinations, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		case *int:
			*d = v.(int)
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

func newPGStore(t *testing.T, db session.Querier) *session.PGStore {
	t.Helper()
	store, err := session.NewPGStore(db, "sessions")
	require.NoError(t, err)
	return store
}

func TestNewPGStore(t *testing.T) {
	t.Parallel()

	t.Run("empty table falls back to default", func(t *testing.T) {
		t.Parallel()
		_, err := session.NewPGStore(&fakeQuerier{}, "")
		assert.NoError(t, err)
	})

	t.Run("rejects non-identifier table names", func(t *testing.T) {
		t.Parallel()
		for _, table := range []string{"se ssions", "sessions;drop", `"x"`, "1abc"} {
			_, err := session.NewPGStore(&fakeQuerier{}, table)
			assert.Error(t, err, table)
		}
	})
}

func TestPGStoreCreate(t *testing.T) {
	t.Parallel()
	db := &fakeQuerier{}
	store := newPGStore(t, db)

	sess := session.NewSession("tok", "192.0.2.1", "test-agent", 3600)
	sess.UserID = "user-1"
	sess.Set("theme", "dark")
	require.NoError(t, store.Create(context.Background(), sess))

	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], "INSERT INTO sessions")

	args := db.execArgs[0]
	require.Len(t, args, 8)
	assert.Equal(t, "tok", args[0])
	assert.Equal(t, "user-1", args[1])
	assert.Equal(t, sess.Created, args[2])
	assert.Equal(t, sess.Updated, args[3])
	assert.Equal(t, 3600, args[4])
	assert.JSONEq(t, `{"theme":"dark"}`, args[5].(string))
	assert.Equal(t, "192.0.2.1", args[6])
	assert.Equal(t, "test-agent", args[7])
}

func TestPGStoreCreateFailure(t *testing.T) {
	t.Parallel()
	db := &fakeQuerier{execErr: errors.New("connection refused")}
	store := newPGStore(t, db)

	err := store.Create(context.Background(), session.NewSession("tok", "", "", 60))
	assert.ErrorIs(t, err, session.ErrPersistence)
}

func TestPGStoreResume(t *testing.T) {
	t.Parallel()
	now := time.Now().Unix()

	t.Run("hydrates the full record", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{row: fakeRow{values: []any{
			"tok", "user-1", now - 100, now, 3600,
			`{"theme":"dark"}`, "192.0.2.1", "test-agent",
		}}}
		store := newPGStore(t, db)

		sess, err := store.Resume(context.Background(), "tok")
		require.NoError(t, err)

		assert.Contains(t, db.rowSQL, "FROM sessions WHERE token = $1")
		assert.Equal(t, []any{"tok"}, db.rowArgs)

		assert.Equal(t, "tok", sess.Token)
		assert.Equal(t, "user-1", sess.UserID)
		assert.Equal(t, now-100, sess.Created)
		assert.Equal(t, now, sess.Updated)
		assert.Equal(t, 3600, sess.Idle)
		assert.Equal(t, "192.0.2.1", sess.ClientIP)
		assert.Equal(t, "test-agent", sess.UserAgent)
		assert.Equal(t, session.StateResumed, sess.State)

		theme, ok := sess.GetString("theme")
		require.True(t, ok)
		assert.Equal(t, "dark", theme)
	})

	t.Run("miss maps to not found", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
		store := newPGStore(t, db)

		_, err := store.Resume(context.Background(), "never-issued")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("backend failure wraps persistence error", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{row: fakeRow{err: errors.New("connection reset")}}
		store := newPGStore(t, db)

		_, err := store.Resume(context.Background(), "tok")
		assert.ErrorIs(t, err, session.ErrPersistence)
	})

	t.Run("corrupt payload yields empty data", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{row: fakeRow{values: []any{
			"tok", "", now, now, 3600, `{"broken`, "", "",
		}}}
		store := newPGStore(t, db)

		sess, err := store.Resume(context.Background(), "tok")
		require.NoError(t, err)
		require.NotNil(t, sess.Data)
		assert.Empty(t, sess.Data)
	})
}

func TestPGStoreSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("upserts and bumps updated", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{}
		store := newPGStore(t, db)

		sess := session.NewSession("tok", "", "", 3600)
		sess.Updated = sess.Created - 100
		require.NoError(t, store.Save(ctx, sess))

		require.Len(t, db.execSQL, 1)
		assert.Contains(t, db.execSQL[0], "ON CONFLICT (token) DO UPDATE")
		assert.GreaterOrEqual(t, sess.Updated, sess.Created)
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{}
		store := newPGStore(t, db)

		require.NoError(t, store.Save(ctx, &session.Session{}))
		assert.Empty(t, db.execSQL)
	})

	t.Run("federated session is a no-op", func(t *testing.T) {
		t.Parallel()
		db := &fakeQuerier{}
		store := newPGStore(t, db)

		sess := session.NewSession("fed", "", "", 3600)
		sess.Federated = true
		require.NoError(t, store.Save(ctx, sess))
		assert.Empty(t, db.execSQL)
	})
}

func TestPGStoreDestroy(t *testing.T) {
	t.Parallel()
	db := &fakeQuerier{}
	store := newPGStore(t, db)

	require.NoError(t, store.Destroy(context.Background(), "tok"))
	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], "DELETE FROM sessions WHERE token = $1")
	assert.Equal(t, []any{"tok"}, db.execArgs[0])
}

func TestPGStoreDeleteExpired(t *testing.T) {
	t.Parallel()
	db := &fakeQuerier{}
	store := newPGStore(t, db)

	cutoff := time.Now().Unix()
	require.NoError(t, store.DeleteExpired(context.Background(), cutoff))
	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], "WHERE updated + idle < $1")
	assert.Equal(t, []any{cutoff}, db.execArgs[0])
}

func TestPGStoreEnsureSchema(t *testing.T) {
	t.Parallel()
	db := &fakeQuerier{}
	store := newPGStore(t, db)

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], "CREATE TABLE IF NOT EXISTS sessions")
	assert.Contains(t, db.execSQL[0], "token TEXT PRIMARY KEY")

	// Safe to call again.
	require.NoError(t, store.EnsureSchema(context.Background()))
}
