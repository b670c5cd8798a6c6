package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a Redis instance. Each record is a
// JSON blob under "<prefix><token>" with a TTL equal to the idle timeout, so
// Redis itself performs the expiry sweep and DeleteExpired has nothing to do.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:"}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	return r.write(ctx, s)
}

func (r *RedisStore) Resume(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// Corrupt blob: treat like a miss so the caller issues a fresh
		// session instead of failing the request.
		return nil, ErrSessionNotFound
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.State = StateResumed
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" || s.Federated {
		return nil
	}
	s.Touch()
	return r.write(ctx, s)
}

func (r *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

// DeleteExpired is a no-op: per-key TTLs already evict idle sessions.
func (r *RedisStore) DeleteExpired(ctx context.Context, cutoff int64) error {
	return nil
}

func (r *RedisStore) EnsureSchema(ctx context.Context) error { return nil }

func (r *RedisStore) write(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrPersistence, err)
	}

	ttl := time.Duration(s.Idle) * time.Second
	if err := r.client.Set(ctx, r.key(s.Token), b, ttl).Err(); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}
