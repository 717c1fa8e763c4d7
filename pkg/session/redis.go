package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists snapshots in Redis, for multi-server deployments
// where a client may reattach to a different process.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	closed atomic.Bool
}

// RedisStoreOption configures RedisStore behavior.
type RedisStoreOption func(*redisStoreConfig)

type redisStoreConfig struct {
	prefix string
}

// WithRedisPrefix sets the key prefix for snapshot keys.
// Default: "weft:session:".
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(c *redisStoreConfig) {
		c.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed store over an existing client.
// The store does not own the client; Close only marks the store closed.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	cfg := &redisStoreConfig{
		prefix: "weft:session:",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &RedisStore{
		client: client,
		prefix: cfg.prefix,
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

// Save stores snapshot bytes with a TTL derived from expiresAt.
func (r *RedisStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	if r.closed.Load() {
		return ErrStoreClosed{}
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, sessionID)
	}
	return r.client.Set(ctx, r.key(sessionID), data, ttl).Err()
}

// Load retrieves snapshot bytes if the key exists.
func (r *RedisStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrStoreClosed{}
	}

	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Delete removes a session from Redis.
func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if r.closed.Load() {
		return ErrStoreClosed{}
	}
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

// Touch extends a session's TTL.
func (r *RedisStore) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if r.closed.Load() {
		return ErrStoreClosed{}
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, sessionID)
	}
	return r.client.Expire(ctx, r.key(sessionID), ttl).Err()
}

// Close marks the store closed. The underlying client belongs to the
// caller.
func (r *RedisStore) Close() error {
	r.closed.Store(true)
	return nil
}
