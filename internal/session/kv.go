// Package session persists the per-visitor state of the booking flow: the
// booking intent that survives the login detour, and the showtime-scoped
// flow state (step selection, seats, refreshments, voucher).  Records are
// session-scoped and expire with the browsing session; nothing here is a
// durable order.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session key holds no value.
var ErrNotFound = errors.New("session: not found")

// KV is the minimal key-value surface the session store needs.  Redis
// backs it in production; tests substitute an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// GetDel reads and deletes atomically, for consume-once reads.
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// RedisKV adapts a go-redis client to the KV interface.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps the given client.  The client must be non-nil; callers
// that failed to connect to Redis should not construct a store at all.
func NewRedisKV(client *redis.Client) *RedisKV {
	if client == nil {
		panic("nil redis client passed to NewRedisKV")
	}
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) GetDel(ctx context.Context, key string) (string, error) {
	v, err := r.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
