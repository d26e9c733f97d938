package redisstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// IdempotencyLock implementa ports.IdempotencyLock con SET NX + TTL.
type IdempotencyLock struct {
	rdb *redis.Client
}

// NewIdempotencyLock construye el lock sobre la conexión dada.
func NewIdempotencyLock(c *Client) *IdempotencyLock {
	return &IdempotencyLock{rdb: c.rdb}
}

func lockKey(key string) string { return "pdv:checkout:lock:" + key }

// Acquire devuelve false si otra petición ya tiene la clave.
func (l *IdempotencyLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, lockKey(key), "1", ttl).Result()
}

// Release libera la clave.
func (l *IdempotencyLock) Release(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, lockKey(key)).Err()
}
