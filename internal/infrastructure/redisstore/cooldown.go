package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// CooldownStore implementa repository.LowStockNotificationRepository.
// Cada aviso es una clave con TTL igual al cooldown; al expirar el producto vuelve a ser elegible.
type CooldownStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCooldownStore ttl debe ser >= al cooldown del verificador.
func NewCooldownStore(c *Client, ttl time.Duration) *CooldownStore {
	return &CooldownStore{rdb: c.rdb, ttl: ttl}
}

func cooldownKey(k entity.LowStockKey) string {
	return fmt.Sprintf("pdv:lowstock:%d:%s", k.ProductID, k.Category)
}

// LastNotified lee en un solo MGET.
func (s *CooldownStore) LastNotified(ctx context.Context, keys []entity.LowStockKey) (map[entity.LowStockKey]time.Time, error) {
	out := make(map[entity.LowStockKey]time.Time, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = cooldownKey(k)
	}
	vals, err := s.rdb.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget cooldown: %w", err)
	}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // nil = sin aviso previo
		}
		at, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			continue
		}
		out[keys[i]] = at
	}
	return out, nil
}

// MarkNotified escribe todas las claves en un pipeline.
func (s *CooldownStore) MarkNotified(ctx context.Context, keys []entity.LowStockKey, at time.Time) error {
	if len(keys) == 0 {
		return nil
	}
	pipe := s.rdb.Pipeline()
	for _, k := range keys {
		pipe.Set(ctx, cooldownKey(k), at.UTC().Format(time.RFC3339Nano), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis marcar cooldown: %w", err)
	}
	return nil
}
