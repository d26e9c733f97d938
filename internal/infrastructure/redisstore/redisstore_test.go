package redisstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/infrastructure/redisstore"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/redisstore/
func newClient(t *testing.T) *redisstore.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	c, err := redisstore.NewClient(addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCooldownStore(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	store := redisstore.NewCooldownStore(c, time.Minute)

	id := time.Now().UnixNano()
	notified := entity.LowStockKey{ProductID: id, Category: "Roupas"}
	fresh := entity.LowStockKey{ProductID: id + 1, Category: "Roupas"}
	at := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.MarkNotified(ctx, []entity.LowStockKey{notified}, at))
	got, err := store.LastNotified(ctx, []entity.LowStockKey{notified, fresh})
	require.NoError(t, err)
	assert.True(t, got[notified].Equal(at))
	_, ok := got[fresh]
	assert.False(t, ok)
}

func TestIdempotencyLock(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	lock := redisstore.NewIdempotencyLock(c)
	key := fmt.Sprintf("teste-%d", time.Now().UnixNano())

	ok, err := lock.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lock.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "la clave ya está tomada")

	require.NoError(t, lock.Release(ctx, key))
	ok, err = lock.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, lock.Release(ctx, key))
}
