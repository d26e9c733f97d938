package memory

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.LowStockNotificationRepository = (*LowStockRepo)(nil)

// LowStockRepo registro de avisos en memoria.
type LowStockRepo struct {
	s *Store
}

func (r *LowStockRepo) LastNotified(_ context.Context, keys []entity.LowStockKey) (map[entity.LowStockKey]time.Time, error) {
	defer r.s.lock(false)()
	out := make(map[entity.LowStockKey]time.Time, len(keys))
	for _, k := range keys {
		if at, ok := r.s.notified[k]; ok {
			out[k] = at
		}
	}
	return out, nil
}

func (r *LowStockRepo) MarkNotified(_ context.Context, keys []entity.LowStockKey, at time.Time) error {
	defer r.s.lock(false)()
	for _, k := range keys {
		r.s.notified[k] = at
	}
	return nil
}
