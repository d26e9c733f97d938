package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// LowStockNotificationRepository guarda cuándo se avisó por última vez cada par producto/categoría.
type LowStockNotificationRepository interface {
	// LastNotified devuelve el último aviso de las claves que tengan registro.
	LastNotified(ctx context.Context, keys []entity.LowStockKey) (map[entity.LowStockKey]time.Time, error)
	MarkNotified(ctx context.Context, keys []entity.LowStockKey, at time.Time) error
}
