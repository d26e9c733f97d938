package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.LowStockNotificationRepository = (*LowStockNotificationRepo)(nil)

// LowStockNotificationRepo guarda el último aviso de estoque baixo por producto/categoría.
type LowStockNotificationRepo struct {
	q Querier
}

// NewLowStockNotificationRepository construye el adaptador.
func NewLowStockNotificationRepository(q Querier) *LowStockNotificationRepo {
	return &LowStockNotificationRepo{q: q}
}

// LastNotified devuelve el último aviso de cada clave que tenga registro.
func (r *LowStockNotificationRepo) LastNotified(ctx context.Context, keys []entity.LowStockKey) (map[entity.LowStockKey]time.Time, error) {
	out := make(map[entity.LowStockKey]time.Time, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	ids := make([]int64, len(keys))
	cats := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.ProductID
		cats[i] = k.Category
	}
	rows, err := r.q.Query(ctx, `
		SELECT n.product_id, n.category, n.notified_at
		FROM low_stock_notifications n
		JOIN unnest($1::bigint[], $2::text[]) AS k(product_id, category)
		  ON k.product_id = n.product_id AND k.category = n.category`, ids, cats)
	if err != nil {
		return nil, fmt.Errorf("low stock last notified: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			k  entity.LowStockKey
			at time.Time
		)
		if err := rows.Scan(&k.ProductID, &k.Category, &at); err != nil {
			return nil, fmt.Errorf("scan low stock notification: %w", err)
		}
		out[k] = at
	}
	return out, rows.Err()
}

// MarkNotified registra (upsert) el aviso para todas las claves.
func (r *LowStockNotificationRepo) MarkNotified(ctx context.Context, keys []entity.LowStockKey, at time.Time) error {
	if len(keys) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, k := range keys {
		batch.Queue(`
			INSERT INTO low_stock_notifications (product_id, category, notified_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_id, category) DO UPDATE SET notified_at = EXCLUDED.notified_at`,
			k.ProductID, k.Category, at)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range keys {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("mark low stock notified: %w", err)
		}
	}
	return nil
}
