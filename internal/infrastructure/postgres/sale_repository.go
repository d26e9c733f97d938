package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id::text, total, payment_method, idempotency_key, created_at`

// SaleRepo persistencia de ventas e ítems (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y sus ítems en una sola transacción (savepoint si q ya es una tx).
// Completa IDs, posición y CreatedAt.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sales (id, total, payment_method, idempotency_key, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			sale.ID, sale.Total, sale.PaymentMethod, sale.IdempotencyKey, sale.CreatedAt,
		); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i := range sale.Items {
			it := &sale.Items[i]
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			it.SaleID = sale.ID
			it.Position = i + 1
			batch.Queue(`
				INSERT INTO sale_items (id, sale_id, position, product_sku, product_name, price, quantity)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				it.ID, it.SaleID, it.Position, it.ProductSKU, it.ProductName, it.Price, it.Quantity,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range sale.Items {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return err
			}
		}
		return br.Close()
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.IdempotencyKey, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID obtiene la venta con sus ítems.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get sale", `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByIdempotencyKey venta ya registrada con esa clave, o nil.
func (r *SaleRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error) {
	return r.getOne(ctx, "get sale by idempotency key",
		`SELECT `+saleColumns+` FROM sales WHERE idempotency_key = $1`, key)
}

// ListRecent ventas más recientes primero, con ítems; a igual created_at gana la última
// insertada. limit se acota a MaxSalesListed.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > repository.MaxSalesListed {
		limit = repository.MaxSalesListed
	}
	return r.listWithItems(ctx, "list sales",
		`SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC, seq DESC LIMIT $1`, limit)
}

// ListBetween ventas en [from, to) en orden cronológico, con ítems.
func (r *SaleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	return r.listWithItems(ctx, "list sales between",
		`SELECT `+saleColumns+` FROM sales WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at ASC, seq ASC`,
		from, to)
}

func (r *SaleRepo) listWithItems(ctx context.Context, op, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.attachItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// attachItems carga los ítems de todas las ventas en una sola consulta.
func (r *SaleRepo) attachItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
		s.Items = []entity.SaleItem{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT id::text, sale_id::text, position, product_sku, product_name, price, quantity
		FROM sale_items
		WHERE sale_id = ANY($1::text[]::uuid[])
		ORDER BY sale_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.Position, &it.ProductSKU, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

// DeleteAll borra ítems y ventas en una transacción.
func (r *SaleRepo) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sale_items`); err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM sales`)
		if err != nil {
			return err
		}
		deleted = cmd.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete sales: %w", err)
	}
	return deleted, nil
}
