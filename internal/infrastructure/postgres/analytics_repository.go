package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesTotals ingresos y número de ventas del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total), 0) AS revenue,
	    COUNT(*)                  AS sales_count
	FROM sales s
	WHERE s.created_at >= $1 AND s.created_at < $2`

	var (
		revenue decimal.Decimal
		count   int
	)
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&revenue, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return revenue, count, nil
}

// GetTopProducts agrupa por nombre del ítem (snapshot), como en el recibo.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    i.product_name,
	    SUM(i.quantity)            AS units_sold,
	    SUM(i.price * i.quantity)  AS revenue
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY i.product_name
	ORDER BY revenue DESC, units_sold DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPaymentBreakdown ventas e ingresos por forma de pago.
func (r *AnalyticsRepo) GetPaymentBreakdown(ctx context.Context, from, to time.Time) ([]repository.PaymentMethodResult, error) {
	const query = `
	SELECT
	    s.payment_method,
	    COUNT(*)      AS sales_count,
	    SUM(s.total)  AS revenue
	FROM sales s
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY s.payment_method
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPaymentBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentMethodResult
	for rows.Next() {
		var row repository.PaymentMethodResult
		if err := rows.Scan(&row.PaymentMethod, &row.SalesCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetPaymentBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetDailySales serie diaria; el día se calcula en la zona horaria de la tienda.
func (r *AnalyticsRepo) GetDailySales(ctx context.Context, from, to time.Time, tz string) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    (date_trunc('day', s.created_at AT TIME ZONE $3))::date AS day,
	    COUNT(*)                                                AS sales_count,
	    SUM(s.total)                                            AS revenue
	FROM sales s
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, from, to, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.SalesCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetDailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetUnitsSoldBySKU unidades vendidas por SKU en el período (base de la lista de reposição).
func (r *AnalyticsRepo) GetUnitsSoldBySKU(ctx context.Context, from, to time.Time) (map[string]int, error) {
	const query = `
	SELECT i.product_sku, SUM(i.quantity) AS units_sold
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY i.product_sku`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetUnitsSoldBySKU: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			sku   string
			units int
		)
		if err := rows.Scan(&sku, &units); err != nil {
			return nil, fmt.Errorf("analytics.GetUnitsSoldBySKU scan: %w", err)
		}
		out[sku] = units
	}
	return out, rows.Err()
}
