package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductSalesResult ventas agregadas por nombre de producto (snapshot del ítem).
type ProductSalesResult struct {
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// PaymentMethodResult ventas agregadas por forma de pago.
type PaymentMethodResult struct {
	PaymentMethod string
	SalesCount    int
	Revenue       decimal.Decimal
}

// DailySalesResult ventas agregadas por día.
type DailySalesResult struct {
	Day        time.Time
	SalesCount int
	Revenue    decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura del dashboard de ventas.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesTotals suma de totales y cantidad de ventas en [from, to).
	// Usa COALESCE para devolver cero si no hay ventas en el período.
	GetSalesTotals(ctx context.Context, from, to time.Time) (revenue decimal.Decimal, count int, err error)

	// GetTopProducts los `limit` productos con mayor ingreso en el período.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSalesResult, error)

	GetPaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentMethodResult, error)

	// GetDailySales serie diaria en la zona horaria tz (nombre IANA).
	GetDailySales(ctx context.Context, from, to time.Time, tz string) ([]DailySalesResult, error)
	// GetUnitsSoldBySKU unidades vendidas por SKU en el período.
	GetUnitsSoldBySKU(ctx context.Context, from, to time.Time) (map[string]int, error)
}
