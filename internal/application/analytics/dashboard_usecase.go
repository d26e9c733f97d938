// Package analytics contiene los casos de uso del dashboard de vendas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

const dashboardTopProducts = 10 // productos en el gráfico de participación

// DashboardUseCase genera los KPIs de ventas de un período.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, loc: loc, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO para [from, to] (YYYY-MM-DD, ambos inclusive).
// Sin fechas usa el mes en curso hasta hoy.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesTotals      → totalVendas, totalPedidos, ticketMedio
//  2. GetTopProducts      → produtoMaisVendido, vendasPorProduto
//  3. GetPaymentBreakdown → vendasPorPagamento
//  4. GetDailySales       → vendasPorDia
func (uc *DashboardUseCase) GetSummary(ctx context.Context, fromStr, toStr string) (*dto.DashboardSummaryDTO, error) {
	from, to, err := uc.period(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	end := to.AddDate(0, 0, 1) // exclusivo

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type totalsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type productsResult struct {
		rows []repository.ProductSalesResult
		err  error
	}
	type paymentsResult struct {
		rows []repository.PaymentMethodResult
		err  error
	}
	type dailyResult struct {
		rows []repository.DailySalesResult
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	productsCh := make(chan productsResult, 1)
	paymentsCh := make(chan paymentsResult, 1)
	dailyCh := make(chan dailyResult, 1)

	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesTotals(ctx, from, end)
		totalsCh <- totalsResult{rev, n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, from, end, dashboardTopProducts)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetPaymentBreakdown(ctx, from, end)
		paymentsCh <- paymentsResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetDailySales(ctx, from, end, uc.loc.String())
		dailyCh <- dailyResult{rows, err}
	}()

	totals := <-totalsCh
	products := <-productsCh
	payments := <-paymentsCh
	daily := <-dailyCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("dashboard: formas de pago: %w", payments.err)
	}
	if daily.err != nil {
		return nil, fmt.Errorf("dashboard: serie diaria: %w", daily.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		From:          from.Format("2006-01-02"),
		To:            to.Format("2006-01-02"),
		TotalSales:    totals.revenue.Round(2),
		OrderCount:    totals.count,
		AverageTicket: decimal.Zero,
		TopProduct:    "Nenhum",
		ByProduct:     make([]dto.ProductShareDTO, 0, len(products.rows)),
		ByPayment:     make([]dto.PaymentShareDTO, 0, len(payments.rows)),
		Daily:         make([]dto.DailySalesDTO, 0, len(daily.rows)),
	}
	if totals.count > 0 {
		out.AverageTicket = totals.revenue.Div(decimal.NewFromInt(int64(totals.count))).Round(2)
	}

	topRevenue := decimal.Zero
	for _, p := range products.rows {
		topRevenue = topRevenue.Add(p.Revenue)
	}
	for _, p := range products.rows {
		out.ByProduct = append(out.ByProduct, dto.ProductShareDTO{
			Name:      p.ProductName,
			UnitsSold: p.UnitsSold,
			Amount:    p.Revenue.Round(2),
			Percent:   percent(p.Revenue, topRevenue),
		})
	}
	if len(products.rows) > 0 {
		out.TopProduct = products.rows[0].ProductName
	}

	for _, p := range payments.rows {
		out.ByPayment = append(out.ByPayment, dto.PaymentShareDTO{
			PaymentMethod: p.PaymentMethod,
			SalesCount:    p.SalesCount,
			Amount:        p.Revenue.Round(2),
			Percent:       percent(p.Revenue, totals.revenue),
		})
	}
	for _, d := range daily.rows {
		out.Daily = append(out.Daily, dto.DailySalesDTO{
			Date:       d.Day.Format("2006-01-02"),
			SalesCount: d.SalesCount,
			Amount:     d.Revenue.Round(2),
		})
	}
	return out, nil
}

// period interpreta las fechas en la zona horaria de la tienda. to es el inicio del último día.
func (uc *DashboardUseCase) period(fromStr, toStr string) (time.Time, time.Time, error) {
	now := uc.now().In(uc.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	var err error
	if fromStr != "" {
		if from, err = time.ParseInLocation("2006-01-02", fromStr, uc.loc); err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("from", "Data inicial inválida %q: use AAAA-MM-DD", fromStr)
		}
	}
	if toStr != "" {
		if to, err = time.ParseInLocation("2006-01-02", toStr, uc.loc); err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("to", "Data final inválida %q: use AAAA-MM-DD", toStr)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.NewValidationError("to", "Data final anterior à inicial")
	}
	return from, to, nil
}

// percent part/total × 100 redondeado; 0 si total es cero.
func percent(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(part.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
