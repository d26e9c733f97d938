package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del dashboard calculados sobre las ventas en memoria.
type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) between(from, to time.Time) []*entity.Sale {
	defer r.s.lock(false)()
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, cloneSale(s))
		}
	}
	return out
}

func (r *AnalyticsRepo) GetSalesTotals(_ context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	sales := r.between(from, to)
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total, len(sales), nil
}

func (r *AnalyticsRepo) GetTopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.ProductSalesResult, error) {
	idx := map[string]int{}
	var out []repository.ProductSalesResult
	for _, s := range r.between(from, to) {
		for _, it := range s.Items {
			i, ok := idx[it.ProductName]
			if !ok {
				i = len(out)
				idx[it.ProductName] = i
				out = append(out, repository.ProductSalesResult{ProductName: it.ProductName, Revenue: decimal.Zero})
			}
			out[i].UnitsSold += it.Quantity
			out[i].Revenue = out[i].Revenue.Add(it.Subtotal())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].UnitsSold > out[j].UnitsSold
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepo) GetPaymentBreakdown(_ context.Context, from, to time.Time) ([]repository.PaymentMethodResult, error) {
	idx := map[string]int{}
	var out []repository.PaymentMethodResult
	for _, s := range r.between(from, to) {
		i, ok := idx[s.PaymentMethod]
		if !ok {
			i = len(out)
			idx[s.PaymentMethod] = i
			out = append(out, repository.PaymentMethodResult{PaymentMethod: s.PaymentMethod, Revenue: decimal.Zero})
		}
		out[i].SalesCount++
		out[i].Revenue = out[i].Revenue.Add(s.Total)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out, nil
}

func (r *AnalyticsRepo) GetDailySales(_ context.Context, from, to time.Time, tz string) ([]repository.DailySalesResult, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	idx := map[time.Time]int{}
	var out []repository.DailySalesResult
	for _, s := range r.between(from, to) {
		y, m, d := s.CreatedAt.In(loc).Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		i, ok := idx[day]
		if !ok {
			i = len(out)
			idx[day] = i
			out = append(out, repository.DailySalesResult{Day: day, Revenue: decimal.Zero})
		}
		out[i].SalesCount++
		out[i].Revenue = out[i].Revenue.Add(s.Total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *AnalyticsRepo) GetUnitsSoldBySKU(_ context.Context, from, to time.Time) (map[string]int, error) {
	out := make(map[string]int)
	for _, s := range r.between(from, to) {
		for _, it := range s.Items {
			out[it.ProductSKU] += it.Quantity
		}
	}
	return out, nil
}
