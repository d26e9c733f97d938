package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// Días de historial de ventas usados para priorizar la reposição.
const replenishmentHistoryDays = 30

// ReplenishmentUseCase genera la lista de reposição: productos en o bajo el mínimo de su
// categoría, con cantidad sugerida y prioridad según lo vendido en los últimos 30 días.
type ReplenishmentUseCase struct {
	products   repository.ProductRepository
	analytics  repository.AnalyticsRepository
	thresholds inventory.Thresholds
	log        *logger.Logger
	now        func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposição. log puede ser nil.
func NewReplenishmentUseCase(
	products repository.ProductRepository,
	analytics repository.AnalyticsRepository,
	thresholds inventory.Thresholds,
	log *logger.Logger,
) *ReplenishmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReplenishmentUseCase{
		products:   products,
		analytics:  analytics,
		thresholds: thresholds,
		log:        log.Named("replenishment"),
		now:        time.Now,
	}
}

// GenerateReplenishmentList devuelve la lista ordenada por urgencia.
// El estoque ideal es 1,5 × el mínimo (redondeado hacia arriba).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	tracked, err := uc.products.ListTracked(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range tracked {
		minimum := uc.thresholds.MinimumFor(p.Category)
		if !p.Stock.AtOrBelow(minimum) {
			continue
		}
		current, _ := p.Stock.Quantity()
		ideal := (minimum*3 + 1) / 2
		suggested := ideal - current
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			Category:          p.Category,
			CurrentStock:      current,
			MinimumStock:      minimum,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}
	if len(suggestions) == 0 {
		return suggestions, nil
	}

	// Sin historial (falla la consulta) la lista se ordena solo por déficit
	end := uc.now()
	sold, err := uc.analytics.GetUnitsSoldBySKU(ctx, end.AddDate(0, 0, -replenishmentHistoryDays), end)
	if err != nil {
		uc.log.Warn().Err(err).Msg("historial de ventas no disponible; reposição ordenada solo por déficit")
		sold = nil
	}
	for i := range suggestions {
		suggestions[i].UnitsSold = sold[suggestions[i].SKU]
	}

	// Primero lo que más se vende; luego el mayor déficit relativo al mínimo
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		return a.MinimumStock-a.CurrentStock > b.MinimumStock-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
