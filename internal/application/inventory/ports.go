package inventory

import (
	"context"

	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de productos atado a esa tx. Garantiza que un lote de estoque se aplique completo o nada.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// LowStockTrigger dispara la verificación de estoque baixo sin esperar el resultado.
type LowStockTrigger interface {
	Trigger(ctx context.Context)
}

// NopTrigger no hace nada (herramientas CLI y tests).
type NopTrigger struct{}

func (NopTrigger) Trigger(context.Context) {}
