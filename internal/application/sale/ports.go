package sale

import (
	"context"

	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// TxRunner ejecuta una función en una transacción con productos y ventas atados a la misma tx:
// la baja de estoque y el registro de la venta se confirman juntos o no se confirma ninguno.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}
