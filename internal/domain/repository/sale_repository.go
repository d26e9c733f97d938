package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// MaxSalesListed tope de ventas devueltas por ListRecent.
const MaxSalesListed = 100

// SaleRepository puerto de persistencia para ventas e ítems.
type SaleRepository interface {
	// Create inserta la venta y sus ítems. Una idempotency key repetida devuelve domain.ErrDuplicate.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error)
	// ListRecent ventas con ítems, más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error)
	// ListBetween ventas con ítems en [from, to), más antiguas primero.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Sale, error)
	// DeleteAll borra todos los ítems y ventas; devuelve cuántas ventas se borraron.
	DeleteAll(ctx context.Context) (int64, error)
}
