package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando no existe la fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)

	// GetByIDForUpdate y GetBySKUForUpdate bloquean la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Product, error)

	// Update sobrescribe todos los campos editables (incluido el estoque).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id int64, stock entity.Stock) error

	// DecrementStock resta qty solo si el estoque controlado alcanza.
	// Devuelve false si ninguna fila cumplió la condición.
	DecrementStock(ctx context.Context, id int64, qty int) (bool, error)

	List(ctx context.Context) ([]*entity.Product, error)
	ListTracked(ctx context.Context) ([]*entity.Product, error)
	// ListExpiring productos con validade en [from, to) y estoque > 0, ordenados por validade.
	ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error)

	// Delete devuelve false si el producto no existía.
	Delete(ctx context.Context, id int64) (bool, error)
}
