package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// ID es el identificador canónico; SKU es único y sirve como índice secundario (lector de código de barras).
type Product struct {
	ID        int64
	SKU       string
	Name      string
	Brand     *string
	Category  string
	Price     decimal.Decimal
	Stock     Stock
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BrandOrEmpty devuelve la marca o "".
func (p *Product) BrandOrEmpty() string {
	if p.Brand == nil {
		return ""
	}
	return *p.Brand
}
