package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada en el PDV. Total = Σ price*quantity de sus ítems.
type Sale struct {
	ID             string
	Total          decimal.Decimal
	PaymentMethod  string
	IdempotencyKey *string
	CreatedAt      time.Time
	Items          []SaleItem
}

// SaleItem línea de la venta. SKU, nombre y precio son una copia del producto al momento de vender,
// para que el recibo no cambie si el producto se renombra o se elimina.
type SaleItem struct {
	ID          string
	SaleID      string
	Position    int
	ProductSKU  string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Subtotal precio * cantidad redondeado a centavos.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// ItemsTotal suma los subtotales de los ítems.
func (s *Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// UnitsSold suma las cantidades de todos los ítems.
func (s *Sale) UnitsSold() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
