package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// SaleProductRef referencia al producto dentro de un ítem de POST /sales.
type SaleProductRef struct {
	SKU  string `json:"sku"`
	Name string `json:"nome"`
}

// CreateSaleItem línea de POST /sales.
type CreateSaleItem struct {
	Product  SaleProductRef  `json:"produto"`
	Price    decimal.Decimal `json:"preco"`
	Quantity int             `json:"quantidade"`
}

// CreateSaleRequest entrada de POST /sales (registro sin mover estoque).
type CreateSaleRequest struct {
	Items         []CreateSaleItem `json:"items"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod string           `json:"paymentMethod"`
}

// CheckoutItem línea del carrito en POST /checkout.
type CheckoutItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantidade"`
}

// CheckoutRequest entrada de POST /checkout: baja de estoque + venta en una sola transacción.
// Total es opcional; si viene se compara con el calculado en el servidor.
type CheckoutRequest struct {
	Items          []CheckoutItem   `json:"itens"`
	Total          *decimal.Decimal `json:"total"`
	PaymentMethod  string           `json:"paymentMethod"`
	IdempotencyKey string           `json:"idempotencyKey"`
}

// SaleItemResponse ítem de una venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"saleId"`
	ProductSKU  string          `json:"productSku"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// SaleResponse venta con ítems.
type SaleResponse struct {
	ID            string             `json:"id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []SaleItemResponse `json:"items"`
}

// CreateSaleResponse salida de POST /sales.
type CreateSaleResponse struct {
	Success bool         `json:"success"`
	Sale    SaleResponse `json:"sale"`
}

// CheckoutResponse salida de POST /checkout.
type CheckoutResponse struct {
	Success  bool             `json:"success"`
	Replayed bool             `json:"replayed"`
	Sale     SaleResponse     `json:"sale"`
	Products []StockChangeDTO `json:"produtos"`
}

// DeleteSalesResponse salida de DELETE /sales.
type DeleteSalesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// ToSaleResponse convierte la entidad a DTO.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:          it.ID,
			SaleID:      s.ID,
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
