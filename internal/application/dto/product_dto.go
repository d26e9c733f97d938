package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// CreateProductRequest entrada de POST /products.
type CreateProductRequest struct {
	Name      string          `json:"nome"`
	Brand     *string         `json:"marca"`
	Category  string          `json:"categoria"`
	Price     decimal.Decimal `json:"preco"`
	Stock     entity.Stock    `json:"estoque"` // null u omitido = sin control de estoque
	SKU       string          `json:"sku"`
	ExpiresAt *time.Time      `json:"validade"`
}

// UpdateProductRequest entrada de PUT /products: sobrescribe el producto completo.
type UpdateProductRequest struct {
	ID int64 `json:"id"`
	CreateProductRequest
}

// AdjustStockRequest entrada de PATCH /products.
type AdjustStockRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Type      string `json:"type"` // "add" | "remove"
}

// Tipos de ajuste absoluto de estoque.
const (
	AdjustAdd    = "add"
	AdjustRemove = "remove"
)

// DeleteProductRequest cuerpo opcional de DELETE /products.
type DeleteProductRequest struct {
	ID int64 `json:"id"`
}

// SKULookupRequest entrada de la búsqueda por SKU.
type SKULookupRequest struct {
	SKU string `json:"sku"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"nome"`
	Brand     *string         `json:"marca"`
	Category  string          `json:"categoria"`
	Price     decimal.Decimal `json:"preco"`
	Stock     entity.Stock    `json:"estoque"`
	ExpiresAt *time.Time      `json:"validade"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateProductResponse salida de POST /products.
type CreateProductResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		ExpiresAt: p.ExpiresAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
