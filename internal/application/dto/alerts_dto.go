package dto

import "time"

// LowStockItemDTO producto en o por debajo del mínimo.
type LowStockItemDTO struct {
	ProductID int64  `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"nome"`
	Category  string `json:"categoria"`
	Current   int    `json:"estoqueAtual"`
	Minimum   int    `json:"estoqueMinimo"`
}

// LowStockReportDTO resultado de una verificación de estoque baixo.
type LowStockReportDTO struct {
	Success           bool              `json:"success"`
	Below             []LowStockItemDTO `json:"produtos"`
	Notified          []LowStockItemDTO `json:"notificados"`
	SuppressedCount   int               `json:"suprimidos"` // dentro del cooldown
	Sent              bool              `json:"enviado"`
	WhatsAppMessageID string            `json:"whatsappMessageId,omitempty"`
}

// ExpiringProductDTO producto próximo del vencimiento.
type ExpiringProductDTO struct {
	SKU       string    `json:"sku"`
	Name      string    `json:"nome"`
	Brand     string    `json:"marca,omitempty"`
	ExpiresAt time.Time `json:"validade"`
	DaysLeft  int       `json:"diasRestantes"`
	Stock     int       `json:"estoque"`
}

// ExpiryCheckResponse salida de GET /check-expiry.
type ExpiryCheckResponse struct {
	Success           bool                 `json:"success"`
	Message           string               `json:"message"`
	ProductsCount     int                  `json:"productsCount"`
	Products          []ExpiringProductDTO `json:"produtos"`
	Sent              bool                 `json:"enviado"`
	WhatsAppMessageID string               `json:"whatsappMessageId,omitempty"`
	Timestamp         time.Time            `json:"timestamp"`
	ExecutionTime     string               `json:"executionTime"`
}
