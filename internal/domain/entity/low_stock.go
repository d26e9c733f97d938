package entity

import "time"

// LowStockKey identifica un aviso de estoque baixo: par producto/categoría.
type LowStockKey struct {
	ProductID int64
	Category  string
}

// LowStockNotification último aviso enviado para un par producto/categoría.
type LowStockNotification struct {
	Key        LowStockKey
	NotifiedAt time.Time
}
