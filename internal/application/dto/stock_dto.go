package dto

// DecrementStockItem línea de POST /decrement-stock.
type DecrementStockItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantidade"`
}

// DecrementStockRequest entrada de POST /decrement-stock.
type DecrementStockRequest struct {
	Items []DecrementStockItem `json:"itens"`
}

// StockChangeDTO estoque antes y después de una línea. Null si el producto no controla estoque.
type StockChangeDTO struct {
	SKU      string `json:"sku"`
	Name     string `json:"nome"`
	Before   *int   `json:"estoqueAnterior"`
	After    *int   `json:"estoqueAtual"`
	Quantity int    `json:"quantidadeVendida"`
}

// DecrementStockResponse salida exitosa de POST /decrement-stock.
type DecrementStockResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Products []StockChangeDTO `json:"produtos"`
}

// StockErrorResponse rechazo de un lote: nombra el SKU y, si aplica, disponible vs solicitado.
type StockErrorResponse struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	SKU       string `json:"sku,omitempty"`
	Available *int   `json:"disponivel,omitempty"`
	Requested *int   `json:"solicitado,omitempty"`
}
