package dto

// ReplenishmentSuggestionDTO producto bajo el mínimo con la cantidad sugerida de reposição.
type ReplenishmentSuggestionDTO struct {
	Priority          int    `json:"prioridade"` // 1 = más urgente
	ProductID         int64  `json:"productId"`
	SKU               string `json:"sku"`
	Name              string `json:"nome"`
	Category          string `json:"categoria"`
	CurrentStock      int    `json:"estoqueAtual"`
	MinimumStock      int    `json:"estoqueMinimo"`
	IdealStock        int    `json:"estoqueIdeal"`
	SuggestedOrderQty int    `json:"quantidadeSugerida"`
	UnitsSold         int    `json:"vendidosNoPeriodo"`
}
