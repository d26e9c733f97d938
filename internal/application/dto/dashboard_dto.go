package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /dashboard/summary.
type DashboardSummaryDTO struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`   // YYYY-MM-DD, inclusive

	TotalSales    decimal.Decimal `json:"totalVendas"`
	OrderCount    int             `json:"totalPedidos"`
	AverageTicket decimal.Decimal `json:"ticketMedio"`
	TopProduct    string          `json:"produtoMaisVendido"` // "Nenhum" si no hay ventas

	ByProduct []ProductShareDTO `json:"vendasPorProduto"` // top 10 por ingreso
	ByPayment []PaymentShareDTO `json:"vendasPorPagamento"`
	Daily     []DailySalesDTO   `json:"vendasPorDia"`
}

// ProductShareDTO participación de un producto en el ingreso del período.
type ProductShareDTO struct {
	Name      string          `json:"name"`
	UnitsSold int             `json:"quantidade"`
	Amount    decimal.Decimal `json:"amount"`
	Percent   int             `json:"value"` // % redondeado del ingreso del top
}

// PaymentShareDTO ventas por forma de pago.
type PaymentShareDTO struct {
	PaymentMethod string          `json:"paymentMethod"`
	SalesCount    int             `json:"quantidade"`
	Amount        decimal.Decimal `json:"amount"`
	Percent       int             `json:"value"`
}

// DailySalesDTO punto de la serie diaria.
type DailySalesDTO struct {
	Date       string          `json:"data"` // YYYY-MM-DD
	SalesCount int             `json:"quantidade"`
	Amount     decimal.Decimal `json:"amount"`
}
