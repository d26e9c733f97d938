package ports

import "github.com/jhoicas/pdv-api/internal/domain/entity"

// StoreInfo datos de la tienda impresos en el recibo.
type StoreInfo struct {
	Name    string
	TaxID   string // CNPJ
	Address string
}

// ReceiptGenerator genera el recibo de pago (PDF) de una venta.
type ReceiptGenerator interface {
	Generate(store StoreInfo, sale *entity.Sale) ([]byte, error)
}
