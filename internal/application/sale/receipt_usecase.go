package sale

import (
	"context"
	"fmt"

	"github.com/jhoicas/pdv-api/internal/application/ports"
)

// ReceiptUseCase genera el recibo de pagamento (PDF) de una venta.
type ReceiptUseCase struct {
	sales     *SaleUseCase
	generator ports.ReceiptGenerator
	store     ports.StoreInfo
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales *SaleUseCase, generator ports.ReceiptGenerator, store ports.StoreInfo) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator, store: store}
}

// Download devuelve el PDF y el nombre de archivo. Una venta inexistente devuelve NotFoundError.
func (uc *ReceiptUseCase) Download(ctx context.Context, saleID string) ([]byte, string, error) {
	s, err := uc.sales.Get(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.Generate(uc.store, s)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: %w", err)
	}
	return pdf, fmt.Sprintf("recibo-%s.pdf", s.ID), nil
}
