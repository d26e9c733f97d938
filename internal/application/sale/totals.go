package sale

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/pkg/brl"
)

// totalTolerance diferencia máxima aceptada entre el total del cliente y el calculado.
var totalTolerance = decimal.RequireFromString("0.01")

// verifyTotal compara el total enviado por el cliente con el calculado en el servidor.
// Un total ausente o cero se acepta: el servidor usa el suyo.
func verifyTotal(computed decimal.Decimal, client *decimal.Decimal) error {
	if client == nil || client.IsZero() {
		return nil
	}
	if client.IsNegative() {
		return domain.NewValidationError("total", "Total não pode ser negativo")
	}
	if computed.Sub(*client).Abs().GreaterThan(totalTolerance) {
		return domain.NewValidationError("total", "Total informado (%s) difere do total calculado (%s)",
			brl.Money(*client), brl.Money(computed))
	}
	return nil
}

func validatePaymentMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return "", domain.NewValidationError("paymentMethod", "Forma de pagamento é obrigatória")
	}
	return method, nil
}

// failureReason etiqueta de métrica para un error del checkout.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
