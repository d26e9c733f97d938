package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/pkg/brl"
)

// FormatLowStockMessage arma el aviso de estoque baixo con todos los productos en un solo mensaje.
func FormatLowStockMessage(items []dto.LowStockItemDTO, _ time.Time) string {
	var b strings.Builder
	b.WriteString("🚨 *ALERTA DE ESTOQUE BAIXO* 🚨\n\n")
	for i, it := range items {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, it.Name)
		fmt.Fprintf(&b, "   SKU: %s\n", it.SKU)
		fmt.Fprintf(&b, "   Estoque atual: %d\n", it.Current)
		fmt.Fprintf(&b, "   Estoque mínimo: %d\n\n", it.Minimum)
	}
	b.WriteString("⚠️ *Reposição urgente necessária!*")
	return b.String()
}

// FormatExpiryMessage arma el aviso de validade. Lista como máximo maxItems productos y
// resume el resto con un contador.
func FormatExpiryMessage(items []dto.ExpiringProductDTO, checkedAt time.Time, maxItems int) string {
	var b strings.Builder
	b.WriteString("⚠️ *ALERTA DE VALIDADE* ⚠️\n\n")
	fmt.Fprintf(&b, "*Data da verificação:* %s\n", brl.Date(checkedAt))
	fmt.Fprintf(&b, "*Total de produtos:* %d\n\n", len(items))

	shown := items
	if maxItems > 0 && len(items) > maxItems {
		shown = items[:maxItems]
	}
	for i, p := range shown {
		fmt.Fprintf(&b, "*%d. %s*", i+1, p.Name)
		if p.Brand != "" {
			fmt.Fprintf(&b, " (%s)", p.Brand)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   📅 Validade: %s (%s)\n", brl.Date(p.ExpiresAt), daysLabel(p.DaysLeft))
		fmt.Fprintf(&b, "   🏷️ SKU: %s | 📦 Estoque: %d un.\n\n", p.SKU, p.Stock)
	}
	if rest := len(items) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "… e mais %d produto(s)\n", rest)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatExpiryAllClear mensaje cuando no hay productos por vencer.
func FormatExpiryAllClear(checkedAt time.Time, windowDays int) string {
	return fmt.Sprintf("✅ *VERIFICAÇÃO DE VALIDADE* ✅\n\n*Data da verificação:* %s\nNenhum produto vence nos próximos %d dias.",
		brl.Date(checkedAt), windowDays)
}

// FormatExpiryFailure mensaje de error cuando falla el envío del aviso de validade.
func FormatExpiryFailure(cause error, at time.Time) string {
	msg := "Erro desconhecido"
	if cause != nil {
		msg = cause.Error()
	}
	return fmt.Sprintf("❌ ERRO NO SISTEMA DE VALIDADE ❌\n\n%s\n\nTimestamp: %s", msg, at.UTC().Format(time.RFC3339))
}

func daysLabel(n int) string {
	switch n {
	case 0:
		return "vence hoje"
	case 1:
		return "1 dia"
	default:
		return fmt.Sprintf("%d dias", n)
	}
}
