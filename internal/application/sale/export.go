package sale

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

var exportHeader = []string{"Data", "Hora", "ID Venda", "Forma Pagamento", "Total Venda", "Produtos", "Quantidade Total"}

// ExportDay genera el relatório de vendas del día (una fila por venta) en CSV separado por ';',
// como lo abre Excel con configuración regional pt-BR. Devuelve el contenido y el nombre de archivo.
func (uc *SaleUseCase) ExportDay(ctx context.Context, date string, loc *time.Location) ([]byte, string, error) {
	if loc == nil {
		loc = time.UTC
	}
	if date == "" {
		date = time.Now().In(loc).Format("2006-01-02")
	}
	from, to, err := DayRange(date, loc)
	if err != nil {
		return nil, "", err
	}
	sales, err := uc.sales.ListBetween(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff") // BOM para que Excel detecte UTF-8
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(exportHeader); err != nil {
		return nil, "", err
	}
	for _, s := range sales {
		at := s.CreatedAt.In(loc)
		row := []string{
			at.Format("02/01/2006"),
			at.Format("15:04:05"),
			s.ID,
			s.PaymentMethod,
			decimalComma(s.Total.StringFixed(2)),
			describeItems(s.Items),
			strconv.Itoa(s.UnitsSold()),
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("Relatorio_Vendas_%s.csv", from.Format("2006-01-02")), nil
}

func describeItems(items []entity.SaleItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (Qtd: %d, R$ %s)", it.ProductName, it.Quantity, decimalComma(it.Price.StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}

func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}
