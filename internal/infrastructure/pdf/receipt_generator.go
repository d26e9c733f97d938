// Package pdf genera el recibo de pagamento de una venta del PDV.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda + CNPJ  │  Recibo Nº + Data     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item (SKU) | Qtd | Valor Unit. | Total               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Subtotal / Desconto / Forma de Pagamento / TOTAL   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la venta + leyenda                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/pkg/brl"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorGray    = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorGreen   = &props.Color{Red: 22, Green: 163, Blue: 74}
)

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) Generate(store ports.StoreInfo, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de Venda", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(sale))

	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + CNPJ (izq) y número de recibo + fecha (der).
func headerRow(store ports.StoreInfo, sale *entity.Sale) core.Row {
	left := []core.Component{
		text.New(nonEmpty(store.Name, "Minha Loja"), props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
		}),
	}
	if store.TaxID != "" {
		left = append(left, text.New("CNPJ: "+store.TaxID, props.Text{Size: 9, Top: 9, Color: colorGray}))
	}
	if store.Address != "" {
		left = append(left, text.New(store.Address, props.Text{Size: 8, Top: 14, Color: colorGray}))
	}

	return row.New(22).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New("RECIBO Nº", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(ReceiptNumber(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 6,
			}),
			text.New("Data/Hora: "+brl.DateTime(sale.CreatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("ITEM", 6, align.Left),
		h("QTD", 2, align.Center),
		h("VALOR UNIT.", 2, align.Right),
		h("TOTAL", 2, align.Right),
	)
}

// itemRows: una fila por ítem, con el SKU debajo del nombre.
func itemRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(10).Add(
			col.New(6).Add(
				text.New(it.ProductName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
				text.New("SKU: "+it.ProductSKU, props.Text{Size: 7, Top: 5.5, Color: colorGray}),
			),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(brl.Money(it.Price), props.Text{Size: 9, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(brl.Money(it.Subtotal()), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Color: colorGreen,
			})),
		))
	}
	return result
}

// summaryRow: subtotal, desconto (siempre 0), forma de pago y total.
func summaryRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 2, Top: top, Color: colorGray})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top})
	}

	return row.New(30).Add(
		col.New(5),
		col.New(4).Add(
			label("Subtotal:", 2),
			label("Desconto:", 8),
			label("Forma de Pagamento:", 14),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Right: 2, Top: 21}),
		),
		col.New(3).Add(
			value(brl.Money(sale.Total), 2),
			value(brl.Money(decimal.Zero), 8),
			value(nonEmpty(sale.PaymentMethod, "Não especificado"), 14),
			text.New(brl.Money(sale.Total), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 21, Color: colorGreen,
			}),
		),
	)
}

// footerRow: QR con el id completo de la venta y leyenda.
func footerRow(sale *entity.Sale) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(sale.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Obrigado pela preferência!", props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New("Este documento não possui valor fiscal", props.Text{
				Style: fontstyle.Italic, Size: 8, Top: 16, Left: 3, Color: colorGray,
			}),
			text.New("Venda "+sale.ID, props.Text{Size: 7, Top: 22, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// ReceiptNumber últimos 6 caracteres del id de la venta, en mayúsculas.
func ReceiptNumber(saleID string) string {
	n := saleID
	if len(n) > 6 {
		n = n[len(n)-6:]
	}
	b := []byte(n)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
