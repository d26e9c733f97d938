package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// Columnas reconocidas (cabecera obligatoria, orden libre, sin distinguir mayúsculas).
const (
	colSKU       = "sku"
	colName      = "nome"
	colBrand     = "marca"
	colCategory  = "categoria"
	colPrice     = "preco"
	colStock     = "estoque"
	colExpiresAt = "validade"
)

var requiredColumns = []string{colSKU, colName, colCategory, colPrice}

// rowError fila del CSV que no pudo interpretarse.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("linha %d: %v", e.Line, e.Err) }

// decodeInput devuelve el contenido en UTF-8. encoding: auto | utf8 | cp1252.
// En auto se asume Windows-1252 (lo que exporta Excel en pt-BR) si el archivo no es UTF-8 válido.
func decodeInput(raw []byte, encoding string) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return raw, nil
	case "cp1252", "windows-1252":
	case "", "auto":
		if utf8.Valid(raw) {
			return raw, nil
		}
	default:
		return nil, fmt.Errorf("codificação desconhecida %q", encoding)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("converter Windows-1252: %w", err)
	}
	return out, nil
}

// detectComma elige ';' o ',' según cuál aparece más en la cabecera.
func detectComma(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// parseCatalog interpreta el CSV. Las filas inválidas se devuelven aparte y no detienen la lectura.
func parseCatalog(content []byte) ([]dto.CreateProductRequest, []rowError, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = detectComma(content)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ler cabeçalho: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("coluna obrigatória ausente: %s", col)
		}
	}

	var (
		products []dto.CreateProductRequest
		bad      []rowError
	)
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			bad = append(bad, rowError{Line: line, Err: err})
			continue
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if get(colSKU) == "" && get(colName) == "" {
			continue // fila vacía
		}
		p, err := parseRow(get)
		if err != nil {
			bad = append(bad, rowError{Line: line, Err: err})
			continue
		}
		products = append(products, p)
	}
	return products, bad, nil
}

func parseRow(get func(string) string) (dto.CreateProductRequest, error) {
	price, err := parsePrice(get(colPrice))
	if err != nil {
		return dto.CreateProductRequest{}, err
	}
	p := dto.CreateProductRequest{
		SKU:      get(colSKU),
		Name:     get(colName),
		Category: get(colCategory),
		Price:    price,
		Stock:    entity.UntrackedStock(),
	}
	if brand := get(colBrand); brand != "" {
		p.Brand = &brand
	}
	if s := get(colStock); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return dto.CreateProductRequest{}, fmt.Errorf("estoque inválido %q", s)
		}
		p.Stock = entity.TrackedStock(n)
	}
	if v := get(colExpiresAt); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return dto.CreateProductRequest{}, err
		}
		p.ExpiresAt = &t
	}
	return p, nil
}

// parsePrice acepta "24.90", "24,90", "R$ 1.234,50".
func parsePrice(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("preço inválido %q", s)
	}
	return d, nil
}

// parseDate acepta dd/mm/aaaa o aaaa-mm-dd (medianoche UTC).
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("validade inválida %q: use dd/mm/aaaa", s)
}
