package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
)

const sampleCSV = "sku;nome;marca;categoria;preco;estoque;validade\n" +
	"789100;Arroz 5kg;Tio João;Alimentação;24,90;30;31/12/2026\n" +
	"789200;Camiseta;;Roupas;R$ 1.234,50;;\n" +
	"789300;Sem preço;;Roupas;abc;1;\n" +
	";;;;;;\n"

func TestParseCatalog(t *testing.T) {
	products, bad, err := parseCatalog([]byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Len(t, bad, 1)
	assert.Equal(t, 4, bad[0].Line)

	arroz := products[0]
	assert.Equal(t, "789100", arroz.SKU)
	assert.Equal(t, "Tio João", *arroz.Brand)
	assert.Equal(t, "24.9", arroz.Price.String())
	n, tracked := arroz.Stock.Quantity()
	assert.True(t, tracked)
	assert.Equal(t, 30, n)
	require.NotNil(t, arroz.ExpiresAt)
	assert.Equal(t, "2026-12-31", arroz.ExpiresAt.Format("2006-01-02"))

	camiseta := products[1]
	assert.Nil(t, camiseta.Brand)
	assert.Equal(t, "1234.5", camiseta.Price.String())
	assert.False(t, camiseta.Stock.IsTracked())
}

func TestParseCatalog_ColumnaObligatoria(t *testing.T) {
	_, _, err := parseCatalog([]byte("sku,nome,preco\nA1,Arroz,10\n"))
	assert.ErrorContains(t, err, "categoria")
}

func TestDecodeInput_Windows1252(t *testing.T) {
	latin, err := charmap.Windows1252.NewEncoder().String("sku;nome;categoria;preco\nA1;Feijão;Alimentação;8,50\n")
	require.NoError(t, err)

	content, err := decodeInput([]byte(latin), "auto")
	require.NoError(t, err)
	products, _, err := parseCatalog(content)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Feijão", products[0].Name)
	assert.Equal(t, "Alimentação", products[0].Category)

	_, err = decodeInput([]byte("x"), "latin9")
	assert.Error(t, err)
}

func TestImportProducts(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products(), nil)
	products, _, err := parseCatalog([]byte(sampleCSV))
	require.NoError(t, err)

	created, updated, skipped, failed := importProducts(ctx, uc, products, false)
	assert.Equal(t, [4]int{2, 0, 0, 0}, [4]int{created, updated, skipped, failed})

	created, updated, skipped, failed = importProducts(ctx, uc, products, false)
	assert.Equal(t, [4]int{0, 0, 2, 0}, [4]int{created, updated, skipped, failed})

	products[0].Name = "Arroz 1kg"
	created, updated, skipped, failed = importProducts(ctx, uc, products, true)
	assert.Equal(t, [4]int{0, 2, 0, 0}, [4]int{created, updated, skipped, failed})
	got, err := uc.GetBySKU(ctx, "789100")
	require.NoError(t, err)
	assert.Equal(t, "Arroz 1kg", got.Name)
}
