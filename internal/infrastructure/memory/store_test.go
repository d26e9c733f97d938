package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
)

func TestProductRepo_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Products()

	require.NoError(t, repo.Create(ctx, &entity.Product{SKU: "A1", Name: "Arroz", Price: decimal.NewFromInt(10)}))
	err := repo.Create(ctx, &entity.Product{SKU: "A1", Name: "Outro", Price: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_DecrementStock(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Products()
	p := &entity.Product{SKU: "A1", Name: "Arroz", Price: decimal.NewFromInt(10), Stock: entity.TrackedStock(3)}
	require.NoError(t, repo.Create(ctx, p))

	ok, err := repo.DecrementStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.False(t, ok, "no alcanza: ninguna fila cambia")

	ok, err = repo.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ := repo.GetByID(ctx, p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 0, n)
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := &entity.Product{SKU: "A1", Name: "Arroz", Price: decimal.NewFromInt(10), Stock: entity.TrackedStock(10)}
	require.NoError(t, store.Products().Create(ctx, p))

	boom := errors.New("boom")
	err := store.TxRunner().RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		_, err := products.DecrementStock(ctx, p.ID, 4)
		require.NoError(t, err)
		require.NoError(t, sales.Create(ctx, &entity.Sale{Total: decimal.NewFromInt(40), PaymentMethod: "Pix"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := store.Products().GetByID(ctx, p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 10, n, "el estoque vuelve al valor previo")
	list, _ := store.Sales().ListRecent(ctx, 10)
	assert.Empty(t, list, "la venta no queda registrada")
}

func TestSaleRepo_ListRecentMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := memory.NewStore().Sales()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Sale{
			Total:         decimal.NewFromInt(int64(i + 1)),
			PaymentMethod: "Dinheiro",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}))
	}
	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Total.Equal(decimal.NewFromInt(3)))
	assert.True(t, list[1].Total.Equal(decimal.NewFromInt(2)))
}

func TestProductRepo_ListTrackedPorCategoriaYSKU(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Products()
	for _, p := range []*entity.Product{
		{SKU: "R2", Category: "Roupas", Stock: entity.TrackedStock(1)},
		{SKU: "A9", Category: "Alimentação", Stock: entity.TrackedStock(1)},
		{SKU: "U1", Category: "Alimentação", Stock: entity.UntrackedStock()},
		{SKU: "R1", Category: "Roupas", Stock: entity.TrackedStock(1)},
		{SKU: "A1", Category: "Alimentação", Stock: entity.TrackedStock(1)},
	} {
		p.Name, p.Price = p.SKU, decimal.NewFromInt(1)
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.ListTracked(ctx)
	require.NoError(t, err)
	skus := make([]string, len(list))
	for i, p := range list {
		skus[i] = p.SKU
	}
	assert.Equal(t, []string{"A1", "A9", "R1", "R2"}, skus, "mismo orden que ORDER BY category, sku")
}

func TestSaleRepo_ListRecentDesempataPorInsercion(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := memory.NewStore().Sales()
	var ids []string
	for i := 0; i < 3; i++ {
		s := &entity.Sale{Total: decimal.NewFromInt(1), PaymentMethod: "Pix", CreatedAt: at}
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
	}
	older := &entity.Sale{Total: decimal.NewFromInt(1), PaymentMethod: "Pix", CreatedAt: at.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, older))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, []string{ids[2], ids[1], ids[0], older.ID},
		[]string{list[0].ID, list[1].ID, list[2].ID, list[3].ID})
}
