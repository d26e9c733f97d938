package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	policy "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

type countingTrigger struct{ n atomic.Int32 }

func (c *countingTrigger) Trigger(context.Context) { c.n.Add(1) }

func newProduct(t *testing.T, store *memory.Store, sku string, stock entity.Stock) *entity.Product {
	t.Helper()
	p := &entity.Product{SKU: sku, Name: "Produto " + sku, Category: "Geral", Price: decimal.NewFromInt(10), Stock: stock}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, store *memory.Store, id int64) entity.Stock {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestDecrementStock_Exito(t *testing.T) {
	store := memory.NewStore()
	a := newProduct(t, store, "A1", entity.TrackedStock(10))
	u := newProduct(t, store, "U1", entity.UntrackedStock())
	trigger := &countingTrigger{}
	uc := inventory.NewStockUseCase(store.TxRunner(), trigger, nil, nil)

	resp, err := uc.DecrementStock(context.Background(), dto.DecrementStockRequest{Items: []dto.DecrementStockItem{
		{SKU: "A1", Quantity: 2},
		{SKU: " U1 ", Quantity: 3},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, 10, *resp.Products[0].Before)
	assert.Equal(t, 8, *resp.Products[0].After)
	assert.Nil(t, resp.Products[1].Before, "producto sin control: null en la respuesta")
	assert.Nil(t, resp.Products[1].After)

	n, _ := stockOf(t, store, a.ID).Quantity()
	assert.Equal(t, 8, n)
	assert.False(t, stockOf(t, store, u.ID).IsTracked())
	assert.Equal(t, int32(1), trigger.n.Load(), "dispara la verificación de estoque baixo")
}

func TestDecrementStock_TodoONada(t *testing.T) {
	store := memory.NewStore()
	a := newProduct(t, store, "A1", entity.TrackedStock(10))
	b := newProduct(t, store, "B1", entity.TrackedStock(2))
	trigger := &countingTrigger{}
	uc := inventory.NewStockUseCase(store.TxRunner(), trigger, nil, nil)

	_, err := uc.DecrementStock(context.Background(), dto.DecrementStockRequest{Items: []dto.DecrementStockItem{
		{SKU: "A1", Quantity: 4},
		{SKU: "B1", Quantity: 5},
	}})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "B1", stockErr.SKU)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	n, _ := stockOf(t, store, a.ID).Quantity()
	assert.Equal(t, 10, n, "la primera línea se revierte")
	n, _ = stockOf(t, store, b.ID).Quantity()
	assert.Equal(t, 2, n)
	assert.Equal(t, int32(0), trigger.n.Load())
}

func TestDecrementStock_ConcurrenteNuncaQuedaNegativo(t *testing.T) {
	store := memory.NewStore()
	a := newProduct(t, store, "A1", entity.TrackedStock(10))
	uc := inventory.NewStockUseCase(store.TxRunner(), nil, nil, nil)

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.DecrementStock(context.Background(), dto.DecrementStockRequest{
				Items: []dto.DecrementStockItem{{SKU: "A1", Quantity: 3}},
			})
			if err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), ok.Load(), "10 unidades alcanzan para 3 lotes de 3")
	n, _ := stockOf(t, store, a.ID).Quantity()
	assert.Equal(t, 1, n)
}

func TestDecrementStock_SKURepetidoAcumula(t *testing.T) {
	store := memory.NewStore()
	newProduct(t, store, "A1", entity.TrackedStock(5))
	uc := inventory.NewStockUseCase(store.TxRunner(), nil, nil, nil)

	_, err := uc.DecrementStock(context.Background(), dto.DecrementStockRequest{Items: []dto.DecrementStockItem{
		{SKU: "A1", Quantity: 3},
		{SKU: "A1", Quantity: 3},
	}})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available, "la segunda línea ve lo que dejó la primera")
}

func TestDecrementStock_Validaciones(t *testing.T) {
	store := memory.NewStore()
	newProduct(t, store, "A1", entity.TrackedStock(5))
	uc := inventory.NewStockUseCase(store.TxRunner(), nil, nil, nil)
	ctx := context.Background()

	_, err := uc.DecrementStock(ctx, dto.DecrementStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.DecrementStock(ctx, dto.DecrementStockRequest{Items: []dto.DecrementStockItem{{SKU: "A1", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.DecrementStock(ctx, dto.DecrementStockRequest{Items: []dto.DecrementStockItem{{SKU: "ZZ", Quantity: 1}}})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ZZ", nf.SKU)
}

func TestAdjustStock(t *testing.T) {
	store := memory.NewStore()
	a := newProduct(t, store, "A1", entity.TrackedStock(3))
	u := newProduct(t, store, "U1", entity.UntrackedStock())
	uc := inventory.NewStockUseCase(store.TxRunner(), nil, nil, nil)
	ctx := context.Background()

	resp, err := uc.AdjustStock(ctx, dto.AdjustStockRequest{ProductID: a.ID, Quantity: 10, Type: dto.AdjustRemove})
	require.NoError(t, err)
	n, tracked := resp.Stock.Quantity()
	assert.True(t, tracked)
	assert.Equal(t, 0, n, "remove nunca deja estoque negativo")

	resp, err = uc.AdjustStock(ctx, dto.AdjustStockRequest{ProductID: u.ID, Quantity: 7, Type: dto.AdjustAdd})
	require.NoError(t, err)
	n, tracked = resp.Stock.Quantity()
	assert.True(t, tracked)
	assert.Equal(t, 7, n)

	_, err = uc.AdjustStock(ctx, dto.AdjustStockRequest{ProductID: 999, Quantity: 1, Type: dto.AdjustAdd})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AdjustStock(ctx, dto.AdjustStockRequest{ProductID: a.ID, Quantity: 1, Type: "set"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_PrioridadPorVentas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	newProduct(t, store, "A1", entity.TrackedStock(2))
	newProduct(t, store, "B1", entity.TrackedStock(8))
	newProduct(t, store, "C1", entity.TrackedStock(50))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		Total:         decimal.NewFromInt(60),
		PaymentMethod: "Pix",
		Items: []entity.SaleItem{
			{ProductSKU: "B1", ProductName: "Produto B1", Price: decimal.NewFromInt(10), Quantity: 6},
		},
	}))

	uc := inventory.NewReplenishmentUseCase(store.Products(), store.Analytics(), policy.Thresholds{Default: 10}, nil)
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B1", list[0].SKU, "el más vendido primero")
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 15, list[0].IdealStock)
	assert.Equal(t, 7, list[0].SuggestedOrderQty)
	assert.Equal(t, "A1", list[1].SKU)
	assert.Equal(t, 13, list[1].SuggestedOrderQty)
}

type failingAnalytics struct {
	repository.AnalyticsRepository
}

func (failingAnalytics) GetUnitsSoldBySKU(context.Context, time.Time, time.Time) (map[string]int, error) {
	return nil, errors.New("conexão recusada")
}

func TestReplenishment_SinHistorialRegistraYOrdenaPorDeficit(t *testing.T) {
	store := memory.NewStore()
	newProduct(t, store, "A1", entity.TrackedStock(8))
	newProduct(t, store, "B1", entity.TrackedStock(2))
	var logs bytes.Buffer

	uc := inventory.NewReplenishmentUseCase(store.Products(), failingAnalytics{}, policy.Thresholds{Default: 10}, logger.NewWriter(&logs))
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B1", list[0].SKU, "mayor déficit primero")
	assert.Equal(t, 0, list[0].UnitsSold)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "conexão recusada")
}

type recordingPublisher struct{ events []ports.Event }

func (p *recordingPublisher) Publish(_ context.Context, events ...ports.Event) error {
	p.events = append(p.events, events...)
	return nil
}

func TestDecrementStock_EventoPorSKU(t *testing.T) {
	store := memory.NewStore()
	newProduct(t, store, "A1", entity.TrackedStock(10))
	newProduct(t, store, "B1", entity.TrackedStock(10))
	pub := &recordingPublisher{}
	uc := inventory.NewStockUseCase(store.TxRunner(), nil, pub, nil)

	_, err := uc.DecrementStock(context.Background(), dto.DecrementStockRequest{Items: []dto.DecrementStockItem{
		{SKU: "A1", Quantity: 1},
		{SKU: "B1", Quantity: 2},
	}})
	require.NoError(t, err)

	require.Len(t, pub.events, 2)
	assert.Equal(t, ports.EventStockAdjusted, pub.events[0].Type)
	assert.Equal(t, "A1", pub.events[0].Key, "la key es el SKU, no el tipo de movimiento")
	assert.Equal(t, "B1", pub.events[1].Key)

	raw, err := json.Marshal(pub.events[1].Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tipo":"decrement","sku":"B1","nome":"Produto B1","estoqueAnterior":10,"estoqueAtual":8,"quantidadeVendida":2}`, string(raw))
}
