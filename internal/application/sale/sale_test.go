package sale_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/application/sale"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
)

type countingTrigger struct{ n atomic.Int32 }

func (c *countingTrigger) Trigger(context.Context) { c.n.Add(1) }

type recordingPublisher struct{ events []ports.Event }

func (p *recordingPublisher) Publish(_ context.Context, events ...ports.Event) error {
	p.events = append(p.events, events...)
	return nil
}

type busyLock struct{}

func (busyLock) Acquire(context.Context, string, time.Duration) (bool, error) { return false, nil }
func (busyLock) Release(context.Context, string) error                       { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(t *testing.T, store *memory.Store, sku, price string, stock entity.Stock) *entity.Product {
	t.Helper()
	p := &entity.Product{SKU: sku, Name: "Produto " + sku, Category: "Geral", Price: dec(price), Stock: stock}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func newCommit(store *memory.Store, trigger *countingTrigger, pub ports.EventPublisher) *sale.CommitUseCase {
	return sale.NewCommitUseCase(store.TxRunner(), store.Sales(), nil, pub, trigger, nil)
}

func TestCommit_DescuentaYRegistra(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "10.00", entity.TrackedStock(10))
	trigger := &countingTrigger{}
	pub := &recordingPublisher{}
	uc := newCommit(store, trigger, pub)

	total := dec("20.00")
	resp, err := uc.Commit(context.Background(), dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{SKU: "A1", Quantity: 2}},
		Total:         &total,
		PaymentMethod: "Pix",
	})
	require.NoError(t, err)
	assert.False(t, resp.Replayed)
	assert.True(t, resp.Sale.Total.Equal(dec("20")))
	require.Len(t, resp.Sale.Items, 1)
	assert.Equal(t, "A1", resp.Sale.Items[0].ProductSKU)

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 8, n)

	list, err := store.Sales().ListRecent(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, resp.Sale.ID, list[0].ID)

	assert.Equal(t, int32(1), trigger.n.Load())
	require.Len(t, pub.events, 1)
	assert.Equal(t, ports.EventSaleCreated, pub.events[0].Type)
}

func TestCommit_EstoqueInsuficienteNoRegistraVenta(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "10.00", entity.TrackedStock(2))
	uc := newCommit(store, &countingTrigger{}, nil)

	_, err := uc.Commit(context.Background(), dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{SKU: "A1", Quantity: 5}},
		PaymentMethod: "Dinheiro",
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "A1", stockErr.SKU)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 2, n)
	list, _ := store.Sales().ListRecent(context.Background(), 100)
	assert.Empty(t, list, "sin venta registrada")
}

func TestCommit_TotalDivergenteRevierteTodo(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "10.00", entity.TrackedStock(10))
	uc := newCommit(store, &countingTrigger{}, nil)

	wrong := dec("15.00")
	_, err := uc.Commit(context.Background(), dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{SKU: "A1", Quantity: 2}},
		Total:         &wrong,
		PaymentMethod: "Pix",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 10, n, "la baja se revierte con la transacción")
}

func TestCommit_IdempotencyKeyDevuelveVentaOriginal(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "10.00", entity.TrackedStock(10))
	uc := newCommit(store, &countingTrigger{}, nil)
	req := dto.CheckoutRequest{
		Items:          []dto.CheckoutItem{{SKU: "A1", Quantity: 2}},
		PaymentMethod:  "Pix",
		IdempotencyKey: "carrinho-123",
	}

	first, err := uc.Commit(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Commit(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Sale.ID, second.Sale.ID)
	got, _ := store.Products().GetByID(context.Background(), p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 8, n, "el estoque se descuenta una sola vez")
}

func TestCommit_ClaveEnUsoEsConflicto(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "A1", "10.00", entity.TrackedStock(10))
	uc := sale.NewCommitUseCase(store.TxRunner(), store.Sales(), busyLock{}, nil, nil, nil)

	_, err := uc.Commit(context.Background(), dto.CheckoutRequest{
		Items:          []dto.CheckoutItem{{SKU: "A1", Quantity: 1}},
		PaymentMethod:  "Pix",
		IdempotencyKey: "k",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// blindSales no encuentra ventas por idempotency key (réplica atrasada).
type blindSales struct {
	repository.SaleRepository
}

func (blindSales) GetByIdempotencyKey(context.Context, string) (*entity.Sale, error) { return nil, nil }

func TestCommit_ClaveDuplicadaSinVentaEsConflictoDeIdempotencia(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "10.00", entity.TrackedStock(10))
	key := "k"
	require.NoError(t, store.Sales().Create(context.Background(), &entity.Sale{
		Total: dec("10"), PaymentMethod: "Pix", IdempotencyKey: &key,
	}))
	uc := sale.NewCommitUseCase(store.TxRunner(), blindSales{store.Sales()}, nil, nil, nil, nil)

	_, err := uc.Commit(context.Background(), dto.CheckoutRequest{
		Items:          []dto.CheckoutItem{{SKU: "A1", Quantity: 1}},
		PaymentMethod:  "Pix",
		IdempotencyKey: key,
	})
	assert.ErrorIs(t, err, domain.ErrIdempotencyConflict)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrDuplicate, "no se confunde con un SKU duplicado")

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 10, n, "la transacción se revierte")
}

func TestCommit_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := newCommit(store, &countingTrigger{}, nil)

	_, err := uc.Commit(context.Background(), dto.CheckoutRequest{PaymentMethod: "Pix"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "carrinho vazio")

	_, err = uc.Commit(context.Background(), dto.CheckoutRequest{Items: []dto.CheckoutItem{{SKU: "A1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin forma de pago")

	_, err = uc.Commit(context.Background(), dto.CheckoutRequest{Items: []dto.CheckoutItem{{SKU: "ZZ", Quantity: 1}}, PaymentMethod: "Pix"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleCreate_VerificaPrecios(t *testing.T) {
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "10.00", entity.TrackedStock(10))
	uc := sale.NewSaleUseCase(store.Sales(), store.Products(), nil, nil)
	ctx := context.Background()

	resp, err := uc.Create(ctx, dto.CreateSaleRequest{
		Items: []dto.CreateSaleItem{{
			Product:  dto.SaleProductRef{SKU: "A1", Name: "Arroz"},
			Price:    dec("10"),
			Quantity: 3,
		}},
		Total:         dec("30"),
		PaymentMethod: "Cartão",
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("30")))
	assert.Equal(t, "Produto A1", resp.Items[0].ProductName, "nombre del catálogo")

	got, _ := store.Products().GetByID(ctx, p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 10, n, "POST /sales no mueve estoque")

	_, err = uc.Create(ctx, dto.CreateSaleRequest{
		Items:         []dto.CreateSaleItem{{Product: dto.SaleProductRef{SKU: "A1"}, Price: dec("9.99"), Quantity: 1}},
		PaymentMethod: "Cartão",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSaleRequest{
		Items:         []dto.CreateSaleItem{{Product: dto.SaleProductRef{SKU: "ZZ"}, Price: dec("1"), Quantity: 1}},
		PaymentMethod: "Cartão",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleListYDeleteAll(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
			Total: dec("1"), PaymentMethod: "Pix", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	uc := sale.NewSaleUseCase(store.Sales(), store.Products(), nil, nil)

	list, err := uc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))

	_, err = uc.Get(ctx, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	del, err := uc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), del.Deleted)
	list, _ = uc.List(ctx, 0)
	assert.Empty(t, list)
}

func TestExportDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		Total:         dec("25.50"),
		PaymentMethod: "Pix",
		CreatedAt:     time.Date(2026, 5, 2, 14, 30, 0, 0, loc),
		Items: []entity.SaleItem{
			{ProductSKU: "A1", ProductName: "Arroz", Price: dec("10.00"), Quantity: 2},
			{ProductSKU: "B1", ProductName: "Feijão", Price: dec("5.50"), Quantity: 1},
		},
	}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		Total: dec("1"), PaymentMethod: "Pix", CreatedAt: time.Date(2026, 5, 3, 1, 0, 0, 0, loc),
	}))
	uc := sale.NewSaleUseCase(store.Sales(), store.Products(), nil, nil)

	data, name, err := uc.ExportDay(ctx, "2026-05-02", loc)
	require.NoError(t, err)
	assert.Equal(t, "Relatorio_Vendas_2026-05-02.csv", name)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "cabecera + una venta del día")
	assert.Equal(t, "Data", rows[0][0])
	assert.Equal(t, "02/05/2026", rows[1][0])
	assert.Equal(t, "14:30:00", rows[1][1])
	assert.Equal(t, "25,50", rows[1][4])
	assert.Equal(t, "3", rows[1][6])

	_, _, err = uc.ExportDay(ctx, "02/05/2026", loc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommit_CompradoresConcurrentesNoSobrevenden(t *testing.T) {
	const buyers, stock = 20, 7
	store := memory.NewStore()
	p := seedProduct(t, store, "A1", "5.00", entity.TrackedStock(stock))
	uc := newCommit(store, &countingTrigger{}, nil)

	var (
		wg       sync.WaitGroup
		ok, fail atomic.Int32
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Commit(context.Background(), dto.CheckoutRequest{
				Items:         []dto.CheckoutItem{{SKU: "A1", Quantity: 1}},
				PaymentMethod: "Pix",
			})
			var stockErr *domain.InsufficientStockError
			switch {
			case err == nil:
				ok.Add(1)
			case errors.As(err, &stockErr):
				fail.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(stock), ok.Load())
	assert.Equal(t, int32(buyers-stock), fail.Load())
	got, _ := store.Products().GetByID(context.Background(), p.ID)
	n, _ := got.Stock.Quantity()
	assert.Equal(t, 0, n)
	list, _ := store.Sales().ListRecent(context.Background(), 100)
	assert.Len(t, list, stock, "una venta por compra aceptada")
}
