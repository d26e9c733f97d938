package alerts_test

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/application/alerts"
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/infrastructure/memory"
)

type recordingNotifier struct {
	mu     sync.Mutex
	bodies []string
	fail   int // cantidad de envíos que fallan antes de aceptar
	skip   bool
}

func (n *recordingNotifier) Send(_ context.Context, body string) (ports.SendResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bodies = append(n.bodies, body)
	if n.fail > 0 {
		n.fail--
		return ports.SendResult{}, &ports.NotificationDeliveryError{StatusCode: 500, Body: "erro"}
	}
	if n.skip {
		return ports.SendResult{Skipped: true}, nil
	}
	return ports.SendResult{Success: true, ProviderMessageID: "wamid.1"}, nil
}

func (n *recordingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.bodies)
}

var thresholds = inventory.Thresholds{
	Default:    10,
	ByCategory: map[string]int{"Eletrônicos": 5, "Roupas": 15, "Alimentação": 20},
}

func seed(t *testing.T, store *memory.Store, products ...*entity.Product) {
	t.Helper()
	for _, p := range products {
		if p.Price.IsZero() {
			p.Price = decimal.NewFromInt(10)
		}
		require.NoError(t, store.Products().Create(context.Background(), p))
	}
}

func TestLowStock_SinProductosNoNotifica(t *testing.T) {
	store := memory.NewStore()
	seed(t, store,
		&entity.Product{SKU: "E1", Name: "Fone", Category: "Eletrônicos", Stock: entity.TrackedStock(50)},
		&entity.Product{SKU: "U1", Name: "Sacola", Category: "Outros", Stock: entity.UntrackedStock()},
	)
	n := &recordingNotifier{}
	checker := alerts.NewLowStockChecker(store.Products(), store.LowStock(), n, nil, alerts.LowStockConfig{Thresholds: thresholds}, nil)

	report, err := checker.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Below)
	assert.False(t, report.Sent)
	assert.Equal(t, 0, n.calls(), "lista vacía: no se envía nada")
}

func TestLowStock_UmbralPorCategoria(t *testing.T) {
	store := memory.NewStore()
	seed(t, store,
		&entity.Product{SKU: "E5", Name: "Cabo", Category: "Eletrônicos", Stock: entity.TrackedStock(5)},
		&entity.Product{SKU: "E6", Name: "Mouse", Category: "Eletrônicos", Stock: entity.TrackedStock(6)},
		&entity.Product{SKU: "R15", Name: "Camiseta", Category: "Roupas", Stock: entity.TrackedStock(15)},
		&entity.Product{SKU: "X11", Name: "Caderno", Category: "Papelaria", Stock: entity.TrackedStock(11)},
	)
	n := &recordingNotifier{}
	checker := alerts.NewLowStockChecker(store.Products(), store.LowStock(), n, nil, alerts.LowStockConfig{Thresholds: thresholds}, nil)

	report, err := checker.Check(context.Background())
	require.NoError(t, err)

	skus := make([]string, 0, len(report.Below))
	for _, it := range report.Below {
		skus = append(skus, it.SKU)
	}
	assert.ElementsMatch(t, []string{"E5", "R15"}, skus, "5 <= 5 entra, 6 > 5 no; categoría sin umbral usa 10")
	assert.True(t, report.Sent)
	require.Equal(t, 1, n.calls(), "un solo mensaje con todos los productos")
	assert.Contains(t, n.bodies[0], "ALERTA DE ESTOQUE BAIXO")
	assert.Contains(t, n.bodies[0], "SKU: E5")
	assert.Contains(t, n.bodies[0], "Estoque mínimo: 15")
}

func TestLowStock_CooldownSuprimeRepetidos(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, &entity.Product{SKU: "A1", Name: "Arroz", Category: "Alimentação", Stock: entity.TrackedStock(3)})
	n := &recordingNotifier{}
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	checker := alerts.NewLowStockChecker(store.Products(), store.LowStock(), n, nil,
		alerts.LowStockConfig{Thresholds: thresholds, Cooldown: 12 * time.Hour}, nil).
		WithClock(func() time.Time { return now })

	_, err := checker.Check(context.Background())
	require.NoError(t, err)
	report, err := checker.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n.calls(), "dentro del cooldown no se repite el aviso")
	assert.Equal(t, 1, report.SuppressedCount)

	now = now.Add(13 * time.Hour)
	_, err = checker.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n.calls(), "vencido el cooldown se vuelve a avisar")
}

func TestLowStock_FalloNoMarcaComoAvisado(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, &entity.Product{SKU: "A1", Name: "Arroz", Category: "Alimentação", Stock: entity.TrackedStock(3)})
	n := &recordingNotifier{fail: 1}
	checker := alerts.NewLowStockChecker(store.Products(), store.LowStock(), n, nil,
		alerts.LowStockConfig{Thresholds: thresholds, Cooldown: time.Hour}, nil)

	_, err := checker.Check(context.Background())
	require.Error(t, err)
	report, err := checker.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Sent, "el reintento envía porque el primer intento no se registró")
}

func TestLowStock_TriggerEsAsincrono(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, &entity.Product{SKU: "A1", Name: "Arroz", Category: "Alimentação", Stock: entity.TrackedStock(1)})
	n := &recordingNotifier{}
	checker := alerts.NewLowStockChecker(store.Products(), store.LowStock(), n, nil, alerts.LowStockConfig{Thresholds: thresholds}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	checker.Trigger(ctx)
	cancel() // la petición que lo disparó ya terminó
	checker.Wait()
	assert.Equal(t, 1, n.calls())
}

// gatedNotifier bloquea cada envío hasta que se cierra release.
type gatedNotifier struct {
	entered chan struct{}
	release chan struct{}
	sends   atomic.Int32
}

func (n *gatedNotifier) Send(ctx context.Context, _ string) (ports.SendResult, error) {
	if n.sends.Add(1) == 1 {
		close(n.entered)
	}
	select {
	case <-n.release:
	case <-ctx.Done():
		return ports.SendResult{}, ctx.Err()
	}
	return ports.SendResult{Success: true}, nil
}

func TestLowStock_TriggerAgrupaRafagas(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, &entity.Product{SKU: "A1", Name: "Arroz", Category: "Alimentação", Stock: entity.TrackedStock(1)})
	n := &gatedNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	checker := alerts.NewLowStockChecker(store.Products(), store.LowStock(), n, nil,
		alerts.LowStockConfig{Thresholds: thresholds, Timeout: 5 * time.Second}, nil)

	before := runtime.NumGoroutine()
	checker.Trigger(context.Background())
	<-n.entered // la primera verificación está enviando

	for i := 0; i < 50; i++ {
		checker.Trigger(context.Background())
	}
	assert.LessOrEqual(t, runtime.NumGoroutine()-before, 1, "las ráfagas no crean una goroutine por llamada")

	close(n.release)
	checker.Wait()
	assert.Equal(t, int32(2), n.sends.Load(), "una en curso más una pendiente para toda la ráfaga")

	checker.Trigger(context.Background())
	checker.Wait()
	assert.Equal(t, int32(3), n.sends.Load(), "terminada la ráfaga, un Trigger nuevo vuelve a verificar")
}

func expiryChecker(store *memory.Store, n ports.Notifier, notifyEmpty bool) *alerts.ExpiryChecker {
	return alerts.NewExpiryChecker(store.Products(), n, alerts.ExpiryConfig{
		WindowDays:      7,
		MaxItems:        20,
		NotifyWhenEmpty: notifyEmpty,
		Location:        time.UTC,
	}, nil)
}

func TestExpiry_VentanaDeSieteDias(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	in3 := now.AddDate(0, 0, 3)
	in10 := now.AddDate(0, 0, 10)
	in7late := time.Date(2026, 6, 8, 23, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seed(t, store,
		&entity.Product{SKU: "L3", Name: "Leite", Stock: entity.TrackedStock(4), ExpiresAt: &in3},
		&entity.Product{SKU: "L10", Name: "Queijo", Stock: entity.TrackedStock(4), ExpiresAt: &in10},
		&entity.Product{SKU: "L7", Name: "Iogurte", Stock: entity.TrackedStock(2), ExpiresAt: &in7late},
		&entity.Product{SKU: "Z0", Name: "Manteiga", Stock: entity.TrackedStock(0), ExpiresAt: &in3},
	)
	n := &recordingNotifier{}

	resp, err := expiryChecker(store, n, false).Check(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 2, resp.ProductsCount)
	assert.Equal(t, "L3", resp.Products[0].SKU)
	assert.Equal(t, 3, resp.Products[0].DaysLeft)
	assert.Equal(t, "L7", resp.Products[1].SKU, "el último día de la ventana entra completo")
	assert.True(t, resp.Sent)
	assert.Equal(t, "wamid.1", resp.WhatsAppMessageID)
	require.Equal(t, 1, n.calls())
	assert.Contains(t, n.bodies[0], "ALERTA DE VALIDADE")
	assert.NotContains(t, n.bodies[0], "Queijo")
}

func TestExpiry_ZonaDeLaTiendaNoCorreLaFecha(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.FixedZone("BRT", -3*3600)
	}
	// validade 03/06 guardada como medianoche UTC; hoy es 01/06 al mediodía en São Paulo.
	expires := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seed(t, store, &entity.Product{SKU: "L2", Name: "Leite", Stock: entity.TrackedStock(1), ExpiresAt: &expires})
	n := &recordingNotifier{}
	checker := alerts.NewExpiryChecker(store.Products(), n, alerts.ExpiryConfig{WindowDays: 7, Location: loc}, nil)

	resp, err := checker.Check(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, resp.ProductsCount)
	assert.Equal(t, 2, resp.Products[0].DaysLeft)
	require.Equal(t, 1, n.calls())
	assert.Contains(t, n.bodies[0], "Validade: 03/06/2026 (2 dias)")
	assert.Contains(t, n.bodies[0], "*Data da verificação:* 01/06/2026")
}

func TestExpiry_SinProductosSegunConfiguracion(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	silent := &recordingNotifier{}
	resp, err := expiryChecker(store, silent, false).Check(context.Background(), now)
	require.NoError(t, err)
	assert.False(t, resp.Sent)
	assert.Equal(t, 0, silent.calls())

	loud := &recordingNotifier{}
	resp, err = expiryChecker(store, loud, true).Check(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, resp.Sent)
	assert.Equal(t, 1, loud.calls())
}

func TestExpiry_FalloEnviaMensajeDeError(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	in2 := now.AddDate(0, 0, 2)
	store := memory.NewStore()
	seed(t, store, &entity.Product{SKU: "L2", Name: "Leite", Stock: entity.TrackedStock(1), ExpiresAt: &in2})
	n := &recordingNotifier{fail: 2}

	_, err := expiryChecker(store, n, false).Check(context.Background(), now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, alerts.ErrNotificationFailed))
	require.Equal(t, 2, n.calls(), "se intenta un segundo mensaje de error; su fallo solo se registra")
	assert.True(t, strings.HasPrefix(n.bodies[1], "❌ ERRO NO SISTEMA DE VALIDADE ❌"))
}

func TestFormatExpiryMessage_Trunca(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	items := make([]dto.ExpiringProductDTO, 5)
	for i := range items {
		items[i] = dto.ExpiringProductDTO{SKU: "S", Name: "P", ExpiresAt: now, Stock: 1}
	}
	msg := alerts.FormatExpiryMessage(items, now, 3)
	assert.Contains(t, msg, "*Total de produtos:* 5")
	assert.Contains(t, msg, "e mais 2 produto(s)")
	assert.Contains(t, msg, "01/06/2026")
}
