package alerts

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/logger"
	"github.com/jhoicas/pdv-api/pkg/telemetry"
)

// LowStockConfig parámetros del verificador de estoque baixo.
type LowStockConfig struct {
	Thresholds inventory.Thresholds
	Cooldown   time.Duration // 0 = avisar en cada verificación
	Timeout    time.Duration // tope de una verificación disparada en segundo plano
}

// LowStockChecker busca productos en o por debajo del mínimo de su categoría y envía
// un único aviso con todos los que no fueron avisados dentro del cooldown.
type LowStockChecker struct {
	products repository.ProductRepository
	cooldown repository.LowStockNotificationRepository
	notifier ports.Notifier
	events   ports.EventPublisher
	cfg      LowStockConfig
	log      *logger.Logger
	now      func() time.Time

	mu sync.Mutex     // una verificación a la vez
	wg sync.WaitGroup // verificaciones disparadas con Trigger

	// Trigger coalesce: como mucho una verificación en curso y una pendiente.
	running atomic.Bool
	pending atomic.Bool
}

// NewLowStockChecker construye el verificador. cooldown y events pueden ser nil.
func NewLowStockChecker(
	products repository.ProductRepository,
	cooldown repository.LowStockNotificationRepository,
	notifier ports.Notifier,
	events ports.EventPublisher,
	cfg LowStockConfig,
	log *logger.Logger,
) *LowStockChecker {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &LowStockChecker{
		products: products,
		cooldown: cooldown,
		notifier: notifier,
		events:   events,
		cfg:      cfg,
		log:      log.Named("low_stock"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (c *LowStockChecker) WithClock(now func() time.Time) *LowStockChecker {
	c.now = now
	return c
}

// Check evalúa todo el catálogo controlado. Si no hay productos bajo el mínimo (o todos
// están dentro del cooldown) no envía nada. Un fallo de envío se devuelve como error y
// los productos no se marcan, para reintentar en la próxima verificación.
func (c *LowStockChecker) Check(ctx context.Context) (*dto.LowStockReportDTO, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := telemetry.StartSpan(ctx, "alerts.LowStockCheck")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	products, err := c.products.ListTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos controlados: %w", err)
	}

	report := &dto.LowStockReportDTO{
		Success:  true,
		Below:    []dto.LowStockItemDTO{},
		Notified: []dto.LowStockItemDTO{},
	}
	for _, p := range products {
		minimum := c.cfg.Thresholds.MinimumFor(p.Category)
		if !p.Stock.AtOrBelow(minimum) {
			continue
		}
		qty, _ := p.Stock.Quantity()
		report.Below = append(report.Below, dto.LowStockItemDTO{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			Current:   qty,
			Minimum:   minimum,
		})
	}
	if len(report.Below) == 0 {
		return report, nil
	}

	now := c.now()
	pending, err := c.filterCooldown(ctx, report.Below, now)
	if err != nil {
		return nil, err
	}
	report.SuppressedCount = len(report.Below) - len(pending)
	if report.SuppressedCount > 0 {
		telemetry.NotificationsTotal.WithLabelValues("low_stock", "suppressed").Add(float64(report.SuppressedCount))
	}
	if len(pending) == 0 {
		c.log.Debug().Int("suprimidos", report.SuppressedCount).Msg("todos los productos bajo el mínimo ya fueron avisados")
		return report, nil
	}

	res, err := c.notifier.Send(ctx, FormatLowStockMessage(pending, now))
	if err != nil {
		telemetry.NotificationsTotal.WithLabelValues("low_stock", "failed").Inc()
		err = fmt.Errorf("%w: %w", ErrNotificationFailed, err)
		return nil, err
	}
	if res.Skipped {
		telemetry.NotificationsTotal.WithLabelValues("low_stock", "skipped").Inc()
		report.Notified = pending
		return report, nil
	}
	telemetry.NotificationsTotal.WithLabelValues("low_stock", "sent").Inc()
	report.Sent = true
	report.Notified = pending
	report.WhatsAppMessageID = res.ProviderMessageID

	if c.cooldown != nil {
		keys := make([]entity.LowStockKey, len(pending))
		for i, it := range pending {
			keys[i] = entity.LowStockKey{ProductID: it.ProductID, Category: it.Category}
		}
		if mErr := c.cooldown.MarkNotified(ctx, keys, now); mErr != nil {
			c.log.Warn().Err(mErr).Msg("no se pudo registrar el aviso de estoque baixo")
		}
	}

	if pErr := c.events.Publish(ctx, ports.Event{
		Type:       ports.EventStockLow,
		Key:        "low-stock",
		OccurredAt: now,
		Payload:    pending,
	}); pErr != nil {
		c.log.Warn().Err(pErr).Msg("no se pudo publicar evento stock.low")
	}
	return report, nil
}

func (c *LowStockChecker) filterCooldown(ctx context.Context, items []dto.LowStockItemDTO, now time.Time) ([]dto.LowStockItemDTO, error) {
	if c.cooldown == nil || c.cfg.Cooldown <= 0 {
		return items, nil
	}
	keys := make([]entity.LowStockKey, len(items))
	for i, it := range items {
		keys[i] = entity.LowStockKey{ProductID: it.ProductID, Category: it.Category}
	}
	last, err := c.cooldown.LastNotified(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("consultar avisos anteriores: %w", err)
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for i, it := range items {
		if at, ok := last[keys[i]]; ok && now.Sub(at) < c.cfg.Cooldown {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Trigger pide una verificación en segundo plano sin bloquear a quien muta el estoque.
// Las llamadas que llegan mientras hay una verificación en curso se agrupan en una sola
// verificación posterior, que ve el estoque ya actualizado. Usa un contexto desacoplado
// de la petición con timeout propio; los errores solo se registran.
func (c *LowStockChecker) Trigger(ctx context.Context) {
	c.pending.Store(true)
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	base := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			for c.pending.Swap(false) {
				c.runTriggered(base)
			}
			c.running.Store(false)
			// Un Trigger pudo marcar pending entre el último Swap y el Store.
			if !c.pending.Load() || !c.running.CompareAndSwap(false, true) {
				return
			}
		}
	}()
}

func (c *LowStockChecker) runTriggered(base context.Context) {
	ctx, cancel := context.WithTimeout(base, c.cfg.Timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("panic en verificación de estoque baixo")
		}
	}()
	report, err := c.Check(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("verificación de estoque baixo falló")
		return
	}
	if len(report.Notified) > 0 {
		c.log.Info().Int("produtos", len(report.Notified)).Bool("enviado", report.Sent).Msg("aviso de estoque baixo")
	}
}

// Wait espera las verificaciones disparadas con Trigger (apagado ordenado y tests).
func (c *LowStockChecker) Wait() {
	c.wg.Wait()
}
