package sale

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/logger"
	"github.com/jhoicas/pdv-api/pkg/telemetry"
)

// idempotencyLockTTL tiempo máximo que una clave queda reservada si el proceso muere a mitad del checkout.
const idempotencyLockTTL = 30 * time.Second

// CommitUseCase finaliza un carrito: baja de estoque y registro de la venta en una sola transacción.
type CommitUseCase struct {
	txRunner TxRunner
	sales    repository.SaleRepository
	lock     ports.IdempotencyLock
	events   ports.EventPublisher
	lowStock inventory.LowStockTrigger
	log      *logger.Logger
	now      func() time.Time
}

// NewCommitUseCase construye el caso de uso. lock, events y lowStock pueden ser nil.
func NewCommitUseCase(
	txRunner TxRunner,
	sales repository.SaleRepository,
	lock ports.IdempotencyLock,
	events ports.EventPublisher,
	lowStock inventory.LowStockTrigger,
	log *logger.Logger,
) *CommitUseCase {
	if lock == nil {
		lock = ports.NopLock{}
	}
	if events == nil {
		events = ports.NopPublisher{}
	}
	if lowStock == nil {
		lowStock = inventory.NopTrigger{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CommitUseCase{
		txRunner: txRunner,
		sales:    sales,
		lock:     lock,
		events:   events,
		lowStock: lowStock,
		log:      log.Named("checkout"),
		now:      time.Now,
	}
}

// Commit valida el carrito, bloquea y descuenta cada producto, toma los precios del catálogo,
// verifica el total y persiste la venta. Si la idempotency key ya fue usada devuelve la venta
// original con Replayed=true sin tocar el estoque.
func (uc *CommitUseCase) Commit(ctx context.Context, req dto.CheckoutRequest) (resp *dto.CheckoutResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "sale.Commit")
	defer func() { telemetry.EndSpan(span, err) }()
	defer func() {
		if err != nil {
			telemetry.CheckoutFailedTotal.WithLabelValues(failureReason(err)).Inc()
		}
	}()

	lines := make([]dto.DecrementStockItem, len(req.Items))
	for i, it := range req.Items {
		lines[i] = dto.DecrementStockItem{SKU: it.SKU, Quantity: it.Quantity}
	}
	items, err := inventory.ValidateItems(lines)
	if err != nil {
		return nil, err
	}
	method, err := validatePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		if replay, rErr := uc.replay(ctx, key); rErr != nil || replay != nil {
			return replay, rErr
		}
		acquired, lErr := uc.lock.Acquire(ctx, key, idempotencyLockTTL)
		if lErr != nil {
			// Sin Redis disponible la restricción UNIQUE sigue evitando el doble registro
			uc.log.Warn().Err(lErr).Msg("no se pudo reservar la idempotency key")
		} else if !acquired {
			return nil, domain.ErrIdempotencyConflict
		} else {
			defer func() {
				if relErr := uc.lock.Release(context.WithoutCancel(ctx), key); relErr != nil {
					uc.log.Warn().Err(relErr).Msg("no se pudo liberar la idempotency key")
				}
			}()
		}
	}

	start := time.Now()
	var (
		sale    *entity.Sale
		changes []dto.StockChangeDTO
	)
	err = uc.txRunner.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		applied, applyErr := inventory.ApplyDecrement(ctx, products, items)
		if applyErr != nil {
			return applyErr
		}

		s := &entity.Sale{
			PaymentMethod: method,
			CreatedAt:     uc.now(),
			Items:         make([]entity.SaleItem, len(applied)),
		}
		if key != "" {
			s.IdempotencyKey = &key
		}
		changes = make([]dto.StockChangeDTO, len(applied))
		for i, l := range applied {
			s.Items[i] = entity.SaleItem{
				ProductSKU:  l.Product.SKU,
				ProductName: l.Product.Name,
				Price:       l.Product.Price,
				Quantity:    l.Quantity,
			}
			changes[i] = l.Change
		}
		s.Total = s.ItemsTotal()
		if vErr := verifyTotal(s.Total, req.Total); vErr != nil {
			return vErr
		}
		if cErr := sales.Create(ctx, s); cErr != nil {
			return cErr
		}
		sale = s
		return nil
	})
	telemetry.CheckoutLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if key != "" && errors.Is(err, domain.ErrDuplicate) {
			// Otro proceso confirmó la misma clave entre la consulta y el insert
			if replay, rErr := uc.replay(ctx, key); rErr == nil && replay != nil {
				return replay, nil
			}
			return nil, domain.ErrIdempotencyConflict
		}
		return nil, err
	}

	total, _ := sale.Total.Float64()
	telemetry.SalesCommittedTotal.Inc()
	telemetry.SalesRevenueTotal.Add(total)
	uc.log.Info().
		Str("venda", sale.ID).
		Str("total", sale.Total.StringFixed(2)).
		Str("pagamento", sale.PaymentMethod).
		Int("itens", len(sale.Items)).
		Msg("venda confirmada")

	if pErr := uc.events.Publish(ctx, ports.Event{
		Type:       ports.EventSaleCreated,
		Key:        sale.ID,
		OccurredAt: sale.CreatedAt,
		Payload:    dto.ToSaleResponse(sale),
	}); pErr != nil {
		uc.log.Warn().Err(pErr).Msg("no se pudo publicar evento sale.created")
	}
	uc.lowStock.Trigger(ctx)

	return &dto.CheckoutResponse{
		Success:  true,
		Sale:     dto.ToSaleResponse(sale),
		Products: changes,
	}, nil
}

func (uc *CommitUseCase) replay(ctx context.Context, key string) (*dto.CheckoutResponse, error) {
	existing, err := uc.sales.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	telemetry.CheckoutReplayedTotal.Inc()
	uc.log.Info().Str("venda", existing.ID).Msg("checkout repetido, devolviendo venta original")
	return &dto.CheckoutResponse{
		Success:  true,
		Replayed: true,
		Sale:     dto.ToSaleResponse(existing),
		Products: []dto.StockChangeDTO{},
	}, nil
}

// computeTotal suma los subtotales de líneas con precio y cantidad.
func computeTotal(items []entity.SaleItem) decimal.Decimal {
	return (&entity.Sale{Items: items}).ItemsTotal()
}
