package inventory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/logger"
	"github.com/jhoicas/pdv-api/pkg/telemetry"
)

// StockUseCase baja de estoque por lote (venta) y ajustes absolutos (gestão de estoque).
// Toda mutación corre en una transacción con bloqueo de fila (SELECT FOR UPDATE).
type StockUseCase struct {
	txRunner TxRunner
	lowStock LowStockTrigger
	events   ports.EventPublisher
	log      *logger.Logger
}

// NewStockUseCase construye el caso de uso. lowStock y events pueden ser nil.
func NewStockUseCase(txRunner TxRunner, lowStock LowStockTrigger, events ports.EventPublisher, log *logger.Logger) *StockUseCase {
	if lowStock == nil {
		lowStock = NopTrigger{}
	}
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{txRunner: txRunner, lowStock: lowStock, events: events, log: log.Named("stock")}
}

// Line resultado de aplicar una línea del lote. Product es el estado previo a la baja
// (nombre y precio de catálogo para el snapshot de la venta).
type Line struct {
	Product  *entity.Product
	Quantity int
	Change   dto.StockChangeDTO
}

// ValidateItems revisa que el lote no esté vacío y que cada línea tenga SKU y cantidad positiva.
// Devuelve las líneas con el SKU normalizado.
func ValidateItems(items []dto.DecrementStockItem) ([]dto.DecrementStockItem, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("itens", "Nenhum item informado")
	}
	out := make([]dto.DecrementStockItem, len(items))
	for i, it := range items {
		sku := strings.TrimSpace(it.SKU)
		if sku == "" {
			return nil, domain.NewValidationError("itens["+strconv.Itoa(i)+"].sku", "Item %d sem SKU", i+1)
		}
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError("itens["+strconv.Itoa(i)+"].quantidade",
				"Quantidade inválida para o SKU %s: deve ser um inteiro positivo", sku)
		}
		out[i] = dto.DecrementStockItem{SKU: sku, Quantity: it.Quantity}
	}
	return out, nil
}

// ApplyDecrement aplica el lote dentro de la transacción del caller. Primero bloquea cada
// SKU distinto en orden alfabético (evita deadlocks entre carritos que comparten productos)
// y luego descuenta en el orden del pedido: un SKU repetido ve lo que dejó la línea anterior.
// Cualquier error deja la transacción para rollback: no se confirma ninguna línea.
func ApplyDecrement(ctx context.Context, products repository.ProductRepository, items []dto.DecrementStockItem) ([]Line, error) {
	skus := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.SKU] {
			seen[it.SKU] = true
			skus = append(skus, it.SKU)
		}
	}
	sort.Strings(skus)

	locked := make(map[string]*entity.Product, len(skus))
	for _, sku := range skus {
		p, err := products.GetBySKUForUpdate(ctx, sku)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.NotFoundError{Resource: "produto", SKU: sku}
		}
		locked[sku] = p
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		p := locked[it.SKU]
		before := p.Stock
		next, ok := before.Decrement(it.Quantity)
		if !ok {
			available, _ := before.Quantity()
			return nil, &domain.InsufficientStockError{SKU: p.SKU, Name: p.Name, Available: available, Requested: it.Quantity}
		}
		if before.IsTracked() {
			applied, err := products.DecrementStock(ctx, p.ID, it.Quantity)
			if err != nil {
				return nil, err
			}
			if !applied {
				available, _ := before.Quantity()
				return nil, &domain.InsufficientStockError{SKU: p.SKU, Name: p.Name, Available: available, Requested: it.Quantity}
			}
		}

		snapshot := *p
		lines = append(lines, Line{
			Product:  &snapshot,
			Quantity: it.Quantity,
			Change: dto.StockChangeDTO{
				SKU:      p.SKU,
				Name:     p.Name,
				Before:   before.Ptr(),
				After:    next.Ptr(),
				Quantity: it.Quantity,
			},
		})
		p.Stock = next
	}
	return lines, nil
}

// DecrementStock baja relativa por lote, todo o nada. Dispara la verificación de estoque
// baixo después del commit.
func (uc *StockUseCase) DecrementStock(ctx context.Context, req dto.DecrementStockRequest) (*dto.DecrementStockResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "inventory.DecrementStock")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	items, err := ValidateItems(req.Items)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var lines []Line
	err = uc.txRunner.RunStock(ctx, func(products repository.ProductRepository) error {
		var applyErr error
		lines, applyErr = ApplyDecrement(ctx, products, items)
		return applyErr
	})
	if err != nil {
		telemetry.StockMutationsTotal.WithLabelValues("decrement", "rejected").Inc()
		return nil, err
	}
	telemetry.StockMutationsTotal.WithLabelValues("decrement", "ok").Inc()
	uc.log.Info().Int("itens", len(lines)).Dur("duracao", time.Since(start)).Msg("estoque atualizado")

	changes := make([]dto.StockChangeDTO, len(lines))
	for i, l := range lines {
		changes[i] = l.Change
	}
	uc.publish(ctx, "decrement", changes)
	uc.lowStock.Trigger(ctx)

	return &dto.DecrementStockResponse{
		Success:  true,
		Message:  "Estoque atualizado com sucesso",
		Products: changes,
	}, nil
}

// AdjustStock ajuste absoluto desde la gestão de estoque: add suma, remove resta sin bajar de 0.
func (uc *StockUseCase) AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if req.ProductID <= 0 {
		return nil, domain.NewValidationError("productId", "ID do produto é obrigatório")
	}
	if req.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "Quantidade deve ser um inteiro positivo")
	}
	if req.Type != dto.AdjustAdd && req.Type != dto.AdjustRemove {
		return nil, domain.NewValidationError("type", "Tipo de ajuste inválido: use \"add\" ou \"remove\"")
	}

	var updated *entity.Product
	var before entity.Stock
	err := uc.txRunner.RunStock(ctx, func(products repository.ProductRepository) error {
		p, err := products.GetByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Resource: "produto", ID: strconv.FormatInt(req.ProductID, 10)}
		}
		before = p.Stock
		if req.Type == dto.AdjustAdd {
			p.Stock = p.Stock.Add(req.Quantity)
		} else {
			p.Stock = p.Stock.RemoveFloor(req.Quantity)
		}
		if err := products.UpdateStock(ctx, p.ID, p.Stock); err != nil {
			return err
		}
		p.UpdatedAt = time.Now()
		updated = p
		return nil
	})
	if err != nil {
		telemetry.StockMutationsTotal.WithLabelValues(req.Type, "rejected").Inc()
		return nil, err
	}
	telemetry.StockMutationsTotal.WithLabelValues(req.Type, "ok").Inc()

	uc.publish(ctx, req.Type, []dto.StockChangeDTO{{
		SKU:      updated.SKU,
		Name:     updated.Name,
		Before:   before.Ptr(),
		After:    updated.Stock.Ptr(),
		Quantity: req.Quantity,
	}})
	uc.lowStock.Trigger(ctx)

	resp := dto.ToProductResponse(updated)
	return &resp, nil
}

// stockAdjusted payload de stock.adjusted; un evento por SKU, con el SKU como key.
type stockAdjusted struct {
	Kind string `json:"tipo"`
	dto.StockChangeDTO
}

func (uc *StockUseCase) publish(ctx context.Context, kind string, changes []dto.StockChangeDTO) {
	now := time.Now()
	events := make([]ports.Event, len(changes))
	for i, ch := range changes {
		events[i] = ports.Event{
			Type:       ports.EventStockAdjusted,
			Key:        ch.SKU,
			OccurredAt: now,
			Payload:    stockAdjusted{Kind: kind, StockChangeDTO: ch},
		}
	}
	if err := uc.events.Publish(ctx, events...); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo publicar evento stock.adjusted")
	}
}
