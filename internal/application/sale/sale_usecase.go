package sale

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/brl"
	"github.com/jhoicas/pdv-api/pkg/logger"
	"github.com/jhoicas/pdv-api/pkg/telemetry"
)

// SaleUseCase registro y consulta de ventas (POST/GET/DELETE /sales).
type SaleUseCase struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	events   ports.EventPublisher
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(sales repository.SaleRepository, products repository.ProductRepository, events ports.EventPublisher, log *logger.Logger) *SaleUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{sales: sales, products: products, events: events, log: log.Named("sales")}
}

// Create registra una venta sin mover estoque. Cada precio debe coincidir con el del catálogo
// y el total (si viene) con la suma de las líneas.
func (uc *SaleUseCase) Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, domain.NewValidationError("items", "Dados incompletos: nenhum item informado")
	}
	method, err := validatePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(req.Items))
	for i, it := range req.Items {
		field := "items[" + strconv.Itoa(i) + "]"
		sku := strings.TrimSpace(it.Product.SKU)
		if sku == "" {
			return nil, domain.NewValidationError(field+".produto.sku", "Item %d sem SKU", i+1)
		}
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError(field+".quantidade", "Quantidade inválida para o SKU %s", sku)
		}
		p, err := uc.products.GetBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.NotFoundError{Resource: "produto", SKU: sku}
		}
		if !it.Price.Equal(p.Price) {
			return nil, domain.NewValidationError(field+".preco", "Preço de %q (%s) difere do catálogo (%s)",
				p.Name, brl.Money(it.Price), brl.Money(p.Price))
		}
		items = append(items, entity.SaleItem{
			ProductSKU:  p.SKU,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    it.Quantity,
		})
	}

	total := computeTotal(items)
	clientTotal := req.Total
	if err := verifyTotal(total, &clientTotal); err != nil {
		return nil, err
	}

	s := &entity.Sale{Total: total, PaymentMethod: method, Items: items}
	if err := uc.sales.Create(ctx, s); err != nil {
		return nil, err
	}
	telemetry.SalesCommittedTotal.Inc()
	uc.log.Info().Str("venda", s.ID).Str("total", s.Total.StringFixed(2)).Msg("venda registrada")

	resp := dto.ToSaleResponse(s)
	if pErr := uc.events.Publish(ctx, ports.Event{
		Type:       ports.EventSaleCreated,
		Key:        s.ID,
		OccurredAt: s.CreatedAt,
		Payload:    resp,
	}); pErr != nil {
		uc.log.Warn().Err(pErr).Msg("no se pudo publicar evento sale.created")
	}
	return &resp, nil
}

// List ventas con ítems, más recientes primero. limit fuera de (0, 100] usa 100.
func (uc *SaleUseCase) List(ctx context.Context, limit int) ([]dto.SaleResponse, error) {
	if limit <= 0 || limit > repository.MaxSalesListed {
		limit = repository.MaxSalesListed
	}
	sales, err := uc.sales.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, len(sales))
	for i, s := range sales {
		out[i] = dto.ToSaleResponse(s)
	}
	return out, nil
}

// Get venta por id.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Resource: "venda", ID: id}
	}
	return s, nil
}

// DeleteAll borra todo el historial de ventas (solo admin).
func (uc *SaleUseCase) DeleteAll(ctx context.Context) (*dto.DeleteSalesResponse, error) {
	n, err := uc.sales.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}
	uc.log.Warn().Int64("vendas", n).Msg("histórico de vendas apagado")
	return &dto.DeleteSalesResponse{
		Success: true,
		Message: "Todas as vendas foram excluídas com sucesso",
		Deleted: n,
	}, nil
}

// DayRange [00:00, 24:00) del día YYYY-MM-DD en loc.
func DayRange(date string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("date", "Data inválida %q: use AAAA-MM-DD", date)
	}
	return day, day.AddDate(0, 0, 1), nil
}
