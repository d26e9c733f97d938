package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
	"github.com/jhoicas/pdv-api/pkg/logger"
	"github.com/jhoicas/pdv-api/pkg/telemetry"
)

// ErrNotificationFailed el aviso principal no pudo entregarse.
var ErrNotificationFailed = errors.New("falha ao enviar notificação")

// ExpiryConfig parámetros del verificador de validade.
type ExpiryConfig struct {
	WindowDays      int
	MaxItems        int
	NotifyWhenEmpty bool
	Location        *time.Location
}

// ExpiryChecker busca productos con estoque que vencen entre hoy y hoy+WindowDays y avisa al gerente.
type ExpiryChecker struct {
	products repository.ProductRepository
	notifier ports.Notifier
	cfg      ExpiryConfig
	log      *logger.Logger
}

// NewExpiryChecker construye el verificador.
func NewExpiryChecker(products repository.ProductRepository, notifier ports.Notifier, cfg ExpiryConfig, log *logger.Logger) *ExpiryChecker {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 7
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 20
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ExpiryChecker{products: products, notifier: notifier, cfg: cfg, log: log.Named("expiry")}
}

// Check ejecuta la verificación con "hoy" = now. Si el envío falla intenta un segundo
// mensaje de error (su fallo solo se registra) y devuelve ErrNotificationFailed envuelto.
func (c *ExpiryChecker) Check(ctx context.Context, now time.Time) (*dto.ExpiryCheckResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "alerts.ExpiryCheck")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	from, to := inventory.ExpiryWindow(now, c.cfg.WindowDays, c.cfg.Location)
	products, err := c.products.ListExpiring(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listar productos por vencer: %w", err)
	}

	resp := &dto.ExpiryCheckResponse{
		Success:  true,
		Products: make([]dto.ExpiringProductDTO, 0, len(products)),
	}
	for _, p := range products {
		if p.ExpiresAt == nil || !p.Stock.Positive() {
			continue
		}
		qty, _ := p.Stock.Quantity()
		resp.Products = append(resp.Products, dto.ExpiringProductDTO{
			SKU:       p.SKU,
			Name:      p.Name,
			Brand:     p.BrandOrEmpty(),
			ExpiresAt: inventory.ExpiryDate(*p.ExpiresAt),
			DaysLeft:  inventory.DaysUntil(*p.ExpiresAt, now, c.cfg.Location),
			Stock:     qty,
		})
	}
	resp.ProductsCount = len(resp.Products)
	c.log.Info().Int("produtos", resp.ProductsCount).Msg("verificación de validade")

	var body string
	if resp.ProductsCount == 0 {
		resp.Message = "Nenhum produto próximo da validade"
		if !c.cfg.NotifyWhenEmpty {
			return resp, nil
		}
		body = FormatExpiryAllClear(now.In(c.cfg.Location), c.cfg.WindowDays)
	} else {
		body = FormatExpiryMessage(resp.Products, now.In(c.cfg.Location), c.cfg.MaxItems)
	}

	res, sendErr := c.notifier.Send(ctx, body)
	if sendErr != nil {
		telemetry.NotificationsTotal.WithLabelValues("expiry", "failed").Inc()
		c.log.Error().Err(sendErr).Msg("falha ao enviar alerta de validade")
		c.reportFailure(ctx, sendErr, now)
		err = fmt.Errorf("%w: %w", ErrNotificationFailed, sendErr)
		return nil, err
	}
	if res.Skipped {
		telemetry.NotificationsTotal.WithLabelValues("expiry", "skipped").Inc()
		if resp.ProductsCount > 0 {
			resp.Message = "WhatsApp não configurado; alerta não enviado"
		}
		return resp, nil
	}
	telemetry.NotificationsTotal.WithLabelValues("expiry", "sent").Inc()
	resp.Sent = true
	resp.WhatsAppMessageID = res.ProviderMessageID
	if resp.ProductsCount > 0 {
		resp.Message = "Alerta enviado com sucesso"
	}
	return resp, nil
}

func (c *ExpiryChecker) reportFailure(ctx context.Context, cause error, now time.Time) {
	if _, err := c.notifier.Send(ctx, FormatExpiryFailure(cause, now)); err != nil {
		c.log.Error().Err(err).Msg("falha ao enviar mensagem de erro")
	}
}
