package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-api/internal/application/alerts"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// AlertsHandler endpoints invocados por el scheduler externo (protegidos con CronAuth).
type AlertsHandler struct {
	lowStock *alerts.LowStockChecker
	expiry   *alerts.ExpiryChecker
	now      func() time.Time
	errs     errorResponder
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(lowStock *alerts.LowStockChecker, expiry *alerts.ExpiryChecker, log *logger.Logger) *AlertsHandler {
	return &AlertsHandler{lowStock: lowStock, expiry: expiry, now: time.Now, errs: errorResponder{log: log}}
}

// CheckExpiry godoc
// @Summary      Verificar validade
// @Description  Produtos com estoque que vencem nos próximos dias; envia um único alerta por WhatsApp.
// @Tags         alerts
// @Security     CronSecret
// @Produce      json
// @Success      200  {object}  dto.ExpiryCheckResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /check-expiry [get]
func (h *AlertsHandler) CheckExpiry(c *fiber.Ctx) error {
	start := h.now()
	out, err := h.expiry.Check(c.UserContext(), start)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao verificar validade")
	}
	out.Timestamp = start.UTC()
	out.ExecutionTime = time.Since(start).Round(time.Millisecond).String()
	return c.JSON(out)
}

// CheckLowStock godoc
// @Summary      Verificar estoque baixo
// @Description  Executa a verificação de forma síncrona, respeitando o intervalo entre avisos.
// @Tags         alerts
// @Security     CronSecret
// @Produce      json
// @Success      200  {object}  dto.LowStockReportDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /check-low-stock [get]
func (h *AlertsHandler) CheckLowStock(c *fiber.Ctx) error {
	out, err := h.lowStock.Check(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, "Erro ao verificar estoque")
	}
	return c.JSON(out)
}
