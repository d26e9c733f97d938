package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pdv-api/internal/application/analytics"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del dashboard de vendas.
type DashboardHandler struct {
	uc   *appanalytics.DashboardUseCase
	errs errorResponder
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errorResponder{log: log}}
}

// GetSummary godoc
// @Summary      Resumo de vendas
// @Description  KPIs do período: total, pedidos, ticket médio, mais vendido, participação por produto,
// @Description  por forma de pagamento e série diária. Sem datas usa o mês corrente.
// @Tags         dashboard
// @Produce      json
// @Param        from  query  string  false  "Início (AAAA-MM-DD)"
// @Param        to    query  string  false  "Fim inclusive (AAAA-MM-DD)"
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return h.errs.respond(c, err, "Erro ao carregar dashboard")
	}
	return c.JSON(summary)
}
