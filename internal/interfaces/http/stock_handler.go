package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// StockHandler baja de estoque por lote y lista de reposición.
type StockHandler struct {
	uc            *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
	errs          errorResponder
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, replenishment: replenishment, errs: errorResponder{log: log}}
}

// Decrement godoc
// @Summary      Baixar estoque (lote)
// @Description  Todas as linhas ou nenhuma. Produtos sem controle de estoque são aceitos sem alteração.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecrementStockRequest  true  "itens [{sku, quantidade}]"
// @Success      200   {object}  dto.DecrementStockResponse
// @Failure      400   {object}  dto.StockErrorResponse
// @Router       /decrement-stock [post]
func (h *StockHandler) Decrement(c *fiber.Ctx) error {
	var in dto.DecrementStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.DecrementStock(c.UserContext(), in)
	if err != nil {
		return h.errs.respondBatch(c, err, "Erro ao atualizar estoque")
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposição
// @Description  Produtos no mínimo ou abaixo com a quantidade sugerida de compra,
//
//	priorizados pelas vendas dos últimos 30 dias.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /replenishment-list [get]
func (h *StockHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, "Erro ao gerar lista de reposição")
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"reposicao": list,
	})
}
