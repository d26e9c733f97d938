package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/sale"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// HeaderIdempotencyKey cabecera alternativa al campo idempotencyKey del checkout.
const HeaderIdempotencyKey = "Idempotency-Key"

// SaleHandler checkout, ventas, recibo y exportación.
type SaleHandler struct {
	commit  *sale.CommitUseCase
	sales   *sale.SaleUseCase
	receipt *sale.ReceiptUseCase
	loc     *time.Location
	errs    errorResponder
}

// NewSaleHandler construye el handler. loc es la zona horaria de la tienda (exportación diaria).
func NewSaleHandler(commit *sale.CommitUseCase, sales *sale.SaleUseCase, receipt *sale.ReceiptUseCase, loc *time.Location, log *logger.Logger) *SaleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleHandler{commit: commit, sales: sales, receipt: receipt, loc: loc, errs: errorResponder{log: log}}
}

// Checkout godoc
// @Summary      Finalizar venda
// @Description  Baixa o estoque e registra a venda numa única transação. O total é recalculado no servidor.
// @Description  Repetir a mesma chave de idempotência devolve a venda original (200, replayed=true).
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string               false  "Chave de idempotência"
// @Param        body             body    dto.CheckoutRequest  true   "Carrinho"
// @Success      201  {object}  dto.CheckoutResponse
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.StockErrorResponse
// @Failure      404  {object}  dto.StockErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if key := strings.TrimSpace(c.Get(HeaderIdempotencyKey)); key != "" {
		in.IdempotencyKey = key
	}
	out, err := h.commit.Commit(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao processar venda")
	}
	if out.Replayed {
		return c.Status(fiber.StatusOK).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Create godoc
// @Summary      Registrar venda
// @Description  Registra uma venda já cobrada sem mexer no estoque. Preços conferidos com o catálogo.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, total, paymentMethod"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sales.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao salvar venda")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{Success: true, Sale: *out})
}

// List godoc
// @Summary      Listar vendas
// @Tags         sales
// @Produce      json
// @Param        limit  query  int  false  "Máximo de vendas (até 100)"  default(100)
// @Success      200    {array}  dto.SaleResponse
// @Router       /sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.sales.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return h.errs.respond(c, err, "Erro ao buscar vendas")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter venda
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.sales.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err, "Erro ao buscar venda")
	}
	return c.JSON(dto.ToSaleResponse(s))
}

// DeleteAll godoc
// @Summary      Excluir todas as vendas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeleteSalesResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /sales [delete]
func (h *SaleHandler) DeleteAll(c *fiber.Ctx) error {
	out, err := h.sales.DeleteAll(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, "Erro ao excluir vendas")
	}
	h.errs.log.Warn().Str("username", GetUsername(c)).Int64("deleted", out.Deleted).Msg("vendas excluídas")
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar vendas do dia (CSV)
// @Tags         sales
// @Produce      text/csv
// @Param        date  query  string  false  "Dia (AAAA-MM-DD). Padrão: hoje"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.sales.ExportDay(c.UserContext(), c.Query("date"), h.loc)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao exportar vendas")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Receipt godoc
// @Summary      Recibo da venda (PDF)
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	data, filename, err := h.receipt.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err, "Erro ao gerar recibo")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}
