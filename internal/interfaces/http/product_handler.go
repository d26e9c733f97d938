package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	stock *inventory.StockUseCase
	errs  errorResponder
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stock *inventory.StockUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock, errs: errorResponder{log: log}}
}

// Create godoc
// @Summary      Criar produto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Dados do produto (estoque null = sem controle)"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao criar produto")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateProductResponse{
		Message: "Produto criado com sucesso",
		Product: *out,
	})
}

// GetByID godoc
// @Summary      Obter produto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "ID do produto inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao buscar produto")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar produtos
// @Description  Catálogo completo, os mais recentes primeiro.
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, "Erro ao buscar produtos")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar produto
// @Description  Sobrescreve todos os campos editáveis, estoque incluído.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "Produto completo com id"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao atualizar produto")
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar estoque
// @Description  add soma a quantidade; remove subtrai com piso em zero.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, quantity > 0, type add|remove"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products [patch]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stock.AdjustStock(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao atualizar estoque")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir produto
// @Description  O id vem da query (?id=) ou do corpo {id}.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    query  int                       false  "ID do produto"
// @Param        body  body   dto.DeleteProductRequest  false  "ID do produto"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := int64(c.QueryInt("id", 0))
	if id == 0 && len(c.Body()) > 0 {
		var in dto.DeleteProductRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		id = in.ID
	}
	if id <= 0 {
		return h.errs.respond(c, domain.NewValidationError("id", "ID do produto é obrigatório"), "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.errs.respond(c, err, "Erro ao excluir produto")
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Produto excluído com sucesso"})
}

// LookupSKU godoc
// @Summary      Buscar produto por SKU
// @Description  Usado pelo leitor de código de barras do caixa.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SKULookupRequest  true  "sku"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/sku [post]
func (h *ProductHandler) LookupSKU(c *fiber.Ctx) error {
	var in dto.SKULookupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.GetBySKU(c.UserContext(), in.SKU)
	if err != nil {
		return h.errs.respond(c, err, "Erro ao buscar produto")
	}
	return c.JSON(out)
}
