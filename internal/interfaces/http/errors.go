package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-api/internal/application/alerts"
	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// Mensajes fijos de error mostrados al operador.
const (
	msgInvalidBody  = "Corpo da requisição inválido"
	msgDuplicate    = "Já existe um produto com este SKU"
	msgConflict     = "Operação em andamento, tente novamente"
	msgIdempotency  = "Esta venda já está sendo registrada; aguarde e consulte as vendas antes de repetir"
	msgUnauthorized = "Credenciais inválidas"
	msgForbidden    = "Acesso negado"
	msgNotifyFail   = "Falha ao enviar notificação"
)

// errorResponder traduce errores de dominio a respuestas HTTP. Los 500 son opacos y se registran.
type errorResponder struct {
	log *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error, internalMsg string) error {
	var (
		vErr  *domain.ValidationError
		nfErr *domain.NotFoundError
		isErr *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &isErr):
		available, requested := isErr.Available, isErr.Requested
		return c.Status(fiber.StatusBadRequest).JSON(dto.StockErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   isErr.Error(),
			SKU:       isErr.SKU,
			Available: &available,
			Requested: &requested,
		})
	case errors.As(err, &nfErr):
		if nfErr.SKU != "" {
			return c.Status(fiber.StatusNotFound).JSON(dto.StockErrorResponse{
				Code: "NOT_FOUND", Message: nfErr.Error(), SKU: nfErr.SKU,
			})
		}
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", nfErr.Error())
	case errors.As(err, &vErr):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", vErr.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", msgInvalidBody)
	case errors.Is(err, domain.ErrIdempotencyConflict):
		return fail(c, fiber.StatusConflict, "IDEMPOTENCY_CONFLICT", msgIdempotency)
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", msgDuplicate)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", msgConflict)
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", msgUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", msgForbidden)
	case errors.Is(err, alerts.ErrNotificationFailed):
		r.log.Error().Err(err).Str("path", c.Path()).Msg("notificación fallida")
		return fail(c, fiber.StatusBadGateway, "NOTIFICATION_FAILED", msgNotifyFail)
	}
	r.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", internalMsg)
}

// respondBatch es respond para la baixa de estoque por lote: un SKU desconocido es un
// error del lote (400 con el SKU), no un recurso inexistente.
func (r errorResponder) respondBatch(c *fiber.Ctx, err error, internalMsg string) error {
	var nfErr *domain.NotFoundError
	if errors.As(err, &nfErr) && nfErr.SKU != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.StockErrorResponse{
			Code: "NOT_FOUND", Message: nfErr.Error(), SKU: nfErr.SKU,
		})
	}
	return r.respond(c, err, internalMsg)
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", msgInvalidBody)
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("requestid").(string); ok {
		return v
	}
	return ""
}
