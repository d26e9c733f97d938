package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ErrIdempotencyConflict la idempotency key de un checkout está en uso o ya registró una
// venta que no se pudo recuperar. Es un ErrConflict.
var ErrIdempotencyConflict = fmt.Errorf("%w: idempotency key en uso", ErrConflict)

// ValidationError campo inválido o ausente en la petición. Unwrap → ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError producto desconocido, identificado por SKU o por id. Unwrap → ErrNotFound.
type NotFoundError struct {
	Resource string // "produto" | "venda"
	SKU      string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.SKU != "" {
		return fmt.Sprintf("Produto com SKU %q não foi encontrado", e.SKU)
	}
	resource := e.Resource
	if resource == "" {
		resource = "recurso"
	}
	return fmt.Sprintf("%s %s não encontrado", capitalize(resource), e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError identifica el producto, lo disponible y lo solicitado.
// Unwrap → ErrInsufficientStock.
type InsufficientStockError struct {
	SKU       string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente para %q (SKU %s). Disponível: %d, Solicitado: %d",
		e.Name, e.SKU, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
