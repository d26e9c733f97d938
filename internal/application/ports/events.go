package ports

import (
	"context"
	"time"
)

// Tipos de evento de dominio publicados.
const (
	EventSaleCreated   = "sale.created"
	EventStockLow      = "stock.low"
	EventStockAdjusted = "stock.adjusted"
)

// Event evento de dominio. Key agrupa eventos del mismo agregado (partición).
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// EventPublisher puerto de salida para eventos. Publicar es best-effort:
// un error se registra y no revierte la operación que lo originó.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...Event) error { return nil }

// IdempotencyLock reserva una clave de checkout mientras se procesa, para que dos envíos
// simultáneos del mismo carrito no compitan por la misma transacción.
type IdempotencyLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// NopLock siempre concede la clave; la restricción UNIQUE de la base sigue protegiendo el doble registro.
type NopLock struct{}

func (NopLock) Acquire(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (NopLock) Release(context.Context, string) error                        { return nil }
