package ports

import (
	"context"
	"fmt"
)

// SendResult resultado de un envío. Skipped indica que el gateway no está configurado
// y el mensaje se descartó sin error.
type SendResult struct {
	Success           bool
	ProviderMessageID string
	Skipped           bool
}

// Notifier puerto de salida para mensajes de texto al teléfono del gerente.
// El contexto debe llevar un timeout; las implementaciones no reintentan.
type Notifier interface {
	Send(ctx context.Context, body string) (SendResult, error)
}

// NotificationDeliveryError el proveedor rechazó el mensaje o no respondió.
// Nunca llega al usuario final: quien lo recibe lo registra en el log.
type NotificationDeliveryError struct {
	StatusCode int    // 0 si no hubo respuesta HTTP
	Body       string // cuerpo de error del proveedor, truncado
	Err        error
}

func (e *NotificationDeliveryError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("entrega de notificación falló: HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("entrega de notificación falló: %v", e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error { return e.Err }
