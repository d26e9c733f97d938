// Package kafka publica los eventos de dominio del PDV en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

// Publisher implementa ports.EventPublisher con un kafka.Writer.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher construye el productor. Key del evento = key del mensaje (misma partición por agregado).
func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteTimeout:           10 * time.Second,
		ReadTimeout:            10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer, log: log}
}

// Publish serializa los eventos a JSON y los escribe en un solo lote.
func (p *Publisher) Publish(ctx context.Context, events ...ports.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := encodeEvents(events)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka: escribir %d eventos: %w", len(msgs), err)
	}
	p.log.Debug().Int("count", len(msgs)).Str("type", events[0].Type).Msg("eventos publicados")
	return nil
}

// Close vacía el buffer y cierra las conexiones.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encodeEvents(events []ports.Event) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		if ev.OccurredAt.IsZero() {
			ev.OccurredAt = time.Now().UTC()
		}
		value, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("kafka: serializar evento %s: %w", ev.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(ev.Key),
			Value:   value,
			Time:    ev.OccurredAt,
			Headers: []kafka.Header{{Key: "event-type", Value: []byte(ev.Type)}},
		})
	}
	return msgs, nil
}
