// Package whatsapp implementa ports.Notifier sobre la WhatsApp Cloud API de Meta.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/jhoicas/pdv-api/internal/application/ports"
	"github.com/jhoicas/pdv-api/pkg/config"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

const maxErrorBody = 512

// textMessage cuerpo de POST /{phone-number-id}/messages.
type textMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type textPayload struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// Client envía mensajes de texto al teléfono del gerente. Sin credenciales, Send es un no-op.
type Client struct {
	http *resty.Client
	cfg  config.WhatsAppConfig
	log  *logger.Logger
}

// NewClient construye el cliente. No reintenta: la llamada falla tras cfg.Timeout.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.AccessToken)
	return &Client{http: hc, cfg: cfg, log: log}
}

// Close libera las conexiones del cliente HTTP.
func (c *Client) Close() error {
	return c.http.Close()
}

// Send publica body como mensaje de texto. Devuelve el id del mensaje asignado por Meta.
func (c *Client) Send(ctx context.Context, body string) (ports.SendResult, error) {
	if !c.cfg.Enabled() {
		c.log.Warn().Msg("whatsapp: credenciales ausentes, mensaje descartado")
		return ports.SendResult{Skipped: true}, nil
	}

	var out sendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(textMessage{
			MessagingProduct: "whatsapp",
			RecipientType:    "individual",
			To:               c.cfg.RecipientPhone,
			Type:             "text",
			Text:             textPayload{PreviewURL: false, Body: body},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/%s/messages", c.cfg.PhoneNumberID))
	if err != nil {
		return ports.SendResult{}, &ports.NotificationDeliveryError{Err: err}
	}
	if resp.IsError() {
		return ports.SendResult{}, &ports.NotificationDeliveryError{
			StatusCode: resp.StatusCode(),
			Body:       truncate(resp.String(), maxErrorBody),
			Err:        errors.New(resp.Status()),
		}
	}

	result := ports.SendResult{Success: true}
	if len(out.Messages) > 0 {
		result.ProviderMessageID = out.Messages[0].ID
	}
	c.log.Info().Str("message_id", result.ProviderMessageID).Msg("whatsapp: mensaje enviado")
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
