package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"assistbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// WhatsApp sends messages through the WhatsApp Cloud API and queues inbound
// messages handed over by the webhook layer. The Business API offers no
// message-history retrieval, so the queue is the only inbound source:
// ListUnread drains it, which means a crashed pass drops items rather than
// replying twice.
type WhatsApp struct {
	baseURL string

	mu    sync.Mutex
	queue []domain.InboundMessage
}

func NewWhatsApp() *WhatsApp {
	return &WhatsApp{
		baseURL: "https://graph.facebook.com/v17.0",
	}
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	Body string `json:"body"`
}

func (w *WhatsApp) Send(ctx context.Context, recipient, text string) error {
	payload := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "text",
		Text:             whatsAppText{Body: text},
	}

	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
		return fmt.Errorf("error encoding whatsapp request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", w.baseURL, viper.GetString("whatsapp.phone_number_id"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payloadBuf)
	if err != nil {
		return fmt.Errorf("error creating whatsapp request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+viper.GetString("whatsapp.access_token"))
	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error executing whatsapp request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("whatsapp API error: %s", body)
	}

	log.Info().Str("to", recipient).Msg("whatsapp message sent")

	return nil
}

// Enqueue stores one webhook-delivered inbound message for the next
// auto-reply pass.
func (w *WhatsApp) Enqueue(message domain.InboundMessage) {
	if message.ReplyTo == "" {
		message.ReplyTo = message.Sender
	}

	w.mu.Lock()
	w.queue = append(w.queue, message)
	w.mu.Unlock()

	log.Debug().Str("sender", message.Sender).Msg("queued inbound whatsapp message")
}

func (w *WhatsApp) ListUnread(_ context.Context, limit int) ([]domain.InboundMessage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(w.queue) {
		limit = len(w.queue)
	}

	items := make([]domain.InboundMessage, limit)
	copy(items, w.queue[:limit])
	w.queue = w.queue[limit:]

	return items, nil
}
