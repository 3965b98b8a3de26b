package mailbox

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"assistbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Gmail lists unread mail and sends threaded replies through the Gmail REST
// API. It implements both the inbound fetcher and the message sender for the
// email platform: the sender's recipient is the Gmail message ID of the mail
// being answered. After a successful send the original is marked read, which
// is what keeps it out of the next unread batch.
type Gmail struct {
	baseURL string
}

func NewGmail() *Gmail {
	return &Gmail{
		baseURL: "https://gmail.googleapis.com/gmail/v1/users/me",
	}
}

type gmailListResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type gmailMessage struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
	Payload struct {
		Headers []gmailHeader `json:"headers"`
		Body    gmailBody     `json:"body"`
		Parts   []struct {
			MimeType string    `json:"mimeType"`
			Body     gmailBody `json:"body"`
		} `json:"parts"`
	} `json:"payload"`
}

type gmailHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type gmailBody struct {
	Data string `json:"data"`
}

func (g *Gmail) ListUnread(ctx context.Context, limit int) ([]domain.InboundMessage, error) {
	url := fmt.Sprintf("%s/messages?q=is:unread&maxResults=%d", g.baseURL, limit)

	body, err := g.call(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var list gmailListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("error unmarshalling message list: %w", err)
	}

	var items []domain.InboundMessage
	for _, ref := range list.Messages {
		message, err := g.getMessage(ctx, ref.ID)
		if err != nil {
			log.Warn().Err(err).Str("messageID", ref.ID).Msg("could not fetch message, skipping")
			continue
		}

		items = append(items, message)
	}

	return items, nil
}

func (g *Gmail) getMessage(ctx context.Context, id string) (domain.InboundMessage, error) {
	body, err := g.call(ctx, http.MethodGet, fmt.Sprintf("%s/messages/%s", g.baseURL, id), nil)
	if err != nil {
		return domain.InboundMessage{}, err
	}

	var message gmailMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return domain.InboundMessage{}, fmt.Errorf("error unmarshalling message: %w", err)
	}

	text := decodeBody(message)
	if text == "" {
		text = message.Snippet
	}

	return domain.InboundMessage{
		ID:      message.ID,
		Sender:  header(message.Payload.Headers, "From"),
		Subject: header(message.Payload.Headers, "Subject"),
		Body:    text,
		ReplyTo: message.ID,
	}, nil
}

// Send answers the mail identified by recipient (a Gmail message ID) in its
// original thread, then marks it read.
func (g *Gmail) Send(ctx context.Context, recipient, text string) error {
	body, err := g.call(ctx, http.MethodGet, fmt.Sprintf("%s/messages/%s", g.baseURL, recipient), nil)
	if err != nil {
		return err
	}

	var original gmailMessage
	if err := json.Unmarshal(body, &original); err != nil {
		return fmt.Errorf("error unmarshalling original message: %w", err)
	}

	raw := buildReply(original, text)

	payload, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString([]byte(raw)),
	})
	if err != nil {
		return fmt.Errorf("error encoding send request: %w", err)
	}

	if _, err := g.call(ctx, http.MethodPost, g.baseURL+"/messages/send", payload); err != nil {
		return fmt.Errorf("error sending reply: %w", err)
	}

	markRead, _ := json.Marshal(map[string][]string{
		"removeLabelIds": {"UNREAD"},
	})
	if _, err := g.call(ctx, http.MethodPost, fmt.Sprintf("%s/messages/%s/modify", g.baseURL, recipient), markRead); err != nil {
		log.Warn().Err(err).Str("messageID", recipient).Msg("could not mark message read")
	}

	log.Info().Str("messageID", recipient).Msg("email reply sent")

	return nil
}

var addressPattern = regexp.MustCompile(`<(.+?)>`)

func buildReply(original gmailMessage, text string) string {
	from := header(original.Payload.Headers, "From")
	subject := header(original.Payload.Headers, "Subject")
	messageID := header(original.Payload.Headers, "Message-ID")

	to := from
	if match := addressPattern.FindStringSubmatch(from); match != nil {
		to = match[1]
	}

	if !strings.HasPrefix(subject, "Re:") {
		subject = "Re: " + subject
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "In-Reply-To: %s\r\n", messageID)
	fmt.Fprintf(&b, "References: %s\r\n", messageID)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(text)

	return b.String()
}

func header(headers []gmailHeader, name string) string {
	for _, h := range headers {
		if h.Name == name {
			return h.Value
		}
	}

	return ""
}

func decodeBody(message gmailMessage) string {
	for _, part := range message.Payload.Parts {
		if part.MimeType == "text/plain" && part.Body.Data != "" {
			if decoded, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
				return string(decoded)
			}
		}
	}

	if message.Payload.Body.Data != "" {
		if decoded, err := base64.URLEncoding.DecodeString(message.Payload.Body.Data); err == nil {
			return string(decoded)
		}
	}

	return ""
}

func (g *Gmail) call(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating gmail request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+viper.GetString("gmail.access_token"))
	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing gmail request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading gmail response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gmail API error: %s", body)
	}

	return body, nil
}
