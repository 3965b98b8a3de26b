package speaker

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPSpeaker hands result messages to an external text-to-speech endpoint.
// Speak is fire-and-forget: it detaches a goroutine and returns immediately,
// the caller never waits on or observes playback.
type HTTPSpeaker struct {
	endpoint string
	timeout  time.Duration
}

func NewHTTPSpeaker(endpoint string, timeout time.Duration) *HTTPSpeaker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPSpeaker{endpoint: endpoint, timeout: timeout}
}

type speakRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

func (s *HTTPSpeaker) Speak(text, language string) {
	if s.endpoint == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		payloadBuf := new(bytes.Buffer)
		if err := json.NewEncoder(payloadBuf).Encode(speakRequest{Text: text, Language: language}); err != nil {
			log.Warn().Err(err).Msg("could not encode speech request")
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, payloadBuf)
		if err != nil {
			log.Warn().Err(err).Msg("could not create speech request")
			return
		}
		req.Header.Add("Content-Type", "application/json")

		res, err := (&http.Client{}).Do(req)
		if err != nil {
			log.Warn().Err(err).Msg("speech endpoint unreachable")
			return
		}
		res.Body.Close()

		log.Debug().Int("status", res.StatusCode).Msg("speech request delivered")
	}()
}
