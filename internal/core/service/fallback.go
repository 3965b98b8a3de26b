package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistbot/internal/core/domain"
	"assistbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTextTimeout  = 30 * time.Second
	DefaultImageTimeout = 60 * time.Second
)

// Invoker drives the provider fallback chain. For a given capability it
// tries providers in order, skips any that lack the capability or a
// credential, attempts each at most once with a bounded timeout, and stops
// on the first success. Provider failures are swallowed and aggregated; the
// caller only ever sees one error, after the whole chain is exhausted.
type Invoker struct {
	registry *Registry

	text        map[string]port.TextCapable
	image       map[string]port.ImageCapable
	translators map[string]port.TranslateCapable

	textTimeout  time.Duration
	imageTimeout time.Duration
}

func NewInvoker(registry *Registry, textTimeout, imageTimeout time.Duration) *Invoker {
	if textTimeout <= 0 {
		textTimeout = DefaultTextTimeout
	}
	if imageTimeout <= 0 {
		imageTimeout = DefaultImageTimeout
	}

	return &Invoker{
		registry:     registry,
		text:         make(map[string]port.TextCapable),
		image:        make(map[string]port.ImageCapable),
		translators:  make(map[string]port.TranslateCapable),
		textTimeout:  textTimeout,
		imageTimeout: imageTimeout,
	}
}

// Register wires a provider adapter into every capability it implements.
func (i *Invoker) Register(adapter port.Provider) {
	if t, ok := adapter.(port.TextCapable); ok {
		log.Info().Str("provider", adapter.Key()).Msg("registering text adapter")
		i.text[adapter.Key()] = t
	}

	if img, ok := adapter.(port.ImageCapable); ok {
		log.Info().Str("provider", adapter.Key()).Msg("registering image adapter")
		i.image[adapter.Key()] = img
	}

	if tr, ok := adapter.(port.TranslateCapable); ok {
		log.Info().Str("provider", adapter.Key()).Msg("registering translation adapter")
		i.translators[adapter.Key()] = tr
	}
}

// GenerateText runs the text chain and returns the first successful response
// along with the provider that produced it. An empty order uses the default
// text preference order.
func (i *Invoker) GenerateText(ctx context.Context, prompt string, maxTokens int, order []string) (string, string, error) {
	if len(order) == 0 {
		order = DefaultTextOrder
	}

	prompt = i.registry.LanguagePrompt(prompt)

	var failures []string
	for _, key := range order {
		adapter, ok := i.text[key]
		if !ok || !i.registry.Available(key, domain.CapabilityText) {
			log.Debug().Str("provider", key).Msg("skipping unavailable text provider")
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, i.textTimeout)
		response, err := adapter.GenerateText(callCtx, prompt, maxTokens)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("provider", key).Msg("text provider failed, trying next")
			failures = append(failures, fmt.Sprintf("%s: %s", key, err))
			continue
		}

		log.Debug().Str("provider", key).Msg("text generated")
		return response, key, nil
	}

	return "", "", chainError(failures)
}

// GenerateImage runs the image chain and returns raw image bytes. The prompt
// is enhanced for quality the same way for every provider.
func (i *Invoker) GenerateImage(ctx context.Context, prompt string, order []string) ([]byte, string, error) {
	if len(order) == 0 {
		order = DefaultImageOrder
	}

	prompt = "High quality, detailed, professional: " + prompt

	var failures []string
	for _, key := range order {
		adapter, ok := i.image[key]
		if !ok || !i.registry.Available(key, domain.CapabilityImage) {
			log.Debug().Str("provider", key).Msg("skipping unavailable image provider")
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, i.imageTimeout)
		data, err := adapter.GenerateImage(callCtx, prompt)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("provider", key).Msg("image provider failed, trying next")
			failures = append(failures, fmt.Sprintf("%s: %s", key, err))
			continue
		}

		log.Debug().Str("provider", key).Int("bytes", len(data)).Msg("image generated")
		return data, key, nil
	}

	return nil, "", chainError(failures)
}

// Translate runs the translation chain: dedicated translation providers in
// order, then the text chain as the last resort. An empty order uses the
// default translation preference order.
func (i *Invoker) Translate(ctx context.Context, text, targetLang string, order []string) (string, error) {
	if len(order) == 0 {
		order = DefaultTranslationOrder
	}

	for _, key := range order {
		adapter, ok := i.translators[key]
		if !ok || !i.registry.Available(key, domain.CapabilityTranslation) {
			log.Debug().Str("provider", key).Msg("skipping unavailable translation provider")
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, i.textTimeout)
		translated, err := adapter.Translate(callCtx, text, "auto", targetLang)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("provider", key).Msg("translation provider failed, trying next")
			continue
		}

		return translated, nil
	}

	prompt := translationPrompt(text, targetLang)
	translated, _, err := i.GenerateText(ctx, prompt, 0, nil)
	return translated, err
}

func translationPrompt(text, targetLang string) string {
	switch strings.ToLower(targetLang) {
	case "urdu", "ur":
		return "Translate the following text to Urdu (اردو): " + text
	case "pashto", "ps", "pa":
		return "Translate the following text to Pashto (پښتو): " + text
	default:
		return fmt.Sprintf("Translate the following text to %s: %s", targetLang, text)
	}
}

func chainError(failures []string) error {
	if len(failures) == 0 {
		return domain.ErrAllProvidersFailed
	}

	return fmt.Errorf("%w: %s", domain.ErrAllProvidersFailed, strings.Join(failures, "; "))
}
