package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// HuggingFace serves text, images and translation through the free inference
// API. There is no Go SDK for it, so this is a plain HTTP adapter.
type HuggingFace struct {
	credentialKey    string
	baseURL          string
	textModel        string
	translationModel string
	// imageModels are tried in order; the inference API regularly has
	// individual diffusion models cold or gone.
	imageModels []string
}

func NewHuggingFace(credentialKey, baseURL, textModel, translationModel string, imageModels []string) *HuggingFace {
	return &HuggingFace{
		credentialKey:    credentialKey,
		baseURL:          baseURL,
		textModel:        textModel,
		translationModel: translationModel,
		imageModels:      imageModels,
	}
}

func (h *HuggingFace) Key() string {
	return "huggingface"
}

type hfTextRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type hfTextResponse []struct {
	GeneratedText   string `json:"generated_text"`
	TranslationText string `json:"translation_text"`
}

func (h *HuggingFace) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 500
	}

	body, err := h.postModel(ctx, h.textModel, hfTextRequest{
		Inputs: prompt,
		Parameters: map[string]any{
			"max_length":       maxTokens,
			"temperature":      0.7,
			"return_full_text": false,
		},
	})
	if err != nil {
		return "", err
	}

	var result hfTextResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshalling hugging face response: %w", err)
	}

	if len(result) == 0 || strings.TrimSpace(result[0].GeneratedText) == "" {
		return "", errors.New("empty hugging face response")
	}

	return strings.TrimSpace(result[0].GeneratedText), nil
}

func (h *HuggingFace) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	var lastErr error

	for _, model := range h.imageModels {
		data, err := h.postModel(ctx, model, hfTextRequest{Inputs: prompt})
		if err != nil {
			log.Warn().Err(err).Str("model", model).Msg("hugging face image model failed")
			lastErr = err
			continue
		}

		// A successful diffusion call returns the image bytes directly.
		return data, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no image models configured")
	}

	return nil, fmt.Errorf("all hugging face image models failed: %w", lastErr)
}

var mbartLangCodes = map[string]string{
	"urdu":    "ur_PK",
	"ur":      "ur_PK",
	"pashto":  "ps_AF",
	"ps":      "ps_AF",
	"english": "en_XX",
	"en":      "en_XX",
}

func (h *HuggingFace) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	target, ok := mbartLangCodes[strings.ToLower(targetLang)]
	if !ok {
		target = targetLang
	}

	body, err := h.postModel(ctx, h.translationModel, hfTextRequest{
		Inputs: text,
		Parameters: map[string]any{
			"src_lang": sourceLang,
			"tgt_lang": target,
		},
	})
	if err != nil {
		return "", err
	}

	var result hfTextResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshalling translation response: %w", err)
	}

	if len(result) == 0 || result[0].TranslationText == "" {
		return "", errors.New("empty translation response")
	}

	return result[0].TranslationText, nil
}

func (h *HuggingFace) postModel(ctx context.Context, model string, payload hfTextRequest) ([]byte, error) {
	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
		return nil, fmt.Errorf("error encoding hugging face request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", h.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payloadBuf)
	if err != nil {
		return nil, fmt.Errorf("error creating hugging face request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+viper.GetString(h.credentialKey))
	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing hugging face request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading hugging face response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hugging face API error: %s", body)
	}

	return body, nil
}
