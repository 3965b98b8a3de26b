package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"assistbot/internal/adapters/file"

	"github.com/revrost/go-openrouter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// OpenRouter serves text through the openrouter chat completion API and
// images through its generations endpoint. The credential is read from
// config at call start, so key updates apply to the next call.
type OpenRouter struct {
	credentialKey string
	baseURL       string
	textModel     string
	imageModel    string
}

func NewOpenRouter(credentialKey, baseURL, textModel, imageModel string) *OpenRouter {
	return &OpenRouter{
		credentialKey: credentialKey,
		baseURL:       baseURL,
		textModel:     textModel,
		imageModel:    imageModel,
	}
}

func (o *OpenRouter) Key() string {
	return "openrouter"
}

func (o *OpenRouter) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	client := openrouter.NewClient(
		viper.GetString(o.credentialKey),
		openrouter.WithXTitle("assistbot"),
	)

	resp, err := client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model: o.textModel,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: prompt},
			},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in openrouter response")
	}

	return resp.Choices[0].Message.Content.Text, nil
}

type openRouterImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type openRouterImageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage uses the generations endpoint directly; the chat client does
// not cover it.
func (o *OpenRouter) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	payload := openRouterImageRequest{
		Model:  o.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(payload); err != nil {
		return nil, fmt.Errorf("error encoding openrouter image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/images/generations", payloadBuf)
	if err != nil {
		return nil, fmt.Errorf("error creating openrouter image request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+viper.GetString(o.credentialKey))
	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing openrouter image request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading openrouter image response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openrouter image error: %s", body)
	}

	var result openRouterImageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling openrouter image response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, errors.New("no images returned from openrouter")
	}

	log.Debug().Str("url", result.Data[0].URL).Msg("downloading openrouter image")

	return file.DownloadFile(ctx, result.Data[0].URL)
}
