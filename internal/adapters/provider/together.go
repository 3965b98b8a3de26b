package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
)

// Together serves text and images through the Together AI API. Both surfaces
// are OpenAI-compatible.
type Together struct {
	credentialKey string
	baseURL       string
	textModel     string
	imageModel    string
}

func NewTogether(credentialKey, baseURL, textModel, imageModel string) *Together {
	return &Together{
		credentialKey: credentialKey,
		baseURL:       baseURL,
		textModel:     textModel,
		imageModel:    imageModel,
	}
}

func (t *Together) Key() string {
	return "together"
}

func (t *Together) client() *openai.Client {
	config := openai.DefaultConfig(viper.GetString(t.credentialKey))
	config.BaseURL = t.baseURL
	return openai.NewClientWithConfig(config)
}

func (t *Together) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	resp, err := t.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.textModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("together API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in together response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (t *Together) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := t.client().CreateImage(ctx, openai.ImageRequest{
		Model:          t.imageModel,
		Prompt:         prompt,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("together image error: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no images returned from together")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("error decoding together image: %w", err)
	}

	return data, nil
}
