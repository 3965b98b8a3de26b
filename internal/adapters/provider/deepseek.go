package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
)

// DeepSeek serves text through the DeepSeek chat API, which is
// OpenAI-compatible, so the openai client with a custom base URL covers it.
type DeepSeek struct {
	credentialKey string
	baseURL       string
	model         string
}

func NewDeepSeek(credentialKey, baseURL, model string) *DeepSeek {
	return &DeepSeek{
		credentialKey: credentialKey,
		baseURL:       baseURL,
		model:         model,
	}
}

func (d *DeepSeek) Key() string {
	return "deepseek"
}

func (d *DeepSeek) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	config := openai.DefaultConfig(viper.GetString(d.credentialKey))
	config.BaseURL = d.baseURL
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful AI assistant."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in deepseek response")
	}

	return resp.Choices[0].Message.Content, nil
}
