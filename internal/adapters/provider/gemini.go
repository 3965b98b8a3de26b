package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// Gemini serves text and images through the Gemini Developer API. Only the
// preview image model supports image generation; it requires both response
// modalities to be requested.
type Gemini struct {
	credentialKey string
	textModel     string
	imageModel    string
}

func NewGemini(credentialKey, textModel, imageModel string) *Gemini {
	return &Gemini{
		credentialKey: credentialKey,
		textModel:     textModel,
		imageModel:    imageModel,
	}
}

func (g *Gemini) Key() string {
	return "gemini"
}

func (g *Gemini) client(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  viper.GetString(g.credentialKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return client, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string, _ int) (string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty gemini response")
	}

	return text, nil
}

func (g *Gemini) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	enhanced := fmt.Sprintf(`Create a high-quality, visually appealing image: %s

Style requirements:
- Professional and polished look
- Good composition and lighting
- Vibrant but not oversaturated colors
- Clear and detailed`, prompt)

	resp, err := client.Models.GenerateContent(ctx, g.imageModel, genai.Text(enhanced), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini image error: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, errors.New("no image data in gemini response")
}
