package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"assistbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWriter(t *testing.T, prefix string, provider *MockTextProvider) *Writer {
	t.Helper()

	registry := testRegistry(prefix, provider.key)
	grantCredential(t, registry, provider.key)

	invoker := NewInvoker(registry, time.Second, time.Second)
	invoker.Register(provider)

	return NewWriter(invoker)
}

func TestGenerateContentExtractsHashtags(t *testing.T) {
	provider := &MockTextProvider{key: "alpha",
		response: "Nothing beats a morning brew! #coffee #morning"}
	writer := testWriter(t, "test.writer.extract", provider)

	result := writer.GenerateContent(context.Background(), ContentRequest{
		ContentType: domain.ContentSocialPost,
		Topic:       "coffee",
		Tone:        "friendly",
	})

	require.True(t, result.Success)
	assert.Equal(t, "Nothing beats a morning brew!", result.Content)
	assert.Equal(t, []string{"#coffee", "#morning"}, result.Hashtags)
	assert.Equal(t, 5, result.WordCount)
	assert.Equal(t, "alpha", result.Provider)
	assert.Equal(t, domain.ContentSocialPost, result.ContentType)
}

func TestGenerateContentSuggestsHashtagsWhenMissing(t *testing.T) {
	provider := &MockTextProvider{key: "alpha", response: "A post without any tags."}
	writer := testWriter(t, "test.writer.suggest", provider)

	result := writer.GenerateContent(context.Background(), ContentRequest{
		ContentType: domain.ContentSocialPost,
		Topic:       "coffee",
		Tone:        "friendly",
	})

	require.True(t, result.Success)
	assert.Equal(t, "A post without any tags.", result.Content)
	assert.Equal(t, []string{"#coffee"}, result.Hashtags)
}

func TestGenerateContentNoHashtagsForEmailReply(t *testing.T) {
	provider := &MockTextProvider{key: "alpha", response: "Thanks for reaching out."}
	writer := testWriter(t, "test.writer.email", provider)

	result := writer.GenerateContent(context.Background(), ContentRequest{
		ContentType: domain.ContentEmailReply,
		Topic:       "shipment delay",
		Tone:        "professional",
	})

	require.True(t, result.Success)
	assert.Empty(t, result.Hashtags)
}

func TestGenerateContentPromptCarriesTemplate(t *testing.T) {
	provider := &MockTextProvider{key: "alpha", response: "content"}
	writer := testWriter(t, "test.writer.prompt", provider)

	writer.GenerateContent(context.Background(), ContentRequest{
		ContentType: domain.ContentBlogArticle,
		Topic:       "remote work",
		Tone:        "professional",
		Language:    "urdu",
	})

	assert.Contains(t, provider.prompt, "You are a professional blog writer.")
	assert.Contains(t, provider.prompt, "CONTENT TYPE: Blog Article")
	assert.Contains(t, provider.prompt, "TOPIC: remote work")
	assert.Contains(t, provider.prompt, "Maintain a polished, business-appropriate tone.")
	assert.Contains(t, provider.prompt, "Write entirely in urdu.")
	assert.Contains(t, provider.prompt, "MAX LENGTH: Approximately 2000 characters")
}

func TestGenerateContentUnsupportedType(t *testing.T) {
	provider := &MockTextProvider{key: "alpha", response: "content"}
	writer := testWriter(t, "test.writer.unsupported", provider)

	result := writer.GenerateContent(context.Background(), ContentRequest{
		ContentType: domain.ContentType("haiku"),
		Topic:       "autumn",
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported content type")
	assert.Equal(t, 0, provider.calls)
}

func TestGenerateContentAllProvidersFailed(t *testing.T) {
	provider := &MockTextProvider{key: "alpha", err: errors.New("upstream down")}
	writer := testWriter(t, "test.writer.failed", provider)

	result := writer.GenerateContent(context.Background(), ContentRequest{
		ContentType: domain.ContentSocialPost,
		Topic:       "coffee",
	})

	require.False(t, result.Success)
	assert.Equal(t, "All AI providers failed or are unavailable", result.Error)
}

func TestGenerateContentDeterministicForSameInput(t *testing.T) {
	provider := &MockTextProvider{key: "alpha", response: "Same post. #tag"}
	writer := testWriter(t, "test.writer.deterministic", provider)

	req := ContentRequest{
		ContentType: domain.ContentSocialPost,
		Topic:       "coffee",
		Tone:        "friendly",
	}

	first := writer.GenerateContent(context.Background(), req)
	second := writer.GenerateContent(context.Background(), req)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Hashtags, second.Hashtags)
	assert.Equal(t, first.WordCount, second.WordCount)
}
