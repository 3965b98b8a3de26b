package service

import (
	"testing"

	"assistbot/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProvidersTable(t *testing.T) {
	providers := DefaultProviders()

	require.Len(t, providers, 5)

	for key, p := range providers {
		assert.Equal(t, key, p.Key)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.CredentialKey)
		assert.NotEmpty(t, p.Models["text"])
	}

	assert.True(t, providers["huggingface"].Has(domain.CapabilityTranslation))
	assert.False(t, providers["deepseek"].Has(domain.CapabilityImage))
}

func TestAvailableRequiresCredential(t *testing.T) {
	registry := NewRegistry(map[string]domain.Provider{
		"alpha": {
			Key:           "alpha",
			CredentialKey: "test.registry.alpha.api_key",
			Capabilities:  []domain.Capability{domain.CapabilityText},
		},
	})

	assert.False(t, registry.Available("alpha", domain.CapabilityText))

	viper.Set("test.registry.alpha.api_key", "secret")

	assert.True(t, registry.Available("alpha", domain.CapabilityText))
	assert.False(t, registry.Available("alpha", domain.CapabilityImage))
	assert.False(t, registry.Available("unknown", domain.CapabilityText))
}

func TestSetLanguageMapsCodes(t *testing.T) {
	type TestCase struct {
		description string
		code        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "urdu code",
			code:        "ur",
			want:        "urdu",
		},
		{
			description: "pashto code",
			code:        "ps",
			want:        "pashto",
		},
		{
			description: "punjabi code maps to pashto",
			code:        "pa",
			want:        "pashto",
		},
		{
			description: "unknown code passes through",
			code:        "french",
			want:        "french",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			registry := NewRegistry(nil)
			registry.SetLanguage(tc.code)

			assert.Equal(t, tc.want, registry.Language())
		})
	}
}

func TestLanguagePrompt(t *testing.T) {
	registry := NewRegistry(nil)

	assert.Equal(t, "hello", registry.LanguagePrompt("hello"))

	registry.SetLanguage("ur")
	assert.Contains(t, registry.LanguagePrompt("hello"), "Please respond in Urdu")

	registry.SetLanguage("french")
	assert.Contains(t, registry.LanguagePrompt("hello"), "Please respond in french language.")
}

func TestStatusReportsCredentialPresence(t *testing.T) {
	registry := NewRegistry(map[string]domain.Provider{
		"alpha": {
			Key:           "alpha",
			Name:          "Alpha",
			CredentialKey: "test.status.alpha.api_key",
		},
		"beta": {
			Key:           "beta",
			Name:          "Beta",
			CredentialKey: "test.status.beta.api_key",
		},
	})

	viper.Set("test.status.alpha.api_key", "secret")

	status := registry.Status()

	require.Len(t, status, 2)
	assert.True(t, status["alpha"].HasAPIKey)
	assert.False(t, status["beta"].HasAPIKey)
	assert.Equal(t, "Alpha", status["alpha"].Name)
}
