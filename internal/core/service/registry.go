package service

import (
	"fmt"
	"sync"

	"assistbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultProviders is the static descriptor table for every external AI
// service the assistant knows about. Model identifiers are part of the
// contract with each provider's API.
func DefaultProviders() map[string]domain.Provider {
	return map[string]domain.Provider{
		"openrouter": {
			Key:           "openrouter",
			Name:          "OpenRouter",
			BaseURL:       "https://openrouter.ai/api/v1",
			CredentialKey: "providers.openrouter.api_key",
			Models: map[string]string{
				"text":      "deepseek/deepseek-r1-distill-llama-70b:free",
				"fast_text": "microsoft/phi-3-mini-128k-instruct:free",
				"image":     "stability-ai/stable-diffusion-3-medium:free",
				"code":      "deepseek/deepseek-coder:free",
			},
			Capabilities: []domain.Capability{
				domain.CapabilityText, domain.CapabilityCode, domain.CapabilityImage,
			},
		},
		"deepseek": {
			Key:           "deepseek",
			Name:          "DeepSeek",
			BaseURL:       "https://api.deepseek.com/v1",
			CredentialKey: "providers.deepseek.api_key",
			Models: map[string]string{
				"text":      "deepseek-chat",
				"reasoning": "deepseek-reasoner",
				"code":      "deepseek-coder",
			},
			Capabilities: []domain.Capability{
				domain.CapabilityText, domain.CapabilityCode,
			},
		},
		"huggingface": {
			Key:           "huggingface",
			Name:          "Hugging Face",
			BaseURL:       "https://api-inference.huggingface.co",
			CredentialKey: "providers.huggingface.api_key",
			Models: map[string]string{
				"text":        "microsoft/DialoGPT-large",
				"image":       "runwayml/stable-diffusion-v1-5",
				"image_xl":    "stabilityai/stable-diffusion-xl-base-1.0",
				"flux":        "black-forest-labs/FLUX.1-dev",
				"translation": "facebook/mbart-large-50-many-to-many-mmt",
			},
			Capabilities: []domain.Capability{
				domain.CapabilityText, domain.CapabilityImage, domain.CapabilityTranslation,
			},
		},
		"gemini": {
			Key:           "gemini",
			Name:          "Google Gemini",
			BaseURL:       "https://generativelanguage.googleapis.com/v1beta",
			CredentialKey: "providers.gemini.api_key",
			Models: map[string]string{
				"text":   "gemini-2.5-flash",
				"image":  "gemini-2.0-flash-preview-image-generation",
				"vision": "gemini-2.5-pro",
			},
			Capabilities: []domain.Capability{
				domain.CapabilityText, domain.CapabilityImage, domain.CapabilityVision,
			},
		},
		"together": {
			Key:           "together",
			Name:          "Together AI",
			BaseURL:       "https://api.together.xyz/v1",
			CredentialKey: "providers.together.api_key",
			Models: map[string]string{
				"text":  "mistralai/Mixtral-8x7B-Instruct-v0.1",
				"image": "stabilityai/stable-diffusion-xl-base-1.0",
				"code":  "codellama/CodeLlama-34b-Instruct-hf",
			},
			Capabilities: []domain.Capability{
				domain.CapabilityText, domain.CapabilityCode, domain.CapabilityImage,
			},
		},
	}
}

// Preference orders per capability. Text favors the strongest free chat
// models, images favor the diffusion hosts.
var (
	DefaultTextOrder        = []string{"openrouter", "deepseek", "gemini", "huggingface"}
	DefaultImageOrder       = []string{"huggingface", "openrouter", "together", "gemini"}
	DefaultTranslationOrder = []string{"huggingface"}
)

// Registry holds the provider descriptor table and the active response
// language. It replaces per-provider global singletons: construct one at
// startup and inject it where needed.
type Registry struct {
	providers map[string]domain.Provider

	mu       sync.RWMutex
	language string
}

func NewRegistry(providers map[string]domain.Provider) *Registry {
	return &Registry{
		providers: providers,
		language:  "english",
	}
}

func (r *Registry) Get(key string) (domain.Provider, bool) {
	p, ok := r.providers[key]
	return p, ok
}

// Available reports whether a provider can serve a capability right now.
// The credential is read through viper on every call, so key changes from
// the settings path take effect without a restart.
func (r *Registry) Available(key string, capability domain.Capability) bool {
	p, ok := r.providers[key]
	if !ok {
		return false
	}

	if !p.Has(capability) {
		return false
	}

	return viper.GetString(p.CredentialKey) != ""
}

// Credential returns the provider's current API key. Callers read it once at
// call start; there is no mid-call hot swap.
func (r *Registry) Credential(key string) string {
	p, ok := r.providers[key]
	if !ok {
		return ""
	}

	return viper.GetString(p.CredentialKey)
}

var languageNames = map[string]string{
	"ur": "urdu",
	"ps": "pashto",
	"pa": "pashto",
	"en": "english",
	"hi": "hindi",
	"ar": "arabic",
}

// SetLanguage sets the primary response language from a language code.
func (r *Registry) SetLanguage(code string) {
	name, ok := languageNames[code]
	if !ok {
		name = code
	}

	r.mu.Lock()
	r.language = name
	r.mu.Unlock()

	log.Info().Str("language", name).Msg("response language set")
}

func (r *Registry) Language() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.language
}

// LanguagePrompt appends the response-language instruction to a prompt.
// English prompts pass through untouched.
func (r *Registry) LanguagePrompt(base string) string {
	switch r.Language() {
	case "english":
		return base
	case "urdu":
		return base + "\n\nPlease respond in Urdu (اردو). Use clear and simple Urdu language."
	case "pashto":
		return base + "\n\nPlease respond in Pashto (پښتو). Use clear and simple Pashto language."
	default:
		return fmt.Sprintf("%s\n\nPlease respond in %s language.", base, r.Language())
	}
}

// ProviderStatus is the externally visible state of one provider.
type ProviderStatus struct {
	Name         string
	HasAPIKey    bool
	Capabilities []domain.Capability
	Models       map[string]string
}

// Status reports all providers and their current credential presence.
func (r *Registry) Status() map[string]ProviderStatus {
	status := make(map[string]ProviderStatus, len(r.providers))

	for key, p := range r.providers {
		status[key] = ProviderStatus{
			Name:         p.Name,
			HasAPIKey:    viper.GetString(p.CredentialKey) != "",
			Capabilities: p.Capabilities,
			Models:       p.Models,
		}
	}

	return status
}
