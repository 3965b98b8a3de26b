package port

import "context"

// Provider is implemented by every external AI adapter. Key must match the
// registry descriptor the adapter serves.
type Provider interface {
	Key() string
}

// TextCapable generates text from a prompt. maxTokens <= 0 means the
// adapter's default budget.
type TextCapable interface {
	Provider
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ImageCapable generates image bytes from a prompt.
type ImageCapable interface {
	Provider
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// TranslateCapable translates text between languages using a dedicated
// translation model rather than a chat prompt.
type TranslateCapable interface {
	Provider
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
