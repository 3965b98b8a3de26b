package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// ContentRequest describes one content generation job.
type ContentRequest struct {
	ContentType        domain.ContentType
	Topic              string
	Tone               string
	Language           string
	CustomInstructions string
}

// ContentResult is the structured outcome of content generation. Error is
// set instead of Content when Success is false.
type ContentResult struct {
	Success     bool
	Content     string
	Hashtags    []string
	WordCount   int
	Provider    string
	ContentType domain.ContentType
	GeneratedAt time.Time
	Error       string
}

// Writer turns a content request into finished text via the fallback chain:
// template lookup, prompt build, generation, hashtag post-processing.
type Writer struct {
	invoker *Invoker
}

func NewWriter(invoker *Invoker) *Writer {
	return &Writer{invoker: invoker}
}

var toneInstructions = map[string]string{
	"friendly":     "Use a warm, approachable tone that feels like talking to a friend.",
	"professional": "Maintain a polished, business-appropriate tone.",
	"casual":       "Write in a relaxed, conversational style.",
	"formal":       "Use proper, structured language appropriate for official contexts.",
	"enthusiastic": "Write with energy and excitement about the topic.",
	"informative":  "Focus on providing clear, educational information.",
}

func (w *Writer) GenerateContent(ctx context.Context, req ContentRequest) ContentResult {
	template, ok := domain.ContentTemplates[req.ContentType]
	if !ok {
		return ContentResult{
			Success:     false,
			ContentType: req.ContentType,
			Error:       fmt.Sprintf("unsupported content type: %s", req.ContentType),
		}
	}

	prompt := buildContentPrompt(req, template)

	content, provider, err := w.invoker.GenerateText(ctx, prompt, template.MaxLength/3, nil)
	if err != nil {
		log.Warn().Err(err).Str("contentType", string(req.ContentType)).Msg("content generation exhausted all providers")
		return ContentResult{
			Success:     false,
			ContentType: req.ContentType,
			Error:       "All AI providers failed or are unavailable",
		}
	}

	text, hashtags := postProcessContent(content, req.Topic, req.ContentType, template.IncludeHashtags)

	return ContentResult{
		Success:     true,
		Content:     text,
		Hashtags:    hashtags,
		WordCount:   len(strings.Fields(text)),
		Provider:    provider,
		ContentType: req.ContentType,
		GeneratedAt: time.Now().UTC(),
	}
}

func buildContentPrompt(req ContentRequest, template domain.Template) string {
	tone, ok := toneInstructions[req.Tone]
	if !ok {
		tone = req.Tone
	}

	language := req.Language
	if language == "" {
		language = "english"
	}
	languageInstruction := fmt.Sprintf("Write entirely in %s.", language)
	if !strings.EqualFold(language, "english") {
		languageInstruction += " Ensure natural, native-like expression in this language."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", template.System)
	fmt.Fprintf(&b, "CONTENT TYPE: %s\n", titleCase(req.ContentType.Label()))
	fmt.Fprintf(&b, "TOPIC: %s\n", req.Topic)
	fmt.Fprintf(&b, "TONE: %s\n", tone)
	fmt.Fprintf(&b, "LANGUAGE: %s\n", languageInstruction)
	fmt.Fprintf(&b, "MAX LENGTH: Approximately %d characters\n", template.MaxLength)

	if req.CustomInstructions != "" {
		fmt.Fprintf(&b, "\n%s\n", req.CustomInstructions)
	}

	b.WriteString("\nREQUIREMENTS:\n")
	b.WriteString("1. Write naturally like a human, not like AI\n")
	b.WriteString("2. Make it engaging and valuable to readers\n")
	b.WriteString("3. Include relevant details and context\n")
	b.WriteString("4. Ensure proper grammar and flow\n")
	b.WriteString("5. Make it feel authentic and personal\n")

	if template.IncludeHashtags {
		b.WriteString("6. Include 3-5 relevant hashtags naturally integrated or at the end\n")
	}

	fmt.Fprintf(&b, "\nNow write compelling %s content about: %s", req.ContentType.Label(), req.Topic)

	return b.String()
}

func postProcessContent(content, topic string, contentType domain.ContentType, includeHashtags bool) (string, []string) {
	text := strings.TrimSpace(content)

	if !includeHashtags {
		return text, nil
	}

	hashtags := domain.FindHashtags(text)
	if len(hashtags) == 0 {
		return text, domain.SuggestHashtags(topic, contentType)
	}

	// Hashtags are reported separately, so strip them from the body.
	for _, tag := range hashtags {
		text = strings.ReplaceAll(text, tag, "")
	}

	return strings.TrimSpace(strings.Join(strings.Fields(text), " ")), hashtags
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}
