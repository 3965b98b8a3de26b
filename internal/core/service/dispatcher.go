package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistbot/internal/core/domain"
	"assistbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Dispatcher orchestrates one command end to end: classify, extract slots,
// drive the provider chain, log, speak, return a structured result. It is an
// absolute error boundary: nothing escapes ProcessCommand as an error or a
// panic, the caller always gets a well-formed Result.
type Dispatcher struct {
	invoker  *Invoker
	writer   *Writer
	registry *Registry
	history  port.History // optional, advisory
	speaker  port.Speaker // optional, fire-and-forget
	poster   port.Poster  // optional, facebook collaborator
	saveFile func(data []byte) (string, error)
}

func NewDispatcher(invoker *Invoker, writer *Writer, registry *Registry,
	history port.History, speaker port.Speaker, poster port.Poster,
	saveFile func(data []byte) (string, error)) *Dispatcher {
	return &Dispatcher{
		invoker:  invoker,
		writer:   writer,
		registry: registry,
		history:  history,
		speaker:  speaker,
		poster:   poster,
		saveFile: saveFile,
	}
}

// ProcessCommand runs the full command pipeline on free-form text.
func (d *Dispatcher) ProcessCommand(ctx context.Context, text string) (result domain.Result) {
	text = domain.Normalize(text)

	l := log.With().Str("command", text).Logger()
	l.Info().Msg("processing command")

	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("command processing panicked")
			result = domain.Result{
				Success:     false,
				Message:     fmt.Sprintf("Sorry, I encountered an error: %v", r),
				CommandType: "error",
			}
		}

		d.speak(result.Message)
	}()

	recordID := d.createRecord(ctx, text)

	intent := domain.Classify(text)
	l.Debug().Str("intent", string(intent)).Msg("command classified")

	switch intent {
	case domain.IntentFacebookPost:
		result = d.facebookPost(ctx, text)
	case domain.IntentCreateImage:
		result = d.createImage(ctx, text)
	case domain.IntentTextGeneration:
		result = d.textGeneration(ctx, text)
	case domain.IntentSystemStatus:
		result = d.systemStatus(ctx)
	case domain.IntentAutoReplyStatus:
		result = d.autoReplyStatus(ctx)
	default:
		result = d.generalQuery(ctx, text)
	}

	d.completeRecord(ctx, recordID, result)

	return result
}

func (d *Dispatcher) facebookPost(ctx context.Context, text string) domain.Result {
	topic, ok := domain.ExtractTopic(text, domain.IntentFacebookPost)
	if !ok {
		return domain.Result{
			Success:     false,
			Message:     "I couldn't understand what you want to post about. Please specify a topic.",
			CommandType: domain.IntentFacebookPost,
		}
	}

	includeImage := containsAny(text, "image", "picture", "photo")

	content := d.facebookContent(ctx, topic)

	var imagePath string
	var photo []byte
	if includeImage {
		data, _, err := d.invoker.GenerateImage(ctx, "Create an image for Facebook post about: "+topic, nil)
		if err != nil {
			log.Warn().Err(err).Msg("post image generation failed, posting text only")
		} else {
			photo = data
			if d.saveFile != nil {
				if path, err := d.saveFile(data); err == nil {
					imagePath = path
				}
			}
		}
	}

	if d.poster == nil {
		return domain.Result{
			Success:     false,
			Message:     "Failed to create Facebook post: Facebook is not configured",
			CommandType: domain.IntentFacebookPost,
		}
	}

	var postID string
	var err error
	if photo != nil {
		postID, err = d.poster.PostPhoto(ctx, content, photo)
	} else {
		postID, err = d.poster.PostText(ctx, content)
	}
	if err != nil {
		return domain.Result{
			Success:     false,
			Message:     fmt.Sprintf("Failed to create Facebook post: %s", err),
			CommandType: domain.IntentFacebookPost,
		}
	}

	d.recordPost(ctx, &domain.PostRecord{
		Platform:  "facebook",
		Content:   content,
		ImagePath: imagePath,
		PostID:    postID,
		Status:    domain.StatusPosted,
	})

	message := "Successfully created Facebook post about " + topic
	if photo != nil {
		message += " with an AI-generated image"
	}

	return domain.Result{
		Success:     true,
		Message:     message,
		CommandType: domain.IntentFacebookPost,
		Data: map[string]any{
			"post_id":    postID,
			"content":    content,
			"image_path": imagePath,
		},
	}
}

// facebookContent generates post text through the chain, with canned posts
// as the last resort so the user still gets a usable post on total provider
// exhaustion.
func (d *Dispatcher) facebookContent(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf(`Create an engaging Facebook post about: %s

Requirements:
- Keep it under 280 characters
- Make it engaging and social media friendly
- Include relevant emojis
- Add 3-5 relevant hashtags at the end
- Make it sound natural and personal`, topic)

	content, _, err := d.invoker.GenerateText(ctx, prompt, 0, nil)
	if err == nil && content != "" {
		return content
	}

	log.Warn().Err(err).Msg("post content generation exhausted all providers, using canned post")

	fallbackPosts := []string{
		"🌟 Excited to share something about %s! What are your thoughts? Share in the comments below! 💬✨ #thoughts #share #community",
		"💡 %s is such an interesting topic! I'd love to hear your perspectives. Drop a comment! 👇 #discussion #ideas #community",
		"🚀 Just thinking about %s... Amazing how much there is to explore! What fascinates you most? 🤔💭 #explore #learn #curious",
	}

	return fmt.Sprintf(fallbackPosts[len(topic)%len(fallbackPosts)], topic)
}

func (d *Dispatcher) createImage(ctx context.Context, text string) domain.Result {
	description, ok := domain.ExtractTopic(text, domain.IntentCreateImage)
	if !ok {
		return domain.Result{
			Success:     false,
			Message:     "Please describe what image you want me to generate.",
			CommandType: domain.IntentCreateImage,
		}
	}

	data, provider, err := d.invoker.GenerateImage(ctx, description, nil)
	if err != nil {
		return domain.Result{
			Success:     false,
			Message:     fmt.Sprintf("Failed to generate image: %s", err),
			CommandType: domain.IntentCreateImage,
		}
	}

	var imagePath string
	if d.saveFile != nil {
		imagePath, err = d.saveFile(data)
		if err != nil {
			return domain.Result{
				Success:     false,
				Message:     fmt.Sprintf("Failed to save generated image: %s", err),
				CommandType: domain.IntentCreateImage,
			}
		}
	}

	return domain.Result{
		Success:     true,
		Message:     "Successfully generated image: " + description,
		CommandType: domain.IntentCreateImage,
		Data: map[string]any{
			"image_path":  imagePath,
			"description": description,
			"provider":    provider,
		},
	}
}

// Urdu trigger words, including the script itself.
var urduKeywords = []string{"urdu", "اردو", "لکھو", "بنائو"}

func (d *Dispatcher) textGeneration(ctx context.Context, text string) domain.Result {
	contentType := domain.InferContentType(text)

	topic, ok := domain.ExtractTextTopic(text, contentType)
	if !ok {
		return domain.Result{
			Success:     false,
			Message:     fmt.Sprintf("Please tell me what %s you want me to write about.", contentType.Label()),
			CommandType: domain.IntentTextGeneration,
		}
	}

	language := "english"
	if containsAny(text, urduKeywords...) {
		language = "urdu"
	}

	generated := d.writer.GenerateContent(ctx, ContentRequest{
		ContentType: contentType,
		Topic:       topic,
		Tone:        "friendly",
		Language:    language,
	})

	if !generated.Success {
		return domain.Result{
			Success:     false,
			Message:     fmt.Sprintf("I couldn't generate the %s: %s", contentType.Label(), generated.Error),
			CommandType: domain.IntentTextGeneration,
		}
	}

	message := fmt.Sprintf("I've written a %s about %s. ", contentType.Label(), topic)
	if len(generated.Hashtags) > 0 {
		preview := generated.Hashtags
		if len(preview) > 3 {
			preview = preview[:3]
		}
		message += "I've also included relevant hashtags: " + strings.Join(preview, " ")
	}

	return domain.Result{
		Success:     true,
		Message:     message,
		CommandType: domain.IntentTextGeneration,
		Data: map[string]any{
			"content":    generated.Content,
			"hashtags":   generated.Hashtags,
			"word_count": generated.WordCount,
			"provider":   generated.Provider,
		},
	}
}

func (d *Dispatcher) generalQuery(ctx context.Context, text string) domain.Result {
	response, _, err := d.invoker.GenerateText(ctx, text, 0, nil)
	if err != nil {
		return domain.Result{
			Success:     false,
			Message:     fmt.Sprintf("Sorry, I couldn't process your request: %s", err),
			CommandType: domain.IntentGeneralQuery,
		}
	}

	return domain.Result{
		Success:     true,
		Message:     response,
		CommandType: domain.IntentGeneralQuery,
	}
}

func (d *Dispatcher) systemStatus(ctx context.Context) domain.Result {
	counts := domain.ActivityCounts{}

	if d.history != nil {
		since := midnight(time.Now().UTC())
		got, err := d.history.CountsSince(ctx, since)
		if err != nil {
			log.Warn().Err(err).Msg("could not get activity counts")
		} else {
			counts = got
		}
	}

	message := fmt.Sprintf(
		"System is running well. Today I've processed %d commands, sent %d auto-replies, and created %d social media posts. Voice system is working perfectly!",
		counts.Commands, counts.Replies, counts.Posts)

	return domain.Result{
		Success:     true,
		Message:     message,
		CommandType: domain.IntentSystemStatus,
		Data: map[string]any{
			"commands_today": counts.Commands,
			"replies_today":  counts.Replies,
			"posts_today":    counts.Posts,
		},
	}
}

func (d *Dispatcher) autoReplyStatus(ctx context.Context) domain.Result {
	var recent []domain.ReplyRecord

	if d.history != nil {
		got, err := d.history.RecentReplies(ctx, 5)
		if err != nil {
			log.Warn().Err(err).Msg("could not get recent auto-replies")
		} else {
			recent = got
		}
	}

	var message string
	if len(recent) > 0 {
		latest := recent[0]
		message = fmt.Sprintf("Auto-reply system is active. I've sent %d recent replies. Latest reply was to %s from %s...",
			len(recent), latest.Platform, truncate(latest.Sender, 20))
	} else {
		message = "Auto-reply system is active and monitoring emails and WhatsApp messages. No recent replies have been sent."
	}

	data := make([]map[string]any, 0, len(recent))
	for _, r := range recent {
		data = append(data, map[string]any{
			"platform":   r.Platform,
			"sender":     r.Sender,
			"created_at": r.CreatedAt.Format(time.RFC3339),
		})
	}

	return domain.Result{
		Success:     true,
		Message:     message,
		CommandType: domain.IntentAutoReplyStatus,
		Data:        map[string]any{"recent_replies": data},
	}
}

func (d *Dispatcher) createRecord(ctx context.Context, text string) int64 {
	if d.history == nil {
		return 0
	}

	id, err := d.history.CreateCommand(ctx, &domain.CommandRecord{
		Text:        text,
		CommandType: "unknown",
		Status:      domain.StatusProcessing,
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not log command to history")
		return 0
	}

	return id
}

func (d *Dispatcher) completeRecord(ctx context.Context, id int64, result domain.Result) {
	if d.history == nil || id == 0 {
		return
	}

	status := domain.StatusCompleted
	if !result.Success {
		status = domain.StatusFailed
	}

	if err := d.history.CompleteCommand(ctx, id, status, result.Message, result.CommandType); err != nil {
		log.Warn().Err(err).Msg("could not update command history")
	}
}

func (d *Dispatcher) recordPost(ctx context.Context, record *domain.PostRecord) {
	if d.history == nil {
		return
	}

	if err := d.history.RecordPost(ctx, record); err != nil {
		log.Warn().Err(err).Msg("could not log social media post")
	}
}

// speak hands the result message to the speech collaborator. The speaker
// detaches internally; this never blocks the command path.
func (d *Dispatcher) speak(message string) {
	if d.speaker == nil || message == "" {
		return
	}

	d.speaker.Speak(message, d.registry.Language())
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// truncate shortens by runes, sender names are often Urdu or Arabic script.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
