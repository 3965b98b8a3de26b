package service

import (
	"context"
	"fmt"

	"assistbot/internal/core/domain"
	"assistbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const DefaultReplyBatchSize = 10

// Platform bundles the collaborators for one monitored channel.
type Platform struct {
	Name    string
	Fetcher port.InboundFetcher
	Sender  port.MessageSender
}

// AutoReplyProcessor runs one reply pass over every monitored platform.
// Items are processed independently: one item's failure never aborts the
// rest of the batch, and a record is appended for every attempted item
// whether the send worked or not.
type AutoReplyProcessor struct {
	invoker   *Invoker
	history   port.History // optional, advisory
	platforms []Platform
	batchSize int
}

func NewAutoReplyProcessor(invoker *Invoker, history port.History, batchSize int, platforms ...Platform) *AutoReplyProcessor {
	if batchSize <= 0 {
		batchSize = DefaultReplyBatchSize
	}

	return &AutoReplyProcessor{
		invoker:   invoker,
		history:   history,
		platforms: platforms,
		batchSize: batchSize,
	}
}

// Run fetches a bounded batch of unread items per platform and replies to
// each. It never returns an error: platform and item failures are logged and
// reflected in the outcomes.
func (p *AutoReplyProcessor) Run(ctx context.Context) []domain.ReplyOutcome {
	var outcomes []domain.ReplyOutcome

	for _, platform := range p.platforms {
		items, err := platform.Fetcher.ListUnread(ctx, p.batchSize)
		if err != nil {
			log.Warn().Err(err).Str("platform", platform.Name).Msg("could not fetch unread messages")
			continue
		}

		log.Info().Str("platform", platform.Name).Int("items", len(items)).Msg("processing unread messages")

		for _, item := range items {
			outcomes = append(outcomes, p.processItem(ctx, platform, item))
		}
	}

	return outcomes
}

func (p *AutoReplyProcessor) processItem(ctx context.Context, platform Platform, item domain.InboundMessage) (outcome domain.ReplyOutcome) {
	l := log.With().
		Str("platform", platform.Name).
		Str("sender", item.Sender).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("auto-reply item panicked")
			outcome = domain.ReplyOutcome{
				Platform: platform.Name,
				Sender:   item.Sender,
				Status:   domain.StatusFailed,
				Error:    fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	reply := p.generateReply(ctx, platform.Name, item.Body)

	status := domain.StatusSent
	var sendErr string
	if err := platform.Sender.Send(ctx, item.ReplyTo, reply); err != nil {
		l.Error().Err(err).Msg("failed to send auto-reply")
		status = domain.StatusFailed
		sendErr = err.Error()
	} else {
		l.Info().Msg("auto-reply sent")
	}

	p.appendRecord(ctx, &domain.ReplyRecord{
		Platform: platform.Name,
		Sender:   item.Sender,
		Original: item.Body,
		Reply:    reply,
		Status:   status,
	})

	return domain.ReplyOutcome{
		Platform: platform.Name,
		Sender:   item.Sender,
		Status:   status,
		Reply:    reply,
		Error:    sendErr,
	}
}

// generateReply builds the reply through the text chain, with canned replies
// as the last resort so inbound messages always get acknowledged.
func (p *AutoReplyProcessor) generateReply(ctx context.Context, platformName, original string) string {
	prompt := fmt.Sprintf(`Generate a helpful and professional auto-reply for this message:

Original message: "%s"
Context: %s

Requirements:
- Keep it brief and friendly
- Acknowledge their message
- Be helpful and professional
- Don't make promises you can't keep
- Sound natural and human-like`, original, platformName)

	reply, _, err := p.invoker.GenerateText(ctx, prompt, 0, nil)
	if err == nil && reply != "" {
		return reply
	}

	log.Warn().Err(err).Msg("reply generation exhausted all providers, using canned reply")

	fallbackReplies := []string{
		"Thank you for your message! I've received it and will get back to you as soon as possible. Have a great day! 😊",
		"Hi there! Thanks for reaching out. I'll review your message and respond shortly. Appreciate your patience! 🙏",
		"Hello! I've received your message and will get back to you soon. Thanks for contacting me! 💌",
	}

	return fallbackReplies[len(original)%len(fallbackReplies)]
}

func (p *AutoReplyProcessor) appendRecord(ctx context.Context, record *domain.ReplyRecord) {
	if p.history == nil {
		return
	}

	if err := p.history.AppendReply(ctx, record); err != nil {
		log.Warn().Err(err).Msg("could not log auto-reply")
	}
}
