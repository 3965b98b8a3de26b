package port

import (
	"context"

	"assistbot/internal/core/domain"
)

// MessageSender delivers one outbound message on a platform. recipient is the
// platform-specific handle from InboundMessage.ReplyTo.
type MessageSender interface {
	Send(ctx context.Context, recipient, text string) error
}

// ReplySender answers a chat message in place, threading the reply to the
// triggering message.
type ReplySender interface {
	// SendMessageReply sends a text reply to the given message in the given chat.
	SendMessageReply(ctx context.Context, chatID int64, messageID int, text string) error
	// SendImageFileReply sends an image file as a reply to the given message.
	SendImageFileReply(ctx context.Context, chatID int64, messageID int, file []byte) error
}

// InboundFetcher lists unread inbound items on a monitored channel. Marking
// items read is the platform's responsibility.
type InboundFetcher interface {
	ListUnread(ctx context.Context, limit int) ([]domain.InboundMessage, error)
}

// Poster publishes to a social platform and returns the platform post ID.
type Poster interface {
	PostText(ctx context.Context, message string) (string, error)
	PostPhoto(ctx context.Context, message string, photo []byte) (string, error)
}
