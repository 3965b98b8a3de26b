package port

import (
	"context"
	"time"

	"assistbot/internal/core/domain"
)

// History is the append-only activity log. It is advisory: every caller
// treats failures as log-and-continue, never as a reason to fail a command.
type History interface {
	// CreateCommand stores a new command invocation and returns its ID.
	CreateCommand(ctx context.Context, record *domain.CommandRecord) (int64, error)
	// CompleteCommand finalizes a command invocation with its outcome.
	CompleteCommand(ctx context.Context, id int64, status string, result string, commandType domain.Intent) error
	// AppendReply stores one auto-reply record. Records are write-once.
	AppendReply(ctx context.Context, record *domain.ReplyRecord) error
	// RecordPost stores one social media post record.
	RecordPost(ctx context.Context, record *domain.PostRecord) error
	// CountsSince reports activity counts created at or after the given time.
	CountsSince(ctx context.Context, since time.Time) (domain.ActivityCounts, error)
	// RecentReplies returns the newest auto-reply records, newest first.
	RecentReplies(ctx context.Context, limit int) ([]domain.ReplyRecord, error)
}
