package history

import (
	"context"
	"testing"
	"time"

	"assistbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestCommandLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateCommand(ctx, &domain.CommandRecord{
		Text:        "post about summer",
		CommandType: "unknown",
		Status:      domain.StatusProcessing,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	err = store.CompleteCommand(ctx, id, domain.StatusCompleted, "done", domain.IntentFacebookPost)
	require.NoError(t, err)

	counts, err := store.CountsSince(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Commands)
}

func TestAppendAndListReplies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []*domain.ReplyRecord{
		{Platform: "email", Sender: "a@example.com", Original: "first", Reply: "re: first", Status: domain.StatusSent},
		{Platform: "whatsapp", Sender: "+123", Original: "second", Reply: "re: second", Status: domain.StatusFailed},
		{Platform: "email", Sender: "b@example.com", Original: "third", Reply: "re: third", Status: domain.StatusSent},
	}

	for _, record := range records {
		require.NoError(t, store.AppendReply(ctx, record))
	}

	recent, err := store.RecentReplies(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// newest first
	assert.Equal(t, "b@example.com", recent[0].Sender)
	assert.Equal(t, "+123", recent[1].Sender)
	assert.Equal(t, domain.StatusFailed, recent[1].Status)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestRecentRepliesEmpty(t *testing.T) {
	store := newTestStore(t)

	recent, err := store.RecentReplies(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestCountsSinceCutoff(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateCommand(ctx, &domain.CommandRecord{
		Text: "query", CommandType: "general_query", Status: domain.StatusCompleted,
	})
	require.NoError(t, err)

	require.NoError(t, store.AppendReply(ctx, &domain.ReplyRecord{
		Platform: "email", Sender: "a@example.com", Original: "hi", Reply: "hello", Status: domain.StatusSent,
	}))

	require.NoError(t, store.RecordPost(ctx, &domain.PostRecord{
		Platform: "facebook", Content: "post body", PostID: "fb-1", Status: domain.StatusPosted,
	}))

	counts, err := store.CountsSince(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityCounts{Commands: 1, Replies: 1, Posts: 1}, counts)

	// a future cutoff excludes everything
	counts, err = store.CountsSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityCounts{}, counts)
}
