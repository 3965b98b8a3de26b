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

type MockFetcher struct {
	items []domain.InboundMessage
	err   error
	limit int
}

func (m *MockFetcher) ListUnread(_ context.Context, limit int) ([]domain.InboundMessage, error) {
	m.limit = limit
	return m.items, m.err
}

type MockSender struct {
	failFor string
	sent    map[string]string
}

func (m *MockSender) Send(_ context.Context, recipient, text string) error {
	if recipient == m.failFor {
		return errors.New("delivery refused")
	}

	if m.sent == nil {
		m.sent = make(map[string]string)
	}
	m.sent[recipient] = text

	return nil
}

func autoReplyInvoker(t *testing.T, prefix, response string) *Invoker {
	t.Helper()

	registry := testRegistry(prefix, "alpha")
	grantCredential(t, registry, "alpha")

	invoker := NewInvoker(registry, time.Second, time.Second)
	invoker.Register(&MockTextProvider{key: "alpha", response: response})

	return invoker
}

func TestRunRepliesToEveryItem(t *testing.T) {
	invoker := autoReplyInvoker(t, "test.autoreply.all", "Thanks, I'll get back to you.")
	history := &MockHistory{}

	fetcher := &MockFetcher{items: []domain.InboundMessage{
		{ID: "1", Sender: "a@example.com", Body: "first", ReplyTo: "1"},
		{ID: "2", Sender: "b@example.com", Body: "second", ReplyTo: "2"},
		{ID: "3", Sender: "c@example.com", Body: "third", ReplyTo: "3"},
	}}
	sender := &MockSender{failFor: "2"}

	processor := NewAutoReplyProcessor(invoker, history, 10,
		Platform{Name: "email", Fetcher: fetcher, Sender: sender})

	outcomes := processor.Run(context.Background())

	require.Len(t, outcomes, 3)
	assert.Equal(t, domain.StatusSent, outcomes[0].Status)
	assert.Equal(t, domain.StatusFailed, outcomes[1].Status)
	assert.Equal(t, domain.StatusSent, outcomes[2].Status)
	assert.Equal(t, "delivery refused", outcomes[1].Error)

	// every attempted item is logged, failed sends included
	require.Len(t, history.replies, 3)
	assert.Equal(t, domain.StatusSent, history.replies[0].Status)
	assert.Equal(t, domain.StatusFailed, history.replies[1].Status)
	assert.Equal(t, "b@example.com", history.replies[1].Sender)

	assert.Len(t, sender.sent, 2)
}

func TestRunPassesBatchSizeToFetcher(t *testing.T) {
	invoker := autoReplyInvoker(t, "test.autoreply.batch", "reply")
	fetcher := &MockFetcher{}

	processor := NewAutoReplyProcessor(invoker, nil, 25,
		Platform{Name: "email", Fetcher: fetcher, Sender: &MockSender{}})

	processor.Run(context.Background())

	assert.Equal(t, 25, fetcher.limit)
}

func TestRunDefaultBatchSize(t *testing.T) {
	invoker := autoReplyInvoker(t, "test.autoreply.defaultbatch", "reply")
	fetcher := &MockFetcher{}

	processor := NewAutoReplyProcessor(invoker, nil, 0,
		Platform{Name: "email", Fetcher: fetcher, Sender: &MockSender{}})

	processor.Run(context.Background())

	assert.Equal(t, DefaultReplyBatchSize, fetcher.limit)
}

func TestRunSkipsPlatformOnFetchError(t *testing.T) {
	invoker := autoReplyInvoker(t, "test.autoreply.fetcherr", "reply")

	broken := &MockFetcher{err: errors.New("imap down")}
	working := &MockFetcher{items: []domain.InboundMessage{
		{ID: "1", Sender: "+123", Body: "hi", ReplyTo: "+123"},
	}}

	processor := NewAutoReplyProcessor(invoker, nil, 10,
		Platform{Name: "email", Fetcher: broken, Sender: &MockSender{}},
		Platform{Name: "whatsapp", Fetcher: working, Sender: &MockSender{}})

	outcomes := processor.Run(context.Background())

	require.Len(t, outcomes, 1)
	assert.Equal(t, "whatsapp", outcomes[0].Platform)
	assert.Equal(t, domain.StatusSent, outcomes[0].Status)
}

func TestGenerateReplyUsesCannedFallback(t *testing.T) {
	registry := testRegistry("test.autoreply.canned", "alpha")

	// no credential granted, the chain is empty
	invoker := NewInvoker(registry, time.Second, time.Second)
	invoker.Register(&MockTextProvider{key: "alpha", response: "never used"})

	fetcher := &MockFetcher{items: []domain.InboundMessage{
		{ID: "1", Sender: "a@example.com", Body: "hello", ReplyTo: "1"},
	}}
	sender := &MockSender{}

	processor := NewAutoReplyProcessor(invoker, nil, 10,
		Platform{Name: "email", Fetcher: fetcher, Sender: sender})

	outcomes := processor.Run(context.Background())

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusSent, outcomes[0].Status)
	assert.NotEmpty(t, outcomes[0].Reply)

	// canned reply selection is deterministic for the same original
	second := processor.Run(context.Background())
	require.Len(t, second, 1)
	assert.Equal(t, outcomes[0].Reply, second[0].Reply)
}

func TestGenerateReplyPromptCarriesContext(t *testing.T) {
	registry := testRegistry("test.autoreply.prompt", "alpha")
	grantCredential(t, registry, "alpha")

	text := &MockTextProvider{key: "alpha", response: "On it."}
	invoker := NewInvoker(registry, time.Second, time.Second)
	invoker.Register(text)

	fetcher := &MockFetcher{items: []domain.InboundMessage{
		{ID: "1", Sender: "+777", Body: "when do you open?", ReplyTo: "+777"},
	}}

	processor := NewAutoReplyProcessor(invoker, nil, 10,
		Platform{Name: "whatsapp", Fetcher: fetcher, Sender: &MockSender{}})

	processor.Run(context.Background())

	assert.Contains(t, text.prompt, `Original message: "when do you open?"`)
	assert.Contains(t, text.prompt, "Context: whatsapp")
}
