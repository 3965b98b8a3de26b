package domain

import "time"

// Intent is the classified purpose of a user command.
type Intent string

const (
	IntentFacebookPost    Intent = "facebook_post"
	IntentCreateImage     Intent = "create_image"
	IntentTextGeneration  Intent = "text_generation"
	IntentGeneralQuery    Intent = "general_query"
	IntentSystemStatus    Intent = "system_status"
	IntentAutoReplyStatus Intent = "auto_reply_status"
)

// Capability is an abstract generation function implementable by multiple providers.
type Capability string

const (
	CapabilityText        Capability = "text"
	CapabilityImage       Capability = "image"
	CapabilityTranslation Capability = "translation"
	CapabilityCode        Capability = "code"
	CapabilityVision      Capability = "vision"
)

// Provider describes an external AI service: which capabilities it offers,
// which models serve them, and where its credential is configured. The
// credential itself is read at call time, never stored here.
type Provider struct {
	Key           string
	Name          string
	BaseURL       string
	CredentialKey string
	Models        map[string]string
	Capabilities  []Capability
}

func (p Provider) Has(c Capability) bool {
	for _, got := range p.Capabilities {
		if got == c {
			return true
		}
	}
	return false
}

// Model returns the model identifier for a model type, falling back to the
// provider's plain "text" model when the requested type is not configured.
func (p Provider) Model(modelType string) string {
	if m, ok := p.Models[modelType]; ok {
		return m
	}
	return p.Models["text"]
}

// Result is the structured outcome of one dispatched command. The voice and
// chat collaborators always receive one of these, never an error.
type Result struct {
	Success     bool
	Message     string
	CommandType Intent
	Data        map[string]any
}

type CommandRecord struct {
	ID          int64
	Text        string
	CommandType Intent
	Status      string
	Result      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusSent       = "sent"
	StatusPosted     = "posted"
)

type ReplyRecord struct {
	Platform  string
	Sender    string
	Original  string
	Reply     string
	Status    string
	CreatedAt time.Time
}

type PostRecord struct {
	Platform  string
	Content   string
	ImagePath string
	PostID    string
	Status    string
	CreatedAt time.Time
}

// InboundMessage is one unread item from a monitored channel. ReplyTo is the
// platform-specific handle a reply must be addressed to (mail message ID,
// phone number).
type InboundMessage struct {
	ID      string
	Sender  string
	Subject string
	Body    string
	ReplyTo string
}

// ReplyOutcome reports one auto-reply attempt back to the caller.
type ReplyOutcome struct {
	Platform string
	Sender   string
	Status   string
	Reply    string
	Error    string
}

type ActivityCounts struct {
	Commands int
	Replies  int
	Posts    int
}
