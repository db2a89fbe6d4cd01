package domain

// Sender identifies who authored a chat turn.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Status tracks the resolution state of a message. Pending messages may carry an
// interim payload (the warm-up notice) or none at all (typing indicator).
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusFailed   Status = "failed"
)

// Handle identifies a message inside a store for the lifetime of a session.
type Handle string

// Message is a single chat turn as displayed to the user. Messages are values:
// the store swaps whole messages, it never mutates fields in place.
type Message struct {
	Handle  Handle
	Sender  Sender
	Status  Status
	Payload Payload
}

// Terminal reports whether the message can no longer be replaced.
func (m Message) Terminal() bool {
	return m.Status == StatusResolved || m.Status == StatusFailed
}

// ResolutionRequest drives a single resolver attempt. It is never stored.
type ResolutionRequest struct {
	RawText string
	IsRetry bool
}

// SuggestionItem is a quick-start prompt offered before and between turns.
type SuggestionItem struct {
	Label   string `json:"label" yaml:"label"`
	IconRef string `json:"icon" yaml:"icon"`
	Prompt  string `json:"prompt" yaml:"prompt"`
}
