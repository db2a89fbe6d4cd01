package domain

// Payload is the content of a message. The set of variants is closed: Text,
// CardList and SkillList are the only implementations.
type Payload interface {
	payloadKind() PayloadKind
}

// PayloadKind names a payload variant.
type PayloadKind string

const (
	KindText      PayloadKind = "text"
	KindCardList  PayloadKind = "cards"
	KindSkillList PayloadKind = "skills"
)

// KindOf returns the variant name of p, or "" for nil.
func KindOf(p Payload) PayloadKind {
	if p == nil {
		return ""
	}
	return p.payloadKind()
}

// Text is a prose response. ShowSupplementaryImage asks the renderer to show the
// presentation photo below the body.
type Text struct {
	Body                   string
	ShowSupplementaryImage bool
}

// CardList is an ordered grid of project cards with an optional lead-in line.
type CardList struct {
	Intro string
	Items []Card
}

// SkillList is an ordered list of skill chips.
type SkillList struct {
	Items []string
}

func (Text) payloadKind() PayloadKind      { return KindText }
func (CardList) payloadKind() PayloadKind  { return KindCardList }
func (SkillList) payloadKind() PayloadKind { return KindSkillList }

// Card describes one portfolio project.
type Card struct {
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	ImageRef    string `json:"image" yaml:"image"`
	Link        string `json:"link" yaml:"link"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
