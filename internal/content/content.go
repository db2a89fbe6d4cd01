// Package content loads the static portfolio configuration: profile, suggested
// prompts and the keyword router's response table.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio-chat/internal/domain"
)

// ErrInvalidContent wraps every validation failure.
var ErrInvalidContent = errors.New("content: invalid document")

// Source yields a content document.
type Source interface {
	Load(ctx context.Context) (domain.Content, error)
}

type document struct {
	Name              string                  `yaml:"name"`
	Bio               string                  `yaml:"bio"`
	Avatar            string                  `yaml:"avatar"`
	PresentationImage string                  `yaml:"presentationImage"`
	SuggestedPrompts  []domain.SuggestionItem `yaml:"suggestedPrompts"`
	Responses         map[string]response     `yaml:"responses"`
}

type response struct {
	Type    string    `yaml:"type"`
	Content yaml.Node `yaml:"content"`
}

// Parse decodes and validates a YAML content document.
func Parse(data []byte) (domain.Content, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Content{}, fmt.Errorf("content: decode yaml: %w", err)
	}

	c := domain.Content{
		Name:                 strings.TrimSpace(doc.Name),
		Bio:                  strings.TrimSpace(doc.Bio),
		AvatarRef:            strings.TrimSpace(doc.Avatar),
		PresentationImageRef: strings.TrimSpace(doc.PresentationImage),
		SuggestedPrompts:     doc.SuggestedPrompts,
		Responses:            make(map[string]domain.Payload, len(doc.Responses)),
	}
	for key, r := range doc.Responses {
		if r.Content.Kind == 0 {
			return domain.Content{}, fmt.Errorf("%w: response %q has no content", ErrInvalidContent, key)
		}
		node := r.Content
		p, err := NewPayload(r.Type, node.Decode)
		if err != nil {
			return domain.Content{}, fmt.Errorf("content: response %q: %w", key, err)
		}
		c.Responses[key] = p
	}
	if err := Validate(c); err != nil {
		return domain.Content{}, err
	}
	return c, nil
}

// NewPayload builds a payload of the given type, using decode to fill the
// type-specific content value (*string, *[]domain.Card or *[]string).
func NewPayload(kind string, decode func(v any) error) (domain.Payload, error) {
	switch domain.PayloadKind(strings.ToLower(strings.TrimSpace(kind))) {
	case domain.KindText:
		var body string
		if err := decode(&body); err != nil {
			return nil, fmt.Errorf("%w: text content: %v", ErrInvalidContent, err)
		}
		return domain.Text{Body: body}, nil
	case domain.KindCardList:
		var cards []domain.Card
		if err := decode(&cards); err != nil {
			return nil, fmt.Errorf("%w: cards content: %v", ErrInvalidContent, err)
		}
		return domain.CardList{Items: cards}, nil
	case domain.KindSkillList:
		var skills []string
		if err := decode(&skills); err != nil {
			return nil, fmt.Errorf("%w: skills content: %v", ErrInvalidContent, err)
		}
		return domain.SkillList{Items: skills}, nil
	default:
		return nil, fmt.Errorf("%w: unknown response type %q", ErrInvalidContent, kind)
	}
}

// Validate checks that c can drive both the suggestion chips and the keyword router.
func Validate(c domain.Content) error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	for i, s := range c.SuggestedPrompts {
		if strings.TrimSpace(s.Label) == "" || strings.TrimSpace(s.Prompt) == "" {
			errs = append(errs, fmt.Errorf("suggestedPrompts[%d]: label and prompt are required", i))
		}
	}
	for _, key := range domain.RequiredResponses {
		if c.Responses[key] == nil {
			errs = append(errs, fmt.Errorf("responses.%s is required", key))
		}
	}
	for key, p := range c.Responses {
		if cards, ok := p.(domain.CardList); ok {
			for i, card := range cards.Items {
				if strings.TrimSpace(card.Title) == "" {
					errs = append(errs, fmt.Errorf("responses.%s[%d]: title is required", key, i))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
	}
	return nil
}
