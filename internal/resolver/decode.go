package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"portfolio-chat/internal/domain"
)

// PhotoSentinel is embedded by the backend in text replies that should be
// accompanied by the presentation photo.
const PhotoSentinel = "[SHOW_PHOTO]"

var (
	// ErrUnknownPayloadType is returned for reply types other than text and cards.
	ErrUnknownPayloadType = errors.New("resolver: unknown payload type")
	// ErrMalformedPayload is returned when data does not match the declared type.
	ErrMalformedPayload = errors.New("resolver: malformed payload")
)

// wireCard is the backend's project shape.
type wireCard struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Link        string `json:"link"`
}

// Decode converts a reply envelope into a payload.
func Decode(kind string, data json.RawMessage, intro string) (domain.Payload, error) {
	switch domain.PayloadKind(strings.ToLower(strings.TrimSpace(kind))) {
	case domain.KindText:
		var body string
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, fmt.Errorf("%w: text data: %v", ErrMalformedPayload, err)
		}
		return DecodeText(body), nil
	case domain.KindCardList:
		var cards []wireCard
		if err := json.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("%w: cards data: %v", ErrMalformedPayload, err)
		}
		if cards == nil {
			return nil, fmt.Errorf("%w: cards data is null", ErrMalformedPayload)
		}
		items := make([]domain.Card, 0, len(cards))
		for _, c := range cards {
			items = append(items, domain.Card{
				Category:    c.Title,
				Title:       c.Name,
				ImageRef:    c.ImageURL,
				Link:        c.Link,
				Description: c.Description,
			})
		}
		return domain.CardList{Intro: intro, Items: items}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayloadType, kind)
	}
}

// DecodeText strips every photo sentinel from raw and flags the payload when
// one was present.
func DecodeText(raw string) domain.Text {
	if !strings.Contains(raw, PhotoSentinel) {
		return domain.Text{Body: raw}
	}
	return domain.Text{
		Body:                   strings.ReplaceAll(raw, PhotoSentinel, ""),
		ShowSupplementaryImage: true,
	}
}
