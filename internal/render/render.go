// Package render maps chat messages onto display trees. Rendering is a pure
// function of the message and the dispatcher's static configuration.
package render

import (
	"errors"
	"fmt"

	"portfolio-chat/internal/domain"
)

// ErrUnknownPayload is returned for payload variants the dispatcher has no template for.
var ErrUnknownPayload = errors.New("render: unknown payload variant")

// Template names the visual form of a node.
type Template string

const (
	TemplateTyping   Template = "typing"
	TemplateBubble   Template = "bubble"
	TemplateCardGrid Template = "card-grid"
	TemplateChipList Template = "chip-list"
)

type Align string

const (
	AlignStart Align = "start"
	AlignEnd   Align = "end"
)

// Tone distinguishes regular replies from interim notices and failures.
type Tone string

const (
	ToneNormal Tone = "normal"
	ToneNotice Tone = "notice"
	ToneError  Tone = "error"
)

// Node is the display tree for one message.
type Node struct {
	Template Template
	Align    Align
	Tone     Tone
	Sender   domain.Sender

	Body     string
	ImageRef string
	Intro    string
	Cards    []CardNode
	Chips    []string
}

type CardNode struct {
	Category    string
	Title       string
	Description string
	ImageRef    string
	Link        string
}

// Dispatcher holds the configuration templates need beyond the message itself.
type Dispatcher struct {
	presentationImageRef string
}

func NewDispatcher(presentationImageRef string) *Dispatcher {
	return &Dispatcher{presentationImageRef: presentationImageRef}
}

// Render builds the display tree for m.
func (d *Dispatcher) Render(m domain.Message) (Node, error) {
	n := Node{
		Align:  AlignStart,
		Tone:   ToneNormal,
		Sender: m.Sender,
	}
	if m.Sender == domain.SenderUser {
		n.Align = AlignEnd
	}
	switch m.Status {
	case domain.StatusPending:
		if m.Payload == nil {
			n.Template = TemplateTyping
			return n, nil
		}
		n.Tone = ToneNotice
	case domain.StatusFailed:
		n.Tone = ToneError
	}

	switch p := m.Payload.(type) {
	case domain.Text:
		n.Template = TemplateBubble
		n.Body = p.Body
		if p.ShowSupplementaryImage {
			n.ImageRef = d.presentationImageRef
		}
	case domain.CardList:
		n.Template = TemplateCardGrid
		n.Intro = p.Intro
		n.Cards = make([]CardNode, 0, len(p.Items))
		for _, c := range p.Items {
			n.Cards = append(n.Cards, CardNode{
				Category:    c.Category,
				Title:       c.Title,
				Description: c.Description,
				ImageRef:    c.ImageRef,
				Link:        c.Link,
			})
		}
	case domain.SkillList:
		n.Template = TemplateChipList
		n.Chips = append([]string(nil), p.Items...)
	default:
		return Node{}, fmt.Errorf("%w: %T", ErrUnknownPayload, m.Payload)
	}
	return n, nil
}

// RenderAll renders a snapshot in order. Messages that cannot be rendered are
// reported together in the returned error; their slots hold a zero Node.
func (d *Dispatcher) RenderAll(msgs []domain.Message) ([]Node, error) {
	nodes := make([]Node, len(msgs))
	var errs []error
	for i, m := range msgs {
		n, err := d.Render(m)
		if err != nil {
			errs = append(errs, fmt.Errorf("message %d: %w", i, err))
			continue
		}
		nodes[i] = n
	}
	return nodes, errors.Join(errs...)
}
