// Package suggest controls the quick-start prompts shown around the chat history.
package suggest

import (
	"fmt"
	"sync"

	"portfolio-chat/internal/domain"
)

// Counter reports how many messages the conversation holds.
type Counter interface {
	Len() int
}

// Controller tracks whether the suggestion chips are visible. The item list is
// fixed at construction.
type Controller struct {
	items   []domain.SuggestionItem
	counter Counter

	mu      sync.Mutex
	visible bool
}

func New(items []domain.SuggestionItem, counter Counter) *Controller {
	return &Controller{
		items:   append([]domain.SuggestionItem(nil), items...),
		counter: counter,
		visible: true,
	}
}

// Items returns a copy of the configured suggestions.
func (c *Controller) Items() []domain.SuggestionItem {
	return append([]domain.SuggestionItem(nil), c.items...)
}

func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *Controller) Toggle() {
	c.mu.Lock()
	c.visible = !c.visible
	c.mu.Unlock()
}

// Hide is called when a turn is submitted.
func (c *Controller) Hide() {
	c.mu.Lock()
	c.visible = false
	c.mu.Unlock()
}

// IsEligible reports whether the intro block should replace the history, which
// is the case until the first message exists.
func (c *Controller) IsEligible() bool {
	return c.counter == nil || c.counter.Len() == 0
}

// CanToggle reports whether the show/hide control is offered.
func (c *Controller) CanToggle() bool {
	return !c.IsEligible()
}

// ToggleLabel is the caption of the show/hide control.
func (c *Controller) ToggleLabel() string {
	if c.Visible() {
		return "Hide suggested questions"
	}
	return "Show suggested questions"
}

// Select returns the prompt for the i-th suggestion. The caller submits it as
// a regular user turn.
func (c *Controller) Select(i int) (string, error) {
	if i < 0 || i >= len(c.items) {
		return "", fmt.Errorf("suggest: index %d out of range [0,%d)", i, len(c.items))
	}
	return c.items[i].Prompt, nil
}
