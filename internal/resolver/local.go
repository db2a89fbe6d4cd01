package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"portfolio-chat/internal/domain"
)

// DefaultLocalDelay is the artificial latency before a local reply is shown.
const DefaultLocalDelay = time.Second

type route struct {
	key      string
	keywords []string
}

// routes is evaluated top to bottom; the first match wins. "project" must stay
// ahead of "about"/"me".
var routes = []route{
	{key: domain.ResponseProjects, keywords: []string{"project"}},
	{key: domain.ResponseAbout, keywords: []string{"about", "me"}},
	{key: domain.ResponseSkills, keywords: []string{"skill"}},
	{key: domain.ResponseContact, keywords: []string{"contact", "reach"}},
}

// Route returns the response key for text using case-insensitive substring matching.
func Route(text string) string {
	lower := strings.ToLower(text)
	for _, r := range routes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.key
			}
		}
	}
	return domain.ResponseDefault
}

// Local answers from the static response table.
type Local struct {
	responses map[string]domain.Payload
	delay     time.Duration
	clock     clockwork.Clock
}

// LocalOption configures a Local resolver.
type LocalOption func(*Local)

// WithDelay sets the simulated latency. Negative values are ignored.
func WithDelay(d time.Duration) LocalOption {
	return func(l *Local) {
		if d >= 0 {
			l.delay = d
		}
	}
}

// WithClock sets the clock the delay is measured on.
func WithClock(c clockwork.Clock) LocalOption {
	return func(l *Local) {
		if c != nil {
			l.clock = c
		}
	}
}

// NewLocal builds a keyword router over responses. Every key in
// domain.RequiredResponses must be present.
func NewLocal(responses map[string]domain.Payload, opts ...LocalOption) (*Local, error) {
	for _, key := range domain.RequiredResponses {
		if responses[key] == nil {
			return nil, fmt.Errorf("resolver: missing %q response", key)
		}
	}
	l := &Local{
		responses: responses,
		delay:     DefaultLocalDelay,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Resolve waits out the delay and returns the routed response.
func (l *Local) Resolve(ctx context.Context, req domain.ResolutionRequest) (domain.Payload, error) {
	if l.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.clock.After(l.delay):
		}
	}
	return l.responses[Route(req.RawText)], nil
}
