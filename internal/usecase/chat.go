package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
)

const (
	// DefaultRetryDelay gives a cold backend time to boot before the second attempt.
	DefaultRetryDelay = 15 * time.Second

	DefaultWarmingUpText   = "My AI brain is waking up... please give it a moment! 🧠✨"
	DefaultUnavailableText = "Looks like my AI is taking a coffee break! ☕️ Please try again in a moment."
)

// Resolver produces the reply payload for a single attempt.
type Resolver interface {
	Resolve(ctx context.Context, req domain.ResolutionRequest) (domain.Payload, error)
}

// MessageStore is the history the service writes into.
type MessageStore interface {
	Append(msg domain.Message) domain.Handle
	Replace(h domain.Handle, msg domain.Message) bool
}

type TurnID string

// Attempt is a unit of resolver work. It carries everything Resolve needs so it
// can run off the event loop.
type Attempt struct {
	Turn    TurnID
	Request domain.ResolutionRequest
}

// Outcome is the result of an Attempt, fed back through Complete.
type Outcome struct {
	Turn    TurnID
	IsRetry bool
	Payload domain.Payload
	Err     error
}

// RetryDirective asks the caller to call Retry after Delay. At identifies the
// scheduled retry; a directive whose At no longer matches the turn is stale.
type RetryDirective struct {
	Turn  TurnID
	At    time.Time
	Delay time.Duration
}

type turn struct {
	id      TurnID
	text    string
	agent   domain.Handle
	retryAt *time.Time
	done    bool
}

// ChatService owns the lifecycle of conversational turns: it appends the user
// message, tracks the agent reply slot and applies the wake-up retry policy.
type ChatService struct {
	resolver Resolver
	store    MessageStore
	clock    clockwork.Clock
	logger   *zap.Logger

	retryDelay      time.Duration
	showPending     bool
	warmingUpText   string
	unavailableText string

	mu    sync.Mutex
	turns map[TurnID]*turn
}

type Option func(*ChatService)

// WithRetryDelay sets the wait before the single retry. Zero disables the retry:
// a failed first attempt becomes terminal immediately.
func WithRetryDelay(d time.Duration) Option {
	return func(s *ChatService) {
		if d >= 0 {
			s.retryDelay = d
		}
	}
}

// WithPendingIndicator controls whether a Pending agent message is appended on
// submit. Local resolution shows the reply only once it is ready.
func WithPendingIndicator(enabled bool) Option {
	return func(s *ChatService) {
		s.showPending = enabled
	}
}

func WithNotices(warmingUp, unavailable string) Option {
	return func(s *ChatService) {
		if strings.TrimSpace(warmingUp) != "" {
			s.warmingUpText = warmingUp
		}
		if strings.TrimSpace(unavailable) != "" {
			s.unavailableText = unavailable
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *ChatService) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *ChatService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewChatService(r Resolver, st MessageStore, opts ...Option) (*ChatService, error) {
	if r == nil {
		return nil, errors.New("usecase: resolver must not be nil")
	}
	if st == nil {
		return nil, errors.New("usecase: message store must not be nil")
	}
	s := &ChatService{
		resolver:        r,
		store:           st,
		clock:           clockwork.NewRealClock(),
		logger:          zap.NewNop(),
		retryDelay:      DefaultRetryDelay,
		showPending:     true,
		warmingUpText:   DefaultWarmingUpText,
		unavailableText: DefaultUnavailableText,
		turns:           make(map[TurnID]*turn),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit records a user turn. Whitespace-only input is ignored and reports false.
func (s *ChatService) Submit(text string) (Attempt, bool) {
	if strings.TrimSpace(text) == "" {
		return Attempt{}, false
	}

	t := &turn{id: newTurnID(), text: text}
	s.store.Append(domain.Message{
		Sender:  domain.SenderUser,
		Status:  domain.StatusResolved,
		Payload: domain.Text{Body: text},
	})
	if s.showPending {
		t.agent = s.store.Append(domain.Message{
			Sender: domain.SenderAgent,
			Status: domain.StatusPending,
		})
	}

	s.mu.Lock()
	s.turns[t.id] = t
	s.mu.Unlock()

	s.logger.Info("turn submitted", zap.String("turn", string(t.id)), zap.Int("length", len(text)))
	return Attempt{Turn: t.id, Request: domain.ResolutionRequest{RawText: text}}, true
}

// Resolve runs the resolver for a. It does not touch the store.
func (s *ChatService) Resolve(ctx context.Context, a Attempt) Outcome {
	payload, err := s.resolver.Resolve(ctx, a.Request)
	if err == nil && payload == nil {
		err = newError(ErrorInternal, "empty_payload", nil)
	}
	return Outcome{Turn: a.Turn, IsRetry: a.Request.IsRetry, Payload: payload, Err: err}
}

// Complete applies o to the history. On a first-attempt upstream failure it
// writes the warm-up notice and returns the retry to schedule; every other
// outcome is terminal.
func (s *ChatService) Complete(o Outcome) (RetryDirective, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.turns[o.Turn]
	if !ok || t.done {
		s.logger.Debug("outcome for finished turn dropped", zap.String("turn", string(o.Turn)))
		return RetryDirective{}, false
	}
	log := s.logger.With(zap.String("turn", string(t.id)), zap.Bool("retry", o.IsRetry))

	if o.Err == nil {
		s.finish(t, domain.Message{Sender: domain.SenderAgent, Status: domain.StatusResolved, Payload: o.Payload})
		log.Info("turn resolved", zap.String("payload", string(domain.KindOf(o.Payload))))
		return RetryDirective{}, false
	}

	ucErr := classify(o.Err)
	log.Warn("attempt failed", zap.String("code", string(ucErr.Code)), zap.String("reason", ucErr.Reason), zap.Error(o.Err))

	if o.IsRetry || s.retryDelay == 0 || !ucErr.Retryable() {
		s.finish(t, s.failure())
		log.Info("turn failed")
		return RetryDirective{}, false
	}

	s.place(t, domain.Message{
		Sender:  domain.SenderAgent,
		Status:  domain.StatusPending,
		Payload: domain.Text{Body: s.warmingUpText},
	})
	at := s.clock.Now().Add(s.retryDelay)
	t.retryAt = &at
	log.Info("retry scheduled", zap.Duration("delay", s.retryDelay))
	return RetryDirective{Turn: t.id, At: at, Delay: s.retryDelay}, true
}

// Retry turns a fired directive into the second Attempt. Directives for
// finished, abandoned or rescheduled turns report false.
func (s *ChatService) Retry(d RetryDirective) (Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.turns[d.Turn]
	if !ok || t.done || t.retryAt == nil || !t.retryAt.Equal(d.At) {
		s.logger.Debug("stale retry dropped", zap.String("turn", string(d.Turn)))
		return Attempt{}, false
	}
	t.retryAt = nil
	s.logger.Info("retry fired", zap.String("turn", string(t.id)))
	return Attempt{Turn: t.id, Request: domain.ResolutionRequest{RawText: t.text, IsRetry: true}}, true
}

// Fail writes the terminal failure for a turn that will not be attempted again.
func (s *ChatService) Fail(id TurnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.turns[id]
	if !ok || t.done {
		return
	}
	s.finish(t, s.failure())
	s.logger.Info("turn failed", zap.String("turn", string(id)))
}

// Abandon fails every outstanding turn so timers that fire later are no-ops.
func (s *ChatService) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.turns {
		if !t.done {
			s.finish(t, s.failure())
		}
	}
}

// Outstanding returns the number of turns without a terminal message.
func (s *ChatService) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.turns {
		if !t.done {
			n++
		}
	}
	return n
}

// Run drives one turn to a terminal state, waiting out the retry delay on the
// service clock.
func (s *ChatService) Run(ctx context.Context, text string) error {
	a, ok := s.Submit(text)
	if !ok {
		return nil
	}
	for {
		d, retry := s.Complete(s.Resolve(ctx, a))
		if !retry {
			return nil
		}
		select {
		case <-ctx.Done():
			s.Fail(d.Turn)
			return ctx.Err()
		case <-s.clock.After(d.Delay):
		}
		if a, ok = s.Retry(d); !ok {
			return nil
		}
	}
}

func (s *ChatService) failure() domain.Message {
	return domain.Message{
		Sender:  domain.SenderAgent,
		Status:  domain.StatusFailed,
		Payload: domain.Text{Body: s.unavailableText},
	}
}

// finish writes the terminal message. Must be called with mu held.
func (s *ChatService) finish(t *turn, msg domain.Message) {
	s.place(t, msg)
	t.done = true
	t.retryAt = nil
}

// place writes msg into the turn's agent slot, appending it on first use.
// Must be called with mu held.
func (s *ChatService) place(t *turn, msg domain.Message) {
	if t.agent == "" {
		t.agent = s.store.Append(msg)
		return
	}
	if !s.store.Replace(t.agent, msg) {
		s.logger.Warn("agent message no longer replaceable", zap.String("turn", string(t.id)))
	}
}

var newTurnID = func() TurnID {
	return TurnID(uuid.NewString())
}
