// Package store holds the ordered chat history for a single session.
package store

import (
	"sync"

	"github.com/google/uuid"

	"portfolio-chat/internal/domain"
)

// Change describes a mutation. Listeners use it to re-render and scroll the
// history to the latest message.
type Change struct {
	Handle   domain.Handle
	Replaced bool
	Len      int
}

// Listener is notified after every mutation, outside the store lock.
type Listener func(Change)

// Store is an append-only message log that allows a non-terminal message to be
// replaced in place. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []domain.Message
	index    map[domain.Handle]int

	listenerMu sync.RWMutex
	listeners  []Listener
}

// New returns an empty Store.
func New() *Store {
	return &Store{index: make(map[domain.Handle]int)}
}

// Subscribe registers l for change notifications.
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.listenerMu.Lock()
	s.listeners = append(s.listeners, l)
	s.listenerMu.Unlock()
}

// Append adds msg to the end of the log and returns its handle. A handle is
// generated when msg does not carry one.
func (s *Store) Append(msg domain.Message) domain.Handle {
	if msg.Handle == "" {
		msg.Handle = newHandle()
	}

	s.mu.Lock()
	if _, exists := s.index[msg.Handle]; exists {
		msg.Handle = newHandle()
	}
	s.index[msg.Handle] = len(s.messages)
	s.messages = append(s.messages, msg)
	n := len(s.messages)
	s.mu.Unlock()

	s.notify(Change{Handle: msg.Handle, Len: n})
	return msg.Handle
}

// Replace swaps the message identified by h for msg. Only pending messages can
// be replaced; it reports false for unknown handles and terminal messages so
// late callbacks turn into no-ops.
func (s *Store) Replace(h domain.Handle, msg domain.Message) bool {
	s.mu.Lock()
	i, ok := s.index[h]
	if !ok || s.messages[i].Terminal() {
		s.mu.Unlock()
		return false
	}
	msg.Handle = h
	s.messages[i] = msg
	n := len(s.messages)
	s.mu.Unlock()

	s.notify(Change{Handle: h, Replaced: true, Len: n})
	return true
}

// Get returns the message identified by h.
func (s *Store) Get(h domain.Handle) (domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[h]
	if !ok {
		return domain.Message{}, false
	}
	return s.messages[i], true
}

// Snapshot returns a copy of the log in insertion order.
func (s *Store) Snapshot() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// PendingCount returns the number of messages still awaiting resolution.
func (s *Store) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.messages {
		if m.Status == domain.StatusPending {
			n++
		}
	}
	return n
}

func (s *Store) notify(c Change) {
	s.listenerMu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.listenerMu.RUnlock()
	for _, l := range listeners {
		l(c)
	}
}

var newHandle = func() domain.Handle {
	return domain.Handle(uuid.NewString())
}
