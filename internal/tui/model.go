// Package tui is the interactive terminal front-end. It owns the event loop:
// resolution runs in commands, results and retry timers come back as messages.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/render"
	"portfolio-chat/internal/store"
	"portfolio-chat/internal/suggest"
	"portfolio-chat/internal/usecase"
)

// Pipeline is the turn lifecycle the model drives.
type Pipeline interface {
	Submit(text string) (usecase.Attempt, bool)
	Resolve(ctx context.Context, a usecase.Attempt) usecase.Outcome
	Complete(o usecase.Outcome) (usecase.RetryDirective, bool)
	Retry(d usecase.RetryDirective) (usecase.Attempt, bool)
	Abandon()
}

// History is the read side of the message store.
type History interface {
	Subscribe(l store.Listener)
	Snapshot() []domain.Message
	Len() int
	PendingCount() int
}

type outcomeMsg usecase.Outcome

type retryMsg usecase.RetryDirective

var separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Model is the root bubbletea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	pipeline    Pipeline
	history     History
	dispatcher  *render.Dispatcher
	suggestions *suggest.Controller
	content     domain.Content
	logger      *zap.Logger
	style       string

	painter  *Painter
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	keys     keyMap

	width, height int
	// changed is set by the store listener; the history is repainted and
	// scrolled to the latest message before the next frame.
	changed bool
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMarkdownStyle sets the glamour style used for text bodies.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		m.style = style
	}
}

func NewModel(p Pipeline, h History, d *render.Dispatcher, sc *suggest.Controller, c domain.Content, opts ...Option) (*Model, error) {
	if p == nil {
		return nil, errors.New("tui: pipeline must not be nil")
	}
	if h == nil {
		return nil, errors.New("tui: history must not be nil")
	}
	if d == nil {
		return nil, errors.New("tui: dispatcher must not be nil")
	}
	if sc == nil {
		return nil, errors.New("tui: suggestion controller must not be nil")
	}

	ti := textinput.New()
	ti.Placeholder = "Ask me anything..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:         ctx,
		cancel:      cancel,
		pipeline:    p,
		history:     h,
		dispatcher:  d,
		suggestions: sc,
		content:     c,
		logger:      zap.NewNop(),
		style:       "auto",
		input:       ti,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		keys:        defaultKeys,
	}
	for _, opt := range opts {
		opt(m)
	}
	h.Subscribe(func(store.Change) { m.changed = true })
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		painter, err := NewPainter(m.width, m.style)
		if err != nil {
			m.logger.Error("painter unavailable", zap.Error(err))
		} else {
			m.painter = painter
		}
		m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-1, 1)
		m.changed = true

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case outcomeMsg:
		if d, retry := m.pipeline.Complete(usecase.Outcome(msg)); retry {
			cmds = append(cmds, tea.Tick(d.Delay, func(time.Time) tea.Msg { return retryMsg(d) }))
		}

	case retryMsg:
		if a, ok := m.pipeline.Retry(usecase.RetryDirective(msg)); ok {
			cmds = append(cmds, m.resolve(a))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.layout()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pipeline.Abandon()
		m.cancel()
		return tea.Quit
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.input.Reset()
		return m.submit(text)
	case key.Matches(msg, m.keys.Toggle):
		if m.suggestions.CanToggle() {
			m.suggestions.Toggle()
		}
		return nil
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	for i, b := range suggestionKeys {
		if !key.Matches(msg, b) {
			continue
		}
		if !m.suggestions.Visible() {
			return nil
		}
		prompt, err := m.suggestions.Select(i)
		if err != nil {
			return nil
		}
		return m.submit(prompt)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submit(text string) tea.Cmd {
	a, ok := m.pipeline.Submit(text)
	if !ok {
		return nil
	}
	m.suggestions.Hide()
	return m.resolve(a)
}

func (m *Model) resolve(a usecase.Attempt) tea.Cmd {
	ctx, p := m.ctx, m.pipeline
	return func() tea.Msg {
		return outcomeMsg(p.Resolve(ctx, a))
	}
}

// layout sizes the viewport to what the footer leaves and repaints the history.
func (m *Model) layout() {
	if m.painter == nil {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(m.footer())-1, 1)

	scroll := m.changed
	if scroll || m.history.PendingCount() > 0 {
		m.viewport.SetContent(m.transcript())
	}
	if scroll {
		m.viewport.GotoBottom()
		m.changed = false
	}
}

func (m *Model) transcript() string {
	msgs := m.history.Snapshot()
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		n, err := m.dispatcher.Render(msg)
		if err != nil {
			m.logger.Error("message not rendered", zap.String("handle", string(msg.Handle)), zap.Error(err))
			parts = append(parts, m.painter.Placeholder())
			continue
		}
		parts = append(parts, m.painter.Paint(n, m.spinner.View()))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) footer() string {
	var lines []string
	if m.suggestions.Visible() {
		lines = append(lines, m.painter.Suggestions(m.suggestions.Items()))
	}
	if m.suggestions.CanToggle() {
		lines = append(lines, faintStyle.Render(m.keys.Toggle.Help().Key+": "+m.suggestions.ToggleLabel()))
	}
	lines = append(lines, m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) View() string {
	if m.painter == nil {
		return "initializing..."
	}
	body := m.viewport.View()
	if m.suggestions.IsEligible() {
		body = lipgloss.PlaceVertical(m.viewport.Height, lipgloss.Center, m.painter.Hero(m.content))
	}
	sep := separatorStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, body, sep, m.footer())
}

// Close abandons outstanding turns. It is safe to call after the program exits.
func (m *Model) Close() {
	m.pipeline.Abandon()
	m.cancel()
}
