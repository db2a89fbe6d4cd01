package tui

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/render"
)

const (
	cardWidth     = 30
	minBubbleWrap = 20
)

var (
	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	agentBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	imageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(cardWidth)
	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Padding(0, 1).
			MarginRight(1)
	heroNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Painter turns display trees into terminal text for a fixed width.
type Painter struct {
	width int
	md    *glamour.TermRenderer
}

// NewPainter builds a painter for width columns. style is a glamour style name
// or path; "auto" picks one from the terminal background.
func NewPainter(width int, style string) (*Painter, error) {
	width = max(width, minBubbleWrap+4)
	wrap := max(width*3/4-4, minBubbleWrap)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: markdown renderer: %w", err)
	}
	return &Painter{width: width, md: md}, nil
}

// Paint renders one node. frame is the current typing-indicator frame.
func (p *Painter) Paint(n render.Node, frame string) string {
	var out string
	switch n.Template {
	case render.TemplateTyping:
		out = faintStyle.Render(strings.TrimSpace(frame) + " typing...")
	case render.TemplateBubble:
		out = p.bubble(n)
	case render.TemplateCardGrid:
		out = p.cardGrid(n)
	case render.TemplateChipList:
		out = p.chips(n.Chips)
	default:
		out = p.Placeholder()
	}
	return p.align(n.Align, out)
}

// Placeholder is shown in place of a message that could not be rendered.
func (p *Painter) Placeholder() string {
	return errorStyle.Render("[this message could not be displayed]")
}

func (p *Painter) bubble(n render.Node) string {
	body := p.markdown(n.Body)
	switch n.Tone {
	case render.ToneNotice:
		body = noticeStyle.Render(body)
	case render.ToneError:
		body = errorStyle.Render(body)
	}
	if n.ImageRef != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, imageStyle.Render("▣ "+n.ImageRef))
	}
	style := agentBubbleStyle
	if n.Sender == domain.SenderUser {
		style = userBubbleStyle
	}
	return style.Render(body)
}

func (p *Painter) cardGrid(n render.Node) string {
	perRow := max(p.width/(cardWidth+4), 1)

	var rows []string
	if n.Intro != "" {
		rows = append(rows, p.markdown(n.Intro))
	}
	for i := 0; i < len(n.Cards); i += perRow {
		end := min(i+perRow, len(n.Cards))
		cells := make([]string, 0, end-i)
		for _, c := range n.Cards[i:end] {
			cells = append(cells, card(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func card(c render.CardNode) string {
	lines := []string{faintStyle.Render(c.Category), titleStyle.Render(c.Title)}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	if c.ImageRef != "" {
		lines = append(lines, imageStyle.Render("▣ "+c.ImageRef))
	}
	if c.Link != "" {
		lines = append(lines, linkStyle.Render(c.Link))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (p *Painter) chips(items []string) string {
	var rows []string
	var row []string
	used := 0
	for _, it := range items {
		chip := chipStyle.Render(it)
		w := lipgloss.Width(chip)
		if used > 0 && used+w > p.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, chip)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Hero renders the intro block shown while the conversation is empty.
func (p *Painter) Hero(c domain.Content) string {
	lines := []string{heroNameStyle.Render(c.Name)}
	if c.Bio != "" {
		lines = append(lines, c.Bio)
	}
	if c.AvatarRef != "" {
		lines = append(lines, imageStyle.Render("▣ "+c.AvatarRef))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.PlaceHorizontal(p.width, lipgloss.Center, block)
}

// Suggestions renders the quick-start prompts with their function keys.
func (p *Painter) Suggestions(items []domain.SuggestionItem) string {
	parts := make([]string, 0, len(items))
	for i, it := range items {
		if i >= len(suggestionKeys) {
			break
		}
		parts = append(parts, keyStyle.Render(fmt.Sprintf("F%d", i+1))+" "+chipStyle.Render(it.Label))
	}
	return lipgloss.NewStyle().Width(p.width).Render(strings.Join(parts, " "))
}

func (p *Painter) markdown(body string) string {
	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		md = body
	}
	out, err := p.md.Render(md)
	if err != nil {
		return strings.TrimSpace(md)
	}
	return strings.Trim(out, "\n")
}

func (p *Painter) align(a render.Align, s string) string {
	if a == render.AlignEnd {
		return lipgloss.PlaceHorizontal(p.width, lipgloss.Right, s)
	}
	return s
}
