package suggest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/domain"
)

type fixedCounter int

func (f *fixedCounter) Len() int { return int(*f) }

func items() []domain.SuggestionItem {
	return []domain.SuggestionItem{
		{Label: "About Me", IconRef: "user", Prompt: "Tell me all about GEM"},
		{Label: "Projects", IconRef: "briefcase", Prompt: "Show me her projects."},
	}
}

func TestController_DefaultsVisibleAndEligible(t *testing.T) {
	var n fixedCounter
	c := New(items(), &n)
	require.True(t, c.Visible())
	require.True(t, c.IsEligible())
	require.False(t, c.CanToggle())
}

func TestController_EligibilityFollowsMessageCount(t *testing.T) {
	var n fixedCounter
	c := New(items(), &n)
	n = 2
	require.False(t, c.IsEligible())
	require.True(t, c.CanToggle())
}

func TestController_ToggleAndHide(t *testing.T) {
	c := New(items(), nil)
	require.Equal(t, "Hide suggested questions", c.ToggleLabel())

	c.Toggle()
	require.False(t, c.Visible())
	require.Equal(t, "Show suggested questions", c.ToggleLabel())

	c.Toggle()
	require.True(t, c.Visible())

	c.Hide()
	require.False(t, c.Visible())
}

func TestController_Select(t *testing.T) {
	c := New(items(), nil)
	prompt, err := c.Select(1)
	require.NoError(t, err)
	require.Equal(t, "Show me her projects.", prompt)

	_, err = c.Select(2)
	require.Error(t, err)
	_, err = c.Select(-1)
	require.Error(t, err)
}

func TestController_ItemsAreImmutable(t *testing.T) {
	src := items()
	c := New(src, nil)
	src[0].Prompt = "changed"
	got := c.Items()
	require.Equal(t, "Tell me all about GEM", got[0].Prompt)

	got[1].Prompt = "changed"
	prompt, _ := c.Select(1)
	require.Equal(t, "Show me her projects.", prompt)
}
