package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/domain"
)

const validDoc = `
name: GEM
bio: My AI Portfolio
avatar: /a.jpg
presentationImage: /p.jpg
suggestedPrompts:
  - {label: About Me, icon: user, prompt: Tell me all about GEM}
responses:
  about:    {type: text, content: "<p>hi</p>"}
  projects:
    type: cards
    content:
      - {category: Web, title: Recipes, image: /r.png, link: "https://r", description: food}
  skills:   {type: skills, content: [Go, React]}
  contact:  {type: text, content: "mail me"}
  default:  {type: text, content: "no idea"}
`

func TestParse_ValidDocument(t *testing.T) {
	c, err := Parse([]byte(validDoc))
	require.NoError(t, err)
	require.Equal(t, "GEM", c.Name)
	require.Equal(t, "/p.jpg", c.PresentationImageRef)
	require.Equal(t, []domain.SuggestionItem{{Label: "About Me", IconRef: "user", Prompt: "Tell me all about GEM"}}, c.SuggestedPrompts)
	require.Equal(t, domain.Text{Body: "<p>hi</p>"}, c.Responses[domain.ResponseAbout])
	require.Equal(t, domain.SkillList{Items: []string{"Go", "React"}}, c.Responses[domain.ResponseSkills])
	require.Equal(t, domain.CardList{Items: []domain.Card{
		{Category: "Web", Title: "Recipes", ImageRef: "/r.png", Link: "https://r", Description: "food"},
	}}, c.Responses[domain.ResponseProjects])
}

func TestParse_RejectsUnknownResponseType(t *testing.T) {
	doc := validDoc + "  extra: {type: video, content: x}\n"
	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, ErrInvalidContent)
	require.ErrorContains(t, err, "video")
}

func TestParse_RejectsMissingContent(t *testing.T) {
	doc := validDoc + "  extra: {type: text}\n"
	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, ErrInvalidContent)
}

func TestParse_RejectsShapeMismatch(t *testing.T) {
	doc := validDoc + "  extra: {type: skills, content: {a: b}}\n"
	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, ErrInvalidContent)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	require.ErrorContains(t, err, "decode yaml")
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := Validate(domain.Content{
		SuggestedPrompts: []domain.SuggestionItem{{Label: "x"}},
		Responses: map[string]domain.Payload{
			domain.ResponseProjects: domain.CardList{Items: []domain.Card{{}}},
		},
	})
	require.ErrorIs(t, err, ErrInvalidContent)
	for _, want := range []string{"name is required", "suggestedPrompts[0]", "responses.about", "responses.default", "responses.projects[0]"} {
		require.ErrorContains(t, err, want)
	}
}

func TestEmbedded_LoadsDefaultDocument(t *testing.T) {
	c, err := Embedded{}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "GEM", c.Name)
	require.Len(t, c.SuggestedPrompts, 5)
	for _, key := range domain.RequiredResponses {
		require.NotNil(t, c.Responses[key], key)
	}
}

func TestFile_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o600))

	c, err := File{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "GEM", c.Name)

	_, err = File{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	require.ErrorContains(t, err, "read")

	_, err = File{}.Load(context.Background())
	require.Error(t, err)
}

type fakeGetter struct {
	val  string
	err  error
	name string
}

func (f *fakeGetter) GetParameter(_ context.Context, name string) (string, error) {
	f.name = name
	return f.val, f.err
}

func TestParameter_Load(t *testing.T) {
	g := &fakeGetter{val: validDoc}
	p, err := NewParameter(g, " /portfolio-chat/content ")
	require.NoError(t, err)

	c, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "GEM", c.Name)
	require.Equal(t, "/portfolio-chat/content", g.name)
}

func TestParameter_LoadError(t *testing.T) {
	p, err := NewParameter(&fakeGetter{err: errors.New("ssm unavailable")}, "/x")
	require.NoError(t, err)
	_, err = p.Load(context.Background())
	require.ErrorContains(t, err, "ssm unavailable")
}

func TestNewParameter_Validation(t *testing.T) {
	_, err := NewParameter(nil, "/x")
	require.Error(t, err)
	_, err = NewParameter(&fakeGetter{}, "  ")
	require.Error(t, err)
}
