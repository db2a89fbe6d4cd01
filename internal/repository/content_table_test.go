package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/content"
	"portfolio-chat/internal/domain"
)

type fakeDynamo struct {
	pages    []*dynamodb.QueryOutput
	queryErr error
	queries  []*dynamodb.QueryInput
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	idx := len(f.queries) - 1
	if idx >= len(f.pages) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.pages[idx], nil
}

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func item(sk string, attrs map[string]string) map[string]types.AttributeValue {
	out := map[string]types.AttributeValue{
		"PK": s("SITE#gem"),
		"SK": s(sk),
	}
	for k, v := range attrs {
		out[k] = s(v)
	}
	return out
}

func siteItems() []map[string]types.AttributeValue {
	return []map[string]types.AttributeValue{
		item("META", map[string]string{"name": "GEM", "bio": "My AI Portfolio", "presentationImage": "/p.jpg"}),
		item("PROMPT#01", map[string]string{"label": "About Me", "icon": "user", "prompt": "Tell me all about GEM"}),
		item("PROMPT#02", map[string]string{"label": "Skills", "prompt": "What are her skills?"}),
		item("RESPONSE#about", map[string]string{"type": "text", "body": "<p>hi</p>"}),
		item("RESPONSE#contact", map[string]string{"type": "text", "body": "mail"}),
		item("RESPONSE#default", map[string]string{"type": "text", "body": "hmm"}),
		item("RESPONSE#projects", map[string]string{"type": "cards", "items": `[{"category":"Web","title":"Recipes","image":"/r.png","link":"https://r"}]`}),
		item("RESPONSE#skills", map[string]string{"type": "skills", "items": `["Go","React"]`}),
	}
}

func mustNewTable(t *testing.T, db *fakeDynamo) *ContentTable {
	t.Helper()
	c, err := NewContentTable(db, "content-table", "gem")
	require.NoError(t, err)
	return c
}

func TestNewContentTable_Validation(t *testing.T) {
	_, err := NewContentTable(nil, "t", "gem")
	require.Error(t, err)
	_, err = NewContentTable(&fakeDynamo{}, " ", "gem")
	require.Error(t, err)
	_, err = NewContentTable(&fakeDynamo{}, "t", "")
	require.Error(t, err)
}

func TestLoad_HappyPath(t *testing.T) {
	db := &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: siteItems()}}}
	c, err := mustNewTable(t, db).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "GEM", c.Name)
	require.Equal(t, "/p.jpg", c.PresentationImageRef)
	require.Equal(t, []domain.SuggestionItem{
		{Label: "About Me", IconRef: "user", Prompt: "Tell me all about GEM"},
		{Label: "Skills", Prompt: "What are her skills?"},
	}, c.SuggestedPrompts)
	require.Equal(t, domain.Text{Body: "<p>hi</p>"}, c.Responses["about"])
	require.Equal(t, domain.SkillList{Items: []string{"Go", "React"}}, c.Responses["skills"])
	require.Equal(t, domain.CardList{Items: []domain.Card{{Category: "Web", Title: "Recipes", ImageRef: "/r.png", Link: "https://r"}}}, c.Responses["projects"])

	require.Len(t, db.queries, 1)
	in := db.queries[0]
	require.Equal(t, "content-table", aws.ToString(in.TableName))
	require.Equal(t, "SITE#gem", in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
	require.True(t, aws.ToBool(in.ScanIndexForward))
}

func TestLoad_FollowsPagination(t *testing.T) {
	all := siteItems()
	db := &fakeDynamo{pages: []*dynamodb.QueryOutput{
		{Items: all[:3], LastEvaluatedKey: map[string]types.AttributeValue{"PK": s("SITE#gem"), "SK": s("PROMPT#02")}},
		{Items: all[3:]},
	}}
	c, err := mustNewTable(t, db).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Responses, 5)
	require.Len(t, db.queries, 2)
	require.NotEmpty(t, db.queries[1].ExclusiveStartKey)
}

func TestLoad_NoItems(t *testing.T) {
	db := &fakeDynamo{pages: []*dynamodb.QueryOutput{{}}}
	_, err := mustNewTable(t, db).Load(context.Background())
	require.ErrorContains(t, err, "no content")
}

func TestLoad_QueryError(t *testing.T) {
	db := &fakeDynamo{queryErr: errors.New("boom")}
	_, err := mustNewTable(t, db).Load(context.Background())
	require.ErrorContains(t, err, "Load query")
}

func TestLoad_MissingResponseFailsValidation(t *testing.T) {
	items := siteItems()[:4]
	db := &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: items}}}
	_, err := mustNewTable(t, db).Load(context.Background())
	require.ErrorIs(t, err, content.ErrInvalidContent)
}

func TestLoad_MalformedItems(t *testing.T) {
	cases := []struct {
		name string
		item map[string]types.AttributeValue
		want string
	}{
		{name: "prompt without label", item: item("PROMPT#03", map[string]string{"prompt": "x"}), want: `"label"`},
		{name: "response without type", item: item("RESPONSE#x", map[string]string{"body": "x"}), want: `"type"`},
		{name: "text without body", item: item("RESPONSE#x", map[string]string{"type": "text"}), want: `"body"`},
		{name: "cards with bad json", item: item("RESPONSE#x", map[string]string{"type": "cards", "items": "{"}), want: "cards content"},
		{name: "unknown type", item: item("RESPONSE#x", map[string]string{"type": "video", "body": "x"}), want: "video"},
		{name: "numeric sort key", item: map[string]types.AttributeValue{"PK": s("SITE#gem"), "SK": &types.AttributeValueMemberN{Value: "1"}}, want: "not a string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := append(siteItems(), tc.item)
			db := &fakeDynamo{pages: []*dynamodb.QueryOutput{{Items: items}}}
			_, err := mustNewTable(t, db).Load(context.Background())
			require.ErrorContains(t, err, tc.want)
		})
	}
}
