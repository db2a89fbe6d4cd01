package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"portfolio-chat/internal/content"
	"portfolio-chat/internal/domain"
)

const (
	skMeta           = "META"
	skPrefixPrompt   = "PROMPT#"
	skPrefixResponse = "RESPONSE#"
)

// dynamodbAPI is the minimal DynamoDB interface required by ContentTable.
// Defined here for testability.
type dynamodbAPI interface {
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ContentTable reads a site's portfolio content from a DynamoDB table. All
// items of a site share PK "SITE#<site>"; the sort key selects the record kind:
//
//	META              name, bio, avatar, presentationImage
//	PROMPT#<nn>       label, icon, prompt (ordered by sort key)
//	RESPONSE#<key>    type, body (text) or items (JSON array for cards/skills)
type ContentTable struct {
	api       dynamodbAPI
	tableName string
	site      string
}

// NewContentTable creates a ContentTable for site.
func NewContentTable(api dynamodbAPI, tableName, site string) (*ContentTable, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	if strings.TrimSpace(site) == "" {
		return nil, errors.New("repository: site must not be empty")
	}
	return &ContentTable{api: api, tableName: tableName, site: strings.TrimSpace(site)}, nil
}

// sitePK returns the partition key for a site.
func sitePK(site string) string {
	return "SITE#" + site
}

// Load queries every item of the site and assembles a validated content document.
func (t *ContentTable) Load(ctx context.Context) (domain.Content, error) {
	items, err := t.query(ctx)
	if err != nil {
		return domain.Content{}, err
	}
	if len(items) == 0 {
		return domain.Content{}, fmt.Errorf("repository: no content for site %q", t.site)
	}

	c := domain.Content{Responses: make(map[string]domain.Payload)}
	for _, item := range items {
		sk, err := strAttr(item, "SK")
		if err != nil {
			return domain.Content{}, fmt.Errorf("repository: Load: %w", err)
		}
		switch {
		case sk == skMeta:
			c.Name = optStrAttr(item, "name")
			c.Bio = optStrAttr(item, "bio")
			c.AvatarRef = optStrAttr(item, "avatar")
			c.PresentationImageRef = optStrAttr(item, "presentationImage")
		case strings.HasPrefix(sk, skPrefixPrompt):
			s, err := itemToSuggestion(item)
			if err != nil {
				return domain.Content{}, fmt.Errorf("repository: Load %s: %w", sk, err)
			}
			c.SuggestedPrompts = append(c.SuggestedPrompts, s)
		case strings.HasPrefix(sk, skPrefixResponse):
			key := strings.TrimPrefix(sk, skPrefixResponse)
			p, err := itemToPayload(item)
			if err != nil {
				return domain.Content{}, fmt.Errorf("repository: Load %s: %w", sk, err)
			}
			c.Responses[key] = p
		}
	}

	if err := content.Validate(c); err != nil {
		return domain.Content{}, fmt.Errorf("repository: site %q: %w", t.site, err)
	}
	return c, nil
}

func (t *ContentTable) query(ctx context.Context) ([]map[string]types.AttributeValue, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(t.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: sitePK(t.site)},
		},
		// Ascending sort key keeps PROMPT#<nn> items in display order.
		ScanIndexForward: aws.Bool(true),
	}

	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(t.api, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("repository: Load query: %w", err)
		}
		items = append(items, out.Items...)
	}
	return items, nil
}

// itemToSuggestion converts a PROMPT# item to a SuggestionItem.
func itemToSuggestion(item map[string]types.AttributeValue) (domain.SuggestionItem, error) {
	label, err := strAttr(item, "label")
	if err != nil {
		return domain.SuggestionItem{}, err
	}
	prompt, err := strAttr(item, "prompt")
	if err != nil {
		return domain.SuggestionItem{}, err
	}
	return domain.SuggestionItem{
		Label:   label,
		IconRef: optStrAttr(item, "icon"),
		Prompt:  prompt,
	}, nil
}

// itemToPayload converts a RESPONSE# item to a payload.
func itemToPayload(item map[string]types.AttributeValue) (domain.Payload, error) {
	kind, err := strAttr(item, "type")
	if err != nil {
		return nil, err
	}
	return content.NewPayload(kind, func(v any) error {
		if body, ok := v.(*string); ok {
			s, err := strAttr(item, "body")
			if err != nil {
				return err
			}
			*body = s
			return nil
		}
		raw, err := strAttr(item, "items")
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(raw), v)
	})
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func optStrAttr(item map[string]types.AttributeValue, key string) string {
	s, _ := strAttr(item, key) // allow empty
	return strings.TrimSpace(s)
}
