package paramstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ssmAPI is the minimal AWS SSM interface required by Client.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// Client reads content documents from SSM Parameter Store. A document is
// either a single parameter or, when it outgrows the parameter size limit, a
// set of numbered chunk parameters under "<name>/" concatenated in numeric order.
type Client struct {
	api ssmAPI
}

// New creates a Client with the given SSM API implementation.
func New(api ssmAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	return &Client{api: api}, nil
}

// GetParameter returns the decrypted value stored at name, assembling chunked
// documents when name itself does not exist.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.TrimRight(strings.TrimSpace(name), "/")
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return c.getChunked(ctx, name)
		}
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.New("paramstore: parameter missing value")
	}
	return *out.Parameter.Value, nil
}

func (c *Client) getChunked(ctx context.Context, name string) (string, error) {
	var params []types.Parameter
	p := ssm.NewGetParametersByPathPaginator(c.api, &ssm.GetParametersByPathInput{
		Path:           aws.String(name + "/"),
		Recursive:      aws.Bool(false),
		WithDecryption: aws.Bool(true),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("paramstore: get parameters by path %q: %w", name, err)
		}
		params = append(params, page.Parameters...)
	}
	if len(params) == 0 {
		return "", fmt.Errorf("paramstore: parameter %q not found", name)
	}

	type chunk struct {
		index int
		value string
	}
	chunks := make([]chunk, 0, len(params))
	seen := make(map[int]string, len(params))
	for _, prm := range params {
		pname := aws.ToString(prm.Name)
		idx, err := chunkIndex(pname)
		if err != nil {
			return "", err
		}
		if prev, dup := seen[idx]; dup {
			return "", fmt.Errorf("paramstore: chunks %q and %q share index %d", prev, pname, idx)
		}
		seen[idx] = pname
		if prm.Value == nil {
			return "", fmt.Errorf("paramstore: chunk %q missing value", pname)
		}
		chunks = append(chunks, chunk{index: idx, value: *prm.Value})
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].index < chunks[j].index })
	var b strings.Builder
	for _, ch := range chunks {
		b.WriteString(ch.value)
	}
	return b.String(), nil
}

// chunkIndex reads the number that ends the last segment of a chunk name, so
// "doc/part-2" sorts before "doc/10".
func chunkIndex(name string) (int, error) {
	seg := name[strings.LastIndex(name, "/")+1:]
	digits := seg[len(strings.TrimRight(seg, "0123456789")):]
	if digits == "" {
		return 0, fmt.Errorf("paramstore: chunk %q does not end in a number", name)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("paramstore: chunk %q: %w", name, err)
	}
	return n, nil
}
