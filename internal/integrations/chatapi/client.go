package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	chatPath       = "/api/chat"
	defaultTimeout = 30 * time.Second
)

// ErrMalformedReply is returned when a 2xx response body is not the expected JSON envelope.
var ErrMalformedReply = errors.New("chatapi: malformed reply")

// chatRequest is the request body for the chat endpoint.
type chatRequest struct {
	Message string `json:"message"`
}

// Reply is the envelope returned by the chat endpoint. Data is kept raw because
// its shape depends on Type.
type Reply struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	IntroText string          `json:"intro_text,omitempty"`
}

// HTTPStatusError captures non-2xx responses from the chat endpoint.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("chatapi: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client posts chat messages to a remote inference backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewClient creates a Client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("chatapi: base URL must not be empty")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("chatapi: base URL %q must use http or https", baseURL)
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resolvedHTTPClient returns the configured HTTP client, or a default one if a
// caller nil'ed it out through WithHTTPClient.
func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(base, chatPath) {
		return base
	}
	return base + chatPath
}

// Send posts message and returns the decoded reply envelope.
func (c *Client) Send(ctx context.Context, message string) (Reply, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return Reply{}, fmt.Errorf("chatapi: marshal request: %w", err)
	}

	url := chatURL(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("chatapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	raw, err := c.doJSONRequest(req, url)
	if err != nil {
		return Reply{}, fmt.Errorf("chatapi: request failed: %w", err)
	}

	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return Reply{}, fmt.Errorf("%w: decode response: %v", ErrMalformedReply, err)
	}
	if strings.TrimSpace(reply.Type) == "" {
		return Reply{}, fmt.Errorf("%w: missing type", ErrMalformedReply)
	}
	return reply, nil
}

func (c *Client) doJSONRequest(req *http.Request, url string) ([]byte, error) {
	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
