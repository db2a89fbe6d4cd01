package chatapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// chatURL helper
// ---------------------------------------------------------------------------

func TestChatURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://backend.example.com", "https://backend.example.com/api/chat"},
		{"https://backend.example.com/", "https://backend.example.com/api/chat"},
		{"https://backend.example.com/api/chat", "https://backend.example.com/api/chat"},
		{"http://localhost:5001/", "http://localhost:5001/api/chat"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, chatURL(tc.base), "base=%q", tc.base)
	}
}

// ---------------------------------------------------------------------------
// NewClient
// ---------------------------------------------------------------------------

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty")
}

func TestNewClient_RejectsNonHTTPScheme(t *testing.T) {
	_, err := NewClient("ftp://backend")
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient("https://backend.example.com")
	require.NoError(t, err)
	require.Equal(t, defaultTimeout, c.httpClient.Timeout)
}

func TestNewClient_WithTimeout(t *testing.T) {
	c, err := NewClient("https://backend.example.com", WithTimeout(3*time.Second))
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

// ---------------------------------------------------------------------------
// Client.Send
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, WithHTTPClient(&http.Client{Timeout: 2 * time.Second}))
	require.NoError(t, err)
	return c
}

func TestSend_PostsJSONMessage(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"text","data":"<p>hello</p>"}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(t, srv).Send(context.Background(), "hi there")
	require.NoError(t, err)
	require.Equal(t, "hi there", gotBody.Message)
	require.Equal(t, "text", reply.Type)
	require.JSONEq(t, `"<p>hello</p>"`, string(reply.Data))
}

func TestSend_KeepsIntroText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"cards","data":[],"intro_text":"Here are a few"}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(t, srv).Send(context.Background(), "projects")
	require.NoError(t, err)
	require.Equal(t, "cards", reply.Type)
	require.Equal(t, "Here are a few", reply.IntroText)
}

func TestSend_Non2xxReturnsHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"AI model is not available."}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Send(context.Background(), "hi")
	require.Error(t, err)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusServiceUnavailable, statusErr.HTTPStatusCode())
	require.Contains(t, statusErr.Body, "not available")
}

func TestSend_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Send(context.Background(), "hi")
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestSend_MissingType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":"orphan"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Send(context.Background(), "hi")
	require.ErrorIs(t, err, ErrMalformedReply)
}

func TestSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)
	_, err = c.Send(context.Background(), "hi")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMalformedReply)

	var statusErr *HTTPStatusError
	require.False(t, errors.As(err, &statusErr))
}

func TestSend_RespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(t, srv).Send(ctx, "hi")
	require.ErrorIs(t, err, context.Canceled)
}
