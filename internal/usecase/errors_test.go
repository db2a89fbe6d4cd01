package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/integrations/chatapi"
	"portfolio-chat/internal/resolver"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code      ErrorCode
		reason    string
		retryable bool
	}{
		{name: "http status", err: fmt.Errorf("wrap: %w", &chatapi.HTTPStatusError{StatusCode: http.StatusServiceUnavailable}), code: ErrorUpstreamUnavailable, reason: "http_503", retryable: true},
		{name: "transport", err: errors.New("dial tcp: connection refused"), code: ErrorUpstreamUnavailable, reason: "transport_error", retryable: true},
		{name: "malformed reply", err: fmt.Errorf("%w: decode", chatapi.ErrMalformedReply), code: ErrorMalformedResponse, reason: "malformed_reply"},
		{name: "malformed payload", err: fmt.Errorf("%w: cards", resolver.ErrMalformedPayload), code: ErrorMalformedResponse, reason: "malformed_reply"},
		{name: "unknown payload", err: fmt.Errorf("%w: x", resolver.ErrUnknownPayloadType), code: ErrorUnknownPayload, reason: "unknown_payload_type"},
		{name: "cancelled", err: fmt.Errorf("post: %w", context.Canceled), code: ErrorCancelled, reason: "context_done"},
		{name: "already coded", err: newError(ErrorInternal, "empty_payload", nil), code: ErrorInternal, reason: "empty_payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			require.Equal(t, tc.code, got.Code)
			require.Equal(t, tc.reason, got.Reason)
			require.Equal(t, tc.retryable, got.Retryable())
		})
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("boom")
	err := newError(ErrorUpstreamUnavailable, "transport_error", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "usecase: UPSTREAM_UNAVAILABLE (transport_error): boom", err.Error())
	require.Equal(t, "usecase: INTERNAL (empty_payload)", newError(ErrorInternal, "empty_payload", nil).Error())

	var nilErr *Error
	require.Equal(t, "", nilErr.Error())
	require.Nil(t, nilErr.Unwrap())
}
