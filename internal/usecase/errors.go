package usecase

import (
	"context"
	"errors"
	"fmt"

	"portfolio-chat/internal/integrations/chatapi"
	"portfolio-chat/internal/resolver"
)

type ErrorCode string

const (
	ErrorUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrorMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"
	ErrorUnknownPayload      ErrorCode = "UNKNOWN_PAYLOAD"
	ErrorCancelled           ErrorCode = "CANCELLED"
	ErrorInternal            ErrorCode = "INTERNAL"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Retryable reports whether the failure may clear up on its own, as a cold
// backend does. Replies the client cannot understand are final.
func (e *Error) Retryable() bool {
	return e != nil && e.Code == ErrorUpstreamUnavailable
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// classify maps a resolver failure onto an error code. Only upstream
// unavailability earns the wake-up retry.
func classify(err error) *Error {
	var ucErr *Error
	if errors.As(err, &ucErr) {
		return ucErr
	}
	switch {
	case errors.Is(err, context.Canceled):
		return newError(ErrorCancelled, "context_done", err)
	case errors.Is(err, resolver.ErrUnknownPayloadType):
		return newError(ErrorUnknownPayload, "unknown_payload_type", err)
	case errors.Is(err, resolver.ErrMalformedPayload), errors.Is(err, chatapi.ErrMalformedReply):
		return newError(ErrorMalformedResponse, "malformed_reply", err)
	}
	if status, ok := upstreamStatusCode(err); ok {
		return newError(ErrorUpstreamUnavailable, fmt.Sprintf("http_%d", status), err)
	}
	return newError(ErrorUpstreamUnavailable, "transport_error", err)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
