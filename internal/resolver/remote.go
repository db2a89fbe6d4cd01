package resolver

import (
	"context"
	"errors"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/integrations/chatapi"
)

// ChatSender is the subset of chatapi.Client used by Remote.
type ChatSender interface {
	Send(ctx context.Context, message string) (chatapi.Reply, error)
}

// Remote resolves turns against the inference backend. Retry policy is owned by
// the caller; Remote performs exactly one request per call.
type Remote struct {
	api ChatSender
}

// NewRemote wraps api, which must not be nil.
func NewRemote(api ChatSender) (*Remote, error) {
	if api == nil {
		return nil, errors.New("resolver: chat sender must not be nil")
	}
	return &Remote{api: api}, nil
}

// Resolve sends the raw text and decodes the reply into a payload.
func (r *Remote) Resolve(ctx context.Context, req domain.ResolutionRequest) (domain.Payload, error) {
	reply, err := r.api.Send(ctx, req.RawText)
	if err != nil {
		return nil, err
	}
	return Decode(reply.Type, reply.Data, reply.IntroText)
}
