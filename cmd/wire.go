package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/content"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/integrations/chatapi"
	"portfolio-chat/internal/integrations/paramstore"
	"portfolio-chat/internal/logging"
	"portfolio-chat/internal/render"
	"portfolio-chat/internal/repository"
	"portfolio-chat/internal/resolver"
	"portfolio-chat/internal/store"
	"portfolio-chat/internal/suggest"
	"portfolio-chat/internal/usecase"
)

// app is the fully wired pipeline shared by the chat and ask commands.
type app struct {
	logger      *zap.Logger
	content     domain.Content
	store       *store.Store
	service     *usecase.ChatService
	dispatcher  *render.Dispatcher
	suggestions *suggest.Controller
}

// build wires every component for cfg. console allows logging to stderr.
func build(ctx context.Context, cfg config.Config, console bool) (*app, error) {
	// ---- Logging ----
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, Console: console})
	if err != nil {
		return nil, wrapErr("create logger", err)
	}

	// ---- Content ----
	src, err := contentSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c, err := src.Load(ctx)
	if err != nil {
		return nil, wrapErr("load content", err)
	}
	logger.Info("content loaded",
		zap.String("source", string(cfg.ContentSource)),
		zap.Int("prompts", len(c.SuggestedPrompts)),
		zap.Int("responses", len(c.Responses)))

	// ---- Pipeline ----
	st := store.New()
	r, opts, err := newResolver(cfg, c)
	if err != nil {
		return nil, err
	}
	svc, err := usecase.NewChatService(r, st, append(opts, usecase.WithLogger(logger))...)
	if err != nil {
		return nil, wrapErr("create chat service", err)
	}

	return &app{
		logger:      logger,
		content:     c,
		store:       st,
		service:     svc,
		dispatcher:  render.NewDispatcher(c.PresentationImageRef),
		suggestions: suggest.New(c.SuggestedPrompts, st),
	}, nil
}

func contentSource(ctx context.Context, cfg config.Config) (content.Source, error) {
	switch cfg.ContentSource {
	case config.SourceEmbedded:
		return content.Embedded{}, nil
	case config.SourceFile:
		return content.File{Path: cfg.ContentFile}, nil
	case config.SourceSSM:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, wrapErr("load AWS config", err)
		}
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, wrapErr("create SSM client", err)
		}
		return content.NewParameter(ssmClient, cfg.ParamName)
	case config.SourceDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, wrapErr("load AWS config", err)
		}
		table, err := repository.NewContentTable(awsdynamodb.NewFromConfig(awsCfg), cfg.ContentTable, cfg.Site)
		if err != nil {
			return nil, wrapErr("create content table", err)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unknown content source %q", cfg.ContentSource)
	}
}

// newResolver picks the resolver for the configured mode along with the
// service options that mode implies. Local replies cannot fail, so they get
// neither a pending indicator nor a retry.
func newResolver(cfg config.Config, c domain.Content) (usecase.Resolver, []usecase.Option, error) {
	switch cfg.Mode {
	case config.ModeLocal:
		local, err := resolver.NewLocal(c.Responses, resolver.WithDelay(cfg.LocalDelay))
		if err != nil {
			return nil, nil, wrapErr("create local resolver", err)
		}
		return local, []usecase.Option{
			usecase.WithPendingIndicator(false),
			usecase.WithRetryDelay(0),
		}, nil
	case config.ModeRemote:
		client, err := chatapi.NewClient(cfg.Endpoint, chatapi.WithTimeout(cfg.Timeout))
		if err != nil {
			return nil, nil, wrapErr("create chat API client", err)
		}
		remote, err := resolver.NewRemote(client)
		if err != nil {
			return nil, nil, wrapErr("create remote resolver", err)
		}
		return remote, []usecase.Option{usecase.WithRetryDelay(cfg.RetryDelay)}, nil
	default:
		return nil, nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}
