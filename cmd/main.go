package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"portfolio-chat/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// flagSet holds command-line overrides. Only flags the user set replace the
// environment configuration.
type flagSet struct {
	mode          string
	endpoint      string
	timeout       time.Duration
	retryDelay    time.Duration
	localDelay    time.Duration
	contentSource string
	contentFile   string
	paramName     string
	contentTable  string
	site          string
	logLevel      string
	logFile       string
}

func newRootCmd() *cobra.Command {
	var flags flagSet
	var cfg config.Config

	root := &cobra.Command{
		Use:           "portfolio-chat",
		Short:         "Chat with a portfolio assistant from the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = flags.apply(cmd, loaded)
			return cfg.Validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.mode, "mode", "", "response mode: remote or local")
	pf.StringVar(&flags.endpoint, "endpoint", "", "backend base URL (requests go to <endpoint>/api/chat)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "HTTP request timeout")
	pf.DurationVar(&flags.retryDelay, "retry-delay", 0, "delay before retrying a backend that is waking up")
	pf.DurationVar(&flags.localDelay, "local-delay", 0, "simulated latency of local replies")
	pf.StringVar(&flags.contentSource, "content-source", "", "portfolio content: embedded, file, ssm or dynamodb")
	pf.StringVar(&flags.contentFile, "content-file", "", "YAML content document for the file source")
	pf.StringVar(&flags.paramName, "param-name", "", "SSM parameter holding the content document")
	pf.StringVar(&flags.contentTable, "content-table", "", "DynamoDB table holding content items")
	pf.StringVar(&flags.site, "site", "", "site key within the content table")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file")

	chat := newChatCmd(&cfg)
	root.AddCommand(chat, newAskCmd(&cfg))
	root.RunE = chat.RunE
	return root
}

func (f flagSet) apply(cmd *cobra.Command, cfg config.Config) config.Config {
	changed := cmd.Flags().Changed
	if changed("mode") {
		cfg.Mode = config.Mode(f.mode)
	}
	if changed("endpoint") {
		cfg.Endpoint = f.endpoint
	}
	if changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if changed("retry-delay") {
		cfg.RetryDelay = f.retryDelay
	}
	if changed("local-delay") {
		cfg.LocalDelay = f.localDelay
	}
	if changed("content-source") {
		cfg.ContentSource = config.ContentSource(f.contentSource)
	}
	if changed("content-file") {
		cfg.ContentFile = f.contentFile
	}
	if changed("param-name") {
		cfg.ParamName = f.paramName
	}
	if changed("content-table") {
		cfg.ContentTable = f.contentTable
	}
	if changed("site") {
		cfg.Site = f.site
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	return cfg
}

func wrapErr(what string, err error) error {
	return fmt.Errorf("failed to %s: %w", what, err)
}
