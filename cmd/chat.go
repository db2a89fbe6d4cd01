package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/tui"
)

func newChatCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := build(ctx, *cfg, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			m, err := tui.NewModel(a.service, a.store, a.dispatcher, a.suggestions, a.content, tui.WithLogger(a.logger))
			if err != nil {
				return wrapErr("create UI", err)
			}
			defer m.Close()

			a.logger.Info("chat started", zap.String("mode", string(cfg.Mode)))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}
