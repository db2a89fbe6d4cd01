package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/tui"
)

const askWidth = 80

func newAskCmd(cfg *config.Config) *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the conversation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := build(ctx, *cfg, true)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			if err := a.service.Run(ctx, strings.Join(args, " ")); err != nil {
				return err
			}

			painter, err := tui.NewPainter(askWidth, style)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, msg := range a.store.Snapshot() {
				n, err := a.dispatcher.Render(msg)
				if err != nil {
					a.logger.Error("message not rendered", zap.Error(err))
					fmt.Fprintln(out, painter.Placeholder())
					continue
				}
				fmt.Fprintln(out, painter.Paint(n, ""))
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style for text replies (auto, dark, light, notty)")
	return cmd
}
