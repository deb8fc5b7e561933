package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lyricsync/internal/logging"
	"lyricsync/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines     int
		follow    bool
		sessionID string
		eventType string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the lyricsync log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			filter := logs.All(
				logs.FieldFilter(logging.FieldSessionID, sessionID),
				logs.FieldFilter(logging.FieldEventType, eventType),
			)

			out := cmd.OutOrStdout()
			result, err := logs.Tail(path, logs.TailOptions{Offset: -1, Limit: lines, Filter: filter})
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, result.Offset, 0, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&sessionID, "session", "", "Only show lines for this session id")
	cmd.Flags().StringVar(&eventType, "event", "", "Only show lines with this event type")
	return cmd
}
