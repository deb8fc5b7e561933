package main

import (
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/logging"
	"lyricsync/internal/session"
	"lyricsync/internal/transport"
)

func newCaptureCommand(ctx *commandContext) *cobra.Command {
	var (
		blind  bool
		start  float64
		title  string
		artist string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture lyric timings interactively",
		Long: "Start an interactive capture console on a playback clock.\n" +
			"Type a lyric and press Enter at the moment it is sung; the entry is\n" +
			"stamped with the current position. Type /help inside the console for\n" +
			"editing, paste staging, and export commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.fileLogger()
			if err != nil {
				return err
			}

			opts := session.OptionsFromConfig(cfg, logger)
			if cmd.Flags().Changed("blind") {
				opts.BlindMode = blind
			}
			if t := strings.TrimSpace(title); t != "" {
				opts.Export.Header.Title = t
			}
			if a := strings.TrimSpace(artist); a != "" {
				opts.Export.Header.Artist = a
			}

			clock := transport.NewClock(transport.WithStart(start))
			sess := session.New(clock, opts)
			logger.Info("capture console started",
				logging.String(logging.FieldSessionID, sess.ID()),
				logging.String(logging.FieldEventType, "console_started"),
			)

			out := cmd.OutOrStdout()
			console := newConsole(sess, cmd.InOrStdin(), out, cfg.Paths.ExportDir, shouldColorize(out))
			err = console.run()

			logger.Info("capture console finished",
				logging.String(logging.FieldSessionID, sess.ID()),
				logging.String(logging.FieldEventType, "console_finished"),
				logging.Int("entries", sess.Status().Entries),
			)
			return err
		},
	}

	cmd.Flags().BoolVar(&blind, "blind", false, "Hide captured text while capturing")
	cmd.Flags().Float64Var(&start, "start", 0, "Initial playback position in seconds")
	cmd.Flags().StringVar(&title, "title", "", "Song title for the LRC header")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist for the LRC header")
	return cmd
}
