package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/config"
	"lyricsync/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		input         string
		formatFlag    string
		output        string
		title         string
		artist        string
		finalDuration float64
		validate      bool
	)

	cmd := &cobra.Command{
		Use:   "export [input.json]",
		Short: "Convert a lyrics JSON file to json, lrc, or srt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := strings.TrimSpace(input)
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("an input file is required (argument or --input)")
			}

			formatName := formatFlag
			if strings.TrimSpace(formatName) == "" {
				formatName = cfg.Export.DefaultFormat
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return fmt.Errorf("%w (want one of json, lrc, srt)", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			entries, err := export.ParseJSON(data)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			opts := export.Options{
				Header:        export.LRCHeader{Title: cfg.Export.LRCTitle, Artist: cfg.Export.LRCArtist},
				FinalDuration: cfg.Export.SRTFinalDuration,
			}
			if cmd.Flags().Changed("title") {
				opts.Header.Title = title
			}
			if cmd.Flags().Changed("artist") {
				opts.Header.Artist = artist
			}
			if cmd.Flags().Changed("final-duration") {
				opts.FinalDuration = finalDuration
			}

			body, err := export.Render(format, entries, opts)
			if err != nil {
				return err
			}
			if validate && format == export.FormatSRT {
				if issues := export.ValidateSRT(body); len(issues) > 0 {
					return fmt.Errorf("srt validation failed: %s", strings.Join(issues, "; "))
				}
			}

			target := strings.TrimSpace(output)
			if target == "" || target == "-" {
				out := cmd.OutOrStdout()
				fmt.Fprint(out, body)
				if !strings.HasSuffix(body, "\n") {
					fmt.Fprintln(out)
				}
				return nil
			}
			target, err = config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := writeExportFile(target, body); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries as %s to %s\n", len(entries), format, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Lyrics JSON file to read")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, lrc, or srt (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (stdout when empty or -)")
	cmd.Flags().StringVar(&title, "title", "", "Song title for the LRC header")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist for the LRC header")
	cmd.Flags().Float64Var(&finalDuration, "final-duration", 0, "Seconds the last SRT cue stays on screen")
	cmd.Flags().BoolVar(&validate, "validate", false, "Check SRT output for sequencing and timing issues")
	return cmd
}
