package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lyricsync/internal/export"
	"lyricsync/internal/player"
	"lyricsync/internal/transport"
)

const playTickInterval = 100 * time.Millisecond

type scheduleRow struct {
	Index int     `json:"index"`
	Time  float64 `json:"time"`
	Stamp string  `json:"stamp"`
	Gap   float64 `json:"gap"`
	Text  string  `json:"text"`
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var (
		schedule bool
		jsonOut  bool
		start    float64
		tail     float64
		upcoming int
	)

	cmd := &cobra.Command{
		Use:   "play <input.json>",
		Short: "Play a lyrics JSON file in sync with a clock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			track, err := player.Load(data)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			if schedule {
				rows := buildSchedule(track)
				if jsonOut {
					return writeJSON(cmd, rows)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSchedule(rows))
				return nil
			}

			if !cmd.Flags().Changed("tail") {
				tail = cfg.Export.SRTFinalDuration
			}
			clock := transport.NewClock(transport.WithStart(start))
			return playTrack(cmd.Context(), cmd.OutOrStdout(), track, clock, tail, max(upcoming, 0))
		},
	}

	cmd.Flags().BoolVar(&schedule, "schedule", false, "Print the timeline instead of playing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the schedule as JSON")
	cmd.Flags().Float64Var(&start, "start", 0, "Start playback at this position in seconds")
	cmd.Flags().Float64Var(&tail, "tail", 0, "Seconds to keep playing after the last line (default from config)")
	cmd.Flags().IntVar(&upcoming, "context", 0, "Upcoming lines to show after the active one")
	return cmd
}

func buildSchedule(track *player.Track) []scheduleRow {
	entries := track.Entries()
	rows := make([]scheduleRow, len(entries))
	for i, entry := range entries {
		gap := 0.0
		if i > 0 {
			gap = entry.Time - entries[i-1].Time
		}
		rows[i] = scheduleRow{
			Index: i + 1,
			Time:  entry.Time,
			Stamp: export.FormatLRCTime(entry.Time),
			Gap:   gap,
			Text:  entry.Text,
		}
	}
	return rows
}

func renderSchedule(rows []scheduleRow) string {
	tableRows := make([][]string, len(rows))
	for i, row := range rows {
		gap := ""
		if i > 0 {
			gap = "+" + strconv.FormatFloat(row.Gap, 'f', 1, 64) + "s"
		}
		tableRows[i] = []string{strconv.Itoa(row.Index), row.Stamp, gap, row.Text}
	}
	footer := fmt.Sprintf("Lines: %d", len(rows))
	return renderTable([]string{"#", "Time", "Gap", "Text"}, tableRows, []columnAlignment{alignRight, alignRight, alignRight, alignLeft}, footer)
}

// playTrack runs clock until the last line has been shown for tail seconds
// or ctx is done, printing each line as it becomes active.
func playTrack(ctx context.Context, out io.Writer, track *player.Track, clock *transport.Clock, tail float64, upcoming int) error {
	last := -1
	show := func(position float64) {
		active := track.ActiveIndex(position)
		if active < 0 || active == last {
			return
		}
		last = active
		for _, line := range track.Window(position, 0, upcoming) {
			if line.Active {
				fmt.Fprintf(out, "[%s] %s\n", export.FormatLRCTime(line.Time), line.Text)
				continue
			}
			fmt.Fprintf(out, "           %s\n", line.Text)
		}
	}

	show(clock.Position())
	remaining := track.Duration() + max(tail, 0) - clock.Position()
	if remaining <= 0 {
		return nil
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(remaining*float64(time.Second)))
	defer cancel()
	clock.OnPositionChanged(show)
	clock.Play()
	clock.Run(runCtx, playTickInterval)
	clock.Pause()

	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
