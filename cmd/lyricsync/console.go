package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"lyricsync/internal/config"
	"lyricsync/internal/export"
	"lyricsync/internal/fileutil"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/session"
	"lyricsync/internal/textutil"
)

const consoleHelp = `Type a lyric and press Enter to capture it at the current position.
An empty line toggles play/pause.

  /play /pause /toggle      playback control
  /seek T                   jump to T seconds
  /goto N                   jump to entry N and play
  /edit N                   edit entry N (next text line replaces it)
  /cancel                   cancel the open edit
  /nudge + | - | D          shift the edited entry one step or D seconds
  /delete N                 delete entry N (asks for confirmation)
  /undo                     remove the most recently captured entry
  /clear                    remove everything (asks for confirmation)
  /paste ... /end           stage the lines between /paste and /end
  /staged                   list staged lines
  /promote N | /discard N   commit or drop staged line N
  /list                     show captured entries
  /blind on|off             hide or show captured text
  /status                   show session status
  /export FMT [PATH|-]      write json, lrc, or srt (default export dir)
  /quit                     leave the console
`

// console is a line-oriented capture surface over a session.
type console struct {
	session   *session.Session
	in        *bufio.Scanner
	out       io.Writer
	exportDir string
	color     bool
}

func newConsole(sess *session.Session, in io.Reader, out io.Writer, exportDir string, color bool) *console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &console{session: sess, in: scanner, out: out, exportDir: exportDir, color: color}
}

// inputError marks a failure reading the console input stream.
type inputError struct{ err error }

func (e *inputError) Error() string { return "read input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// run reads commands until /quit or end of input. Command failures,
// including export writes, are reported and the loop continues; only input
// stream failures are returned.
func (c *console) run() error {
	c.printf("Session %s. Type /help for commands.\n", c.session.ID())
	for c.in.Scan() {
		quit, err := c.handle(c.in.Text())
		if err != nil {
			var inErr *inputError
			if errors.As(err, &inErr) {
				return inErr
			}
			c.warn(err)
		}
		if quit {
			return nil
		}
	}
	return c.in.Err()
}

func (c *console) handle(line string) (bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		if c.session.TogglePlayback() {
			c.printf("playing from %.1fs\n", c.session.Position())
		} else {
			c.printf("paused at %.1fs\n", c.session.Position())
		}
		return false, nil
	}
	if !strings.HasPrefix(trimmed, "/") {
		return false, c.commit(line)
	}

	fields := strings.Fields(trimmed)
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		c.printf("%s", consoleHelp)
	case "/play":
		c.session.Play()
		c.printf("playing\n")
	case "/pause":
		c.session.Pause()
		c.printf("paused at %.1fs\n", c.session.Position())
	case "/toggle":
		return c.handle("")
	case "/seek":
		seconds, err := floatArg(args)
		if err != nil {
			return false, err
		}
		c.printf("position %.1fs\n", c.session.SeekPosition(seconds))
	case "/goto":
		index, err := indexArg(args)
		if err != nil {
			return false, err
		}
		entry, err := c.session.SeekTo(index)
		if err != nil {
			return false, err
		}
		c.printf("playing from %gs\n", entry.Time)
	case "/edit":
		index, err := indexArg(args)
		if err != nil {
			return false, err
		}
		entry, err := c.session.StartEdit(index)
		if err != nil {
			return false, err
		}
		c.printf("editing %d @ %gs: %s\n", index+1, entry.Time, entry.Text)
		c.printf("type the replacement text; /nudge shifts the time by %gs\n", c.session.NudgeStep())
	case "/cancel":
		if c.session.CancelEdit() {
			c.printf("edit cancelled\n")
		} else {
			c.printf("no edit open\n")
		}
	case "/nudge":
		return false, c.nudge(args)
	case "/delete":
		return false, c.deleteEntry(args)
	case "/undo":
		entry, err := c.session.Undo()
		if err != nil {
			return false, err
		}
		c.printf("undone: %s @ %gs\n", entry.Text, entry.Time)
	case "/clear":
		return false, c.clear()
	case "/paste":
		return false, c.paste()
	case "/staged":
		c.printStaged()
	case "/promote":
		index, err := indexArg(args)
		if err != nil {
			return false, err
		}
		result, err := c.session.Promote(index)
		if err != nil {
			return false, err
		}
		c.printCapture(result)
	case "/discard":
		index, err := indexArg(args)
		if err != nil {
			return false, err
		}
		line, err := c.session.Discard(index)
		if err != nil {
			return false, err
		}
		c.printf("discarded: %s\n", line.Text)
	case "/list":
		c.printList()
	case "/blind":
		return false, c.blind(args)
	case "/status":
		c.printStatus()
	case "/export":
		return false, c.export(args)
	default:
		c.printf("unknown command %s (try /help)\n", fields[0])
	}
	return false, nil
}

func (c *console) commit(text string) error {
	result, err := c.session.Commit(text)
	if err != nil {
		return err
	}
	c.printCapture(result)
	return nil
}

func (c *console) printCapture(result lyrics.CaptureResult) {
	if result.Edited {
		c.printf("updated %d: %s\n", result.Index+1, result.Entry.Text)
		return
	}
	if result.HasDelta {
		c.printf("captured %d @ %.1fs (Δ %.1fs)\n", result.Index+1, result.Entry.Time, result.Delta)
		return
	}
	c.printf("captured %d @ %.1fs\n", result.Index+1, result.Entry.Time)
}

func (c *console) nudge(args []string) error {
	if len(args) != 1 {
		return usageError("/nudge + | - | SECONDS")
	}
	var (
		result lyrics.NudgeResult
		err    error
	)
	switch args[0] {
	case "+":
		result, err = c.session.NudgeSteps(1)
	case "-":
		result, err = c.session.NudgeSteps(-1)
	default:
		delta, perr := strconv.ParseFloat(args[0], 64)
		if perr != nil {
			return usageError("/nudge + | - | SECONDS")
		}
		result, err = c.session.Nudge(delta)
	}
	if err != nil {
		return err
	}
	c.printf("time nudged to %gs (entry %d)\n", result.Entry.Time, result.Index+1)
	return nil
}

func (c *console) deleteEntry(args []string) error {
	index, err := indexArg(args)
	if err != nil {
		return err
	}
	entry, err := c.session.Entry(index)
	if err != nil {
		return err
	}
	ok, err := c.confirm(fmt.Sprintf("Delete %q?", entry.Text))
	if err != nil {
		return err
	}
	if _, err := c.session.Delete(index, ok); err != nil {
		if errors.Is(err, lyrics.ErrNotConfirmed) {
			c.printf("kept\n")
			return nil
		}
		return err
	}
	c.printf("entry deleted\n")
	return nil
}

func (c *console) clear() error {
	count := c.session.Status().Entries
	ok, err := c.confirm(fmt.Sprintf("Clear all %d lyrics? This cannot be undone.", count))
	if err != nil {
		return err
	}
	removed, err := c.session.Clear(ok)
	if err != nil {
		if errors.Is(err, lyrics.ErrNotConfirmed) {
			c.printf("kept\n")
			return nil
		}
		return err
	}
	c.printf("cleared %d entries\n", removed)
	return nil
}

func (c *console) confirm(prompt string) (bool, error) {
	c.printf("%s [y/N] ", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return false, &inputError{err: err}
		}
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes", nil
}

func (c *console) paste() error {
	var lines []string
	for c.in.Scan() {
		line := c.in.Text()
		if strings.EqualFold(strings.TrimSpace(line), "/end") {
			break
		}
		lines = append(lines, line)
	}
	if err := c.in.Err(); err != nil {
		return &inputError{err: err}
	}
	raw := strings.Join(lines, "\n")
	staged, ok := c.session.Paste(raw)
	if !ok {
		single := strings.TrimSpace(textutil.NormalizeBlock(raw))
		if single == "" {
			c.printf("nothing pasted\n")
			return nil
		}
		return c.commit(single)
	}
	c.printf("staged %d lines; /promote N commits one at the current position\n", len(staged))
	return nil
}

func (c *console) blind(args []string) error {
	if len(args) != 1 {
		return usageError("/blind on|off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		c.session.SetBlindMode(true)
		c.printf("blind mode on: timing only\n")
	case "off", "false", "0":
		c.session.SetBlindMode(false)
		c.printf("blind mode off\n")
	default:
		return usageError("/blind on|off")
	}
	return nil
}

func (c *console) export(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usageError("/export json|lrc|srt [PATH|-]")
	}
	format, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}
	body, err := c.session.Export(format)
	if err != nil {
		return err
	}
	if len(args) == 2 && args[1] == "-" {
		c.printf("%s", body)
		if !strings.HasSuffix(body, "\n") {
			c.printf("\n")
		}
		return nil
	}

	var target string
	if len(args) == 2 {
		target, err = config.ExpandPath(args[1])
		if err != nil {
			return err
		}
	} else {
		header := c.session.ExportHeader()
		target = filepath.Join(c.exportDir, textutil.ExportFileName(header.Title, header.Artist, format.Extension()))
	}
	if err := writeExportFile(target, body); err != nil {
		return err
	}
	c.printf("wrote %s\n", target)
	return nil
}

func (c *console) printList() {
	rows := c.session.Rows()
	if len(rows) == 0 {
		c.printf("no lyrics captured yet: play the song, type a lyric, press Enter\n")
		return
	}
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		text := row.Text
		if row.Hidden {
			text = "(timing captured)"
		}
		marker := ""
		if row.Editing {
			marker = "editing"
		}
		tableRows = append(tableRows, []string{strconv.Itoa(row.Index + 1), formatSeconds(row.Time), text, marker})
	}
	footer := fmt.Sprintf("Lines captured: %d", len(rows))
	c.printf("%s\n", renderTable([]string{"#", "Time", "Text", ""}, tableRows, []columnAlignment{alignRight, alignRight, alignLeft, alignLeft}, footer))
}

func (c *console) printStaged() {
	lines := c.session.Staged()
	if len(lines) == 0 {
		c.printf("nothing staged\n")
		return
	}
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = []string{strconv.Itoa(i + 1), line.Text}
	}
	c.printf("%s\n", renderTable([]string{"#", "Staged"}, rows, []columnAlignment{alignRight, alignLeft}, ""))
}

func (c *console) printStatus() {
	status := c.session.Status()
	playback := fmt.Sprintf("playing @ %.1fs", status.Position)
	if status.Paused {
		playback = fmt.Sprintf("paused @ %.1fs", status.Position)
	}
	editing := "none"
	if status.EditingIndex != nil {
		editing = strconv.Itoa(*status.EditingIndex + 1)
	}
	last := "none"
	if status.LastCapture != nil {
		last = formatSeconds(*status.LastCapture)
	}
	lines := renderSectionHeader("Session "+status.SessionID, c.color)
	lines = append(lines,
		renderStatusLine("Playback", statusInfo, playback, c.color),
		renderStatusLine("Lines captured", statusOK, strconv.Itoa(status.Entries), c.color),
		renderStatusLine("Staged", statusInfo, strconv.Itoa(status.Staged), c.color),
		renderStatusLine("Editing", statusInfo, editing, c.color),
		renderStatusLine("Last capture", statusInfo, last, c.color),
		renderStatusLine("Blind mode", statusInfo, yesNo(status.BlindMode), c.color),
	)
	c.printf("%s\n", strings.Join(lines, "\n"))
}

func (c *console) warn(err error) {
	c.printf("%s\n", renderStatusLine("Warning", statusWarn, err.Error(), c.color))
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func writeExportFile(target, body string) error {
	if err := fileutil.WriteFile(target, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64) + "s"
}

// indexArg parses a 1-based entry number into a 0-based index.
func indexArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, usageError("expected one entry number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, usageError("entry number must be an integer")
	}
	return n - 1, nil
}

func floatArg(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, usageError("expected seconds")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, usageError("seconds must be a number")
	}
	return v, nil
}

// usageError is reported like a core failure so the console keeps running.
func usageError(msg string) error {
	return &lyrics.Error{Kind: "usage", Message: "usage: " + msg}
}
