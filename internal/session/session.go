package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"lyricsync/internal/config"
	"lyricsync/internal/export"
	"lyricsync/internal/logging"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/textutil"
	"lyricsync/internal/transport"
)

const defaultNudgeStep = 0.1

// Options configures a Session.
type Options struct {
	ID            string
	Logger        *slog.Logger
	NudgeStep     float64
	BlindMode     bool
	Export        export.Options
	DefaultFormat export.Format
}

// OptionsFromConfig maps configuration onto session options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	opts := Options{Logger: logger, NudgeStep: defaultNudgeStep, Export: export.DefaultOptions(), DefaultFormat: export.FormatLRC}
	if cfg == nil {
		return opts
	}
	opts.NudgeStep = cfg.Capture.NudgeStep
	opts.BlindMode = cfg.Capture.BlindMode
	opts.Export = export.Options{
		Header:        export.LRCHeader{Title: cfg.Export.LRCTitle, Artist: cfg.Export.LRCArtist},
		FinalDuration: cfg.Export.SRTFinalDuration,
	}
	if format, err := export.ParseFormat(cfg.Export.DefaultFormat); err == nil {
		opts.DefaultFormat = format
	}
	return opts
}

// Session is one capture session over a transport.
type Session struct {
	mu        sync.Mutex
	id        string
	store     *lyrics.Store
	staging   *lyrics.Staging
	transport transport.Transport
	logger    *slog.Logger
	nudgeStep float64
	blind     bool
	exportOpt export.Options
	format    export.Format
}

// New creates a session reading positions from t.
func New(t transport.Transport, opts Options) *Session {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	step := opts.NudgeStep
	if step <= 0 {
		step = defaultNudgeStep
	}
	format := opts.DefaultFormat
	if format == "" {
		format = export.FormatLRC
	}
	logger := logging.NewComponentLogger(opts.Logger, "session").With(logging.String(logging.FieldSessionID, id))
	return &Session{
		id:        id,
		store:     lyrics.NewStore(),
		staging:   lyrics.NewStaging(),
		transport: t,
		logger:    logger,
		nudgeStep: step,
		blind:     opts.BlindMode,
		exportOpt: opts.Export,
		format:    format,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// NudgeStep returns the configured nudge step in seconds.
func (s *Session) NudgeStep() float64 { return s.nudgeStep }

// DefaultFormat returns the configured export format.
func (s *Session) DefaultFormat() export.Format { return s.format }

// Position returns the current playback position.
func (s *Session) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.Position()
}

// Commit captures text at the current position, or commits the open edit.
func (s *Session) Commit(text string) (lyrics.CaptureResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position := s.transport.Position()
	result, err := s.store.Capture(textutil.NormalizeLine(text), position)
	if err != nil {
		s.rejected("commit", err)
		return result, err
	}
	if result.Edited {
		s.logger.Info("entry edited",
			logging.String(logging.FieldEventType, "entry_edited"),
			logging.Uint64(logging.FieldEntryID, result.Entry.ID),
			logging.Int("index", result.Index),
		)
		return result, nil
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "entry_captured"),
		logging.Uint64(logging.FieldEntryID, result.Entry.ID),
		logging.Float64("time", result.Entry.Time),
		logging.Int("index", result.Index),
	}
	if result.HasDelta {
		attrs = append(attrs, logging.Float64("delta", result.Delta))
	}
	s.logger.Info("entry captured", logging.Args(attrs...)...)
	return result, nil
}

// Paste stages a multi-line paste. It reports false, staging nothing, when
// the paste holds fewer than two non-blank lines; the caller then treats the
// text as ordinary input.
func (s *Session) Paste(raw string) ([]lyrics.StagedLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, ok := s.staging.Stage(textutil.NormalizeBlock(raw))
	if ok {
		s.logger.Info("lines staged",
			logging.String(logging.FieldEventType, "lines_staged"),
			logging.Int("count", len(staged)),
			logging.Int("staged_total", s.staging.Len()),
		)
	}
	return staged, ok
}

// Staged returns a copy of the staged lines.
func (s *Session) Staged() []lyrics.StagedLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staging.Lines()
}

// Promote commits staged line index at the current position.
func (s *Session) Promote(index int) (lyrics.CaptureResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.staging.Promote(index, s.store, s.transport.Position())
	if err != nil {
		s.rejected("promote", err)
		return result, err
	}
	s.logger.Info("staged line promoted",
		logging.String(logging.FieldEventType, "line_promoted"),
		logging.Uint64(logging.FieldEntryID, result.Entry.ID),
		logging.Float64("time", result.Entry.Time),
	)
	return result, nil
}

// Discard drops staged line index.
func (s *Session) Discard(index int) (lyrics.StagedLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.staging.Discard(index)
	if err != nil {
		s.rejected("discard", err)
		return line, err
	}
	s.logger.Info("staged line discarded", logging.String(logging.FieldEventType, "line_discarded"))
	return line, nil
}

// StartEdit opens entry index for editing and returns it.
func (s *Session) StartEdit(index int) (lyrics.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.StartEdit(index)
	if err != nil {
		s.rejected("edit", err)
		return entry, err
	}
	s.logger.Debug("edit started",
		logging.String(logging.FieldEventType, "edit_started"),
		logging.Uint64(logging.FieldEntryID, entry.ID),
	)
	return entry, nil
}

// CancelEdit closes the open edit, reporting whether one was open.
func (s *Session) CancelEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CancelEdit()
}

// Nudge shifts the edited entry by delta seconds.
func (s *Session) Nudge(delta float64) (lyrics.NudgeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.store.Nudge(delta)
	if err != nil {
		s.rejected("nudge", err)
		return result, err
	}
	s.logger.Info("entry nudged",
		logging.String(logging.FieldEventType, "entry_nudged"),
		logging.Uint64(logging.FieldEntryID, result.Entry.ID),
		logging.Float64("previous", result.Previous),
		logging.Float64("time", result.Entry.Time),
	)
	return result, nil
}

// NudgeSteps shifts the edited entry by steps multiples of the nudge step.
func (s *Session) NudgeSteps(steps int) (lyrics.NudgeResult, error) {
	return s.Nudge(float64(steps) * s.nudgeStep)
}

// Delete removes entry index once confirmed.
func (s *Session) Delete(index int, confirmed bool) (lyrics.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.Delete(index, confirmed)
	if err != nil {
		s.rejected("delete", err)
		return entry, err
	}
	s.logger.Info("entry deleted",
		logging.String(logging.FieldEventType, "entry_deleted"),
		logging.Uint64(logging.FieldEntryID, entry.ID),
	)
	return entry, nil
}

// Undo removes the most recently created entry.
func (s *Session) Undo() (lyrics.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.Undo()
	if err != nil {
		s.rejected("undo", err)
		return entry, err
	}
	s.logger.Info("entry undone",
		logging.String(logging.FieldEventType, "entry_undone"),
		logging.Uint64(logging.FieldEntryID, entry.ID),
	)
	return entry, nil
}

// Clear removes every entry and staged line once confirmed. It returns the
// number of entries removed.
func (s *Session) Clear(confirmed bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Clear(confirmed)
	if err != nil {
		s.rejected("clear", err)
		return 0, err
	}
	staged := s.staging.Clear()
	s.logger.Info("session cleared",
		logging.String(logging.FieldEventType, "entries_cleared"),
		logging.Int("entries", removed),
		logging.Int("staged", staged),
	)
	return removed, nil
}

// SeekTo moves playback to entry index and plays.
func (s *Session) SeekTo(index int) (lyrics.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.At(index)
	if err != nil {
		s.rejected("seek", err)
		return entry, err
	}
	s.transport.Seek(entry.Time)
	s.transport.Play()
	s.logger.Debug("seek to entry",
		logging.String(logging.FieldEventType, "playback_seek"),
		logging.Uint64(logging.FieldEntryID, entry.ID),
		logging.Float64("time", entry.Time),
	)
	return entry, nil
}

// SeekPosition moves playback to seconds without changing play state.
func (s *Session) SeekPosition(seconds float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.Seek(seconds)
	return s.transport.Position()
}

// Play starts playback.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.Play()
}

// Pause pauses playback.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.Pause()
}

// TogglePlayback flips play/pause and reports whether audio is now playing.
func (s *Session) TogglePlayback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	playing := transport.Toggle(s.transport)
	s.logger.Debug("playback toggled",
		logging.String(logging.FieldEventType, "playback_toggled"),
		logging.Bool("playing", playing),
	)
	return playing
}

// SetBlindMode toggles hiding committed text in Rows.
func (s *Session) SetBlindMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blind == enabled {
		return
	}
	s.blind = enabled
	s.logger.Info("blind mode changed",
		logging.String(logging.FieldEventType, "blind_mode_changed"),
		logging.Bool("blind_mode", enabled),
	)
}

// Entries returns a sorted copy of the captured entries.
func (s *Session) Entries() []lyrics.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

func (s *Session) rejected(op string, err error) {
	s.logger.Debug(op+" rejected",
		logging.String(logging.FieldEventType, op+"_rejected"),
		logging.String("kind", string(lyrics.KindOf(err))),
		logging.Error(err),
	)
}
