// Package logging assembles structured slog loggers and formatting helpers used
// across lyricsync commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so HTTP handlers and the capture
// session tag log lines with session and correlation IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command emits
// the same field names (event_type, entry_id, session_id) in both formats.
package logging
