// Package logs reads the lyricsync log file for the `lyricsync logs` command.
//
// It returns the last N lines with bounded memory, resumes from byte
// offsets, and follows the file as new lines arrive. Filters select lines by
// session or event type in both the console and JSON log formats.
package logs
