package export

import (
	"fmt"
	"strings"

	"lyricsync/internal/lyrics"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatLRC  Format = "lrc"
	FormatSRT  Format = "srt"
)

const (
	defaultLRCTitle      = "Song Title"
	defaultLRCArtist     = "Artist Name"
	defaultFinalDuration = 3.0
)

// Formats lists the supported encodings in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatLRC, FormatSRT}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatLRC:
		return FormatLRC, nil
	case FormatSRT:
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("format %q: %w", value, lyrics.ErrUnsupportedFormat)
	}
}

// Extension returns the conventional file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// LRCHeader carries the metadata tags written at the top of an LRC file.
type LRCHeader struct {
	Title  string
	Artist string
}

// Options tunes the renderers.
type Options struct {
	Header LRCHeader
	// FinalDuration is how long the last SRT cue stays on screen, in seconds.
	FinalDuration float64
}

// DefaultOptions returns placeholder LRC tags and a 3s final SRT cue.
func DefaultOptions() Options {
	return Options{
		Header:        LRCHeader{Title: defaultLRCTitle, Artist: defaultLRCArtist},
		FinalDuration: defaultFinalDuration,
	}
}

// Render encodes entries in the requested format.
func Render(format Format, entries []lyrics.Entry, opts Options) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(entries)
	case FormatLRC:
		return LRC(entries, opts.Header)
	case FormatSRT:
		return SRT(entries, opts.FinalDuration)
	default:
		return "", fmt.Errorf("format %q: %w", format, lyrics.ErrUnsupportedFormat)
	}
}
