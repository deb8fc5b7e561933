package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lyricsync/internal/lyrics"
)

// SRT renders entries as numbered subtitle cues. Each cue ends where the
// next one starts; the last cue lasts finalDuration seconds, or 3s when
// finalDuration is not positive.
func SRT(entries []lyrics.Entry, finalDuration float64) (string, error) {
	if len(entries) == 0 {
		return "", lyrics.ErrEmptyExportSet
	}
	if finalDuration <= 0 {
		finalDuration = defaultFinalDuration
	}

	var b strings.Builder
	for i, entry := range entries {
		end := entry.Time + finalDuration
		if i+1 < len(entries) {
			end = entries[i+1].Time
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, FormatSRTTime(entry.Time), FormatSRTTime(end), entry.Text)
	}
	return b.String(), nil
}

// FormatSRTTime formats seconds as HH:MM:SS,mmm. Hours do not wrap.
// Milliseconds are truncated, not rounded.
func FormatSRTTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	// The epsilon absorbs binary representation error so 3661.234 keeps its 234ms.
	total := int64(math.Floor(seconds*1000 + 1e-6))
	hours := total / 3_600_000
	minutes := total % 3_600_000 / 60_000
	secs := total % 60_000 / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseSRTTimestamp parses HH:MM:SS,mmm (a period separator is accepted)
// into seconds.
func ParseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// ValidateSRT checks rendered SRT content for format issues.
// An empty result means validation passed.
func ValidateSRT(content string) []string {
	normalized := strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if normalized == "" {
		return []string{"empty_subtitle_file"}
	}

	var issues []string
	var previousStart float64
	for i, block := range strings.Split(normalized, "\n\n") {
		cue := i + 1
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			issues = append(issues, fmt.Sprintf("incomplete_cue: cue %d", cue))
			continue
		}
		if seq, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil || seq != cue {
			issues = append(issues, fmt.Sprintf("sequence_mismatch: cue %d has %q", cue, lines[0]))
		}
		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			issues = append(issues, fmt.Sprintf("missing_timing: cue %d", cue))
			continue
		}
		start, errStart := ParseSRTTimestamp(parts[0])
		end, errEnd := ParseSRTTimestamp(parts[1])
		if errStart != nil || errEnd != nil {
			issues = append(issues, fmt.Sprintf("timestamp_parse_error: cue %d", cue))
			continue
		}
		if end < start {
			issues = append(issues, fmt.Sprintf("negative_duration: cue %d", cue))
		}
		if start < previousStart {
			issues = append(issues, fmt.Sprintf("out_of_order: cue %d", cue))
		}
		previousStart = start
	}
	return issues
}
