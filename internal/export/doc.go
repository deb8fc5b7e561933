// Package export renders lyric entries as JSON, LRC, or SRT text and loads
// the JSON shape back for player mode.
//
// Every renderer is a pure function over a snapshot and emits entries in the
// order given; callers pass a time-sorted snapshot for valid LRC and SRT
// output. An empty snapshot is rejected with lyrics.ErrEmptyExportSet.
package export
