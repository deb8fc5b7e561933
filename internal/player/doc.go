// Package player drives read-only synced-lyric playback over an imported
// track.
//
// A Track is loaded from the JSON export format and answers which line is
// active for a given audio position. It never mutates the lines it holds.
package player
