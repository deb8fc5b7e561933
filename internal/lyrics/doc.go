// Package lyrics owns the in-memory lyric timing model.
//
// Store keeps captured entries sorted ascending by time after every
// mutation and tracks the single entry open for editing. Each entry carries
// a monotonic creation id, so undo always removes the most recently created
// line and the edit pointer keeps following the same row across re-sorts.
// Staging holds time-less lines from a multi-line paste until each one is
// promoted into the Store individually.
//
// The package never touches a clock, a terminal, or the network. Callers
// supply the playback position and any human confirmation as plain values.
package lyrics
