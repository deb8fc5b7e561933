// Package preflight provides readiness checks for the filesystem paths and
// listen address lyricsync depends on.
//
// `lyricsync config validate` prints every result; `lyricsync serve` runs
// the same checks and refuses to start when one fails.
package preflight
