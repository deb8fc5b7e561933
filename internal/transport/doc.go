// Package transport models the audio playback collaborator.
//
// The lyric core only ever reads a position and occasionally seeks, so the
// Transport interface is deliberately small. Clock is a wall-clock
// implementation used by the CLI and HTTP server when no real audio
// element is attached.
package transport
