// Package session binds the lyric store, staging buffer, and audio
// transport into one capture session.
//
// A Session is the unit the CLI console and the HTTP API drive. It reads the
// transport position at capture time, normalizes incoming text, gates
// destructive operations on explicit confirmation, and logs every mutation
// with the session id attached. All methods are safe for concurrent use.
package session
