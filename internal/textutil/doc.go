// Package textutil provides text helpers shared by capture and export.
//
// The primary use cases are:
//   - Normalizing typed or pasted lyric text before it reaches the store
//   - Sanitizing export filenames for safe filesystem use
//
// Lyric text is normalized to Unicode NFC so visually identical lines
// compare and export identically regardless of input method.
package textutil
