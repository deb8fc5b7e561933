// Package main hosts the lyricsync CLI entrypoint and command graph.
//
// The Cobra command tree exposes an interactive capture console, offline
// export and playback of lyrics files, the local HTTP capture API, and
// configuration scaffolding. Configuration resolution and logger setup live
// here so subcommands only deal with presentation; timing semantics belong
// to the internal packages.
package main
