// Package config loads, normalizes, and validates lyricsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LYRICSYNC_API_TOKEN. A .env file next to the working directory or the
// config file is loaded first so those fallbacks can live outside the shell.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical export formats, and clear validation errors.
package config
