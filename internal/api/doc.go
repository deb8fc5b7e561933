// Package api serves one capture session over HTTP JSON.
//
// # Key Types
//
// Server: owns the listener, routes, and bearer-token middleware.
//
// StatusResponse, EntryRow, CaptureResponse: wire DTOs translated from
// session and lyrics types by the From* converters.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Errors are returned as {"error","kind"}
// where kind is the lyrics error kind, so clients can branch without parsing
// messages. Destructive routes require ?confirm=true and answer 412 without
// it. Exports are returned as the raw rendered document, not wrapped in JSON.
package api
