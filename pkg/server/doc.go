// Package server exposes document generation over HTTP.
//
// The server is a thin adapter: it resolves a deck from a [deck.Source],
// merges layout overrides from the request into its default
// [layout.PageConfig], and streams the bytes produced by a
// [pipeline.DocumentGenerator] back to the caller. Nothing is written to
// disk; each request renders into memory.
//
// # Routes
//
//	GET  /healthz                      liveness and build version
//	GET  /v1/decks                     deck names
//	GET  /v1/decks/{name}              deck as JSON
//	GET  /v1/decks/{name}/cards.pdf    printable PDF
//	POST /v1/render                    PDF for a deck in the request body
//
// The PDF route accepts the query parameters paper, landscape, columns,
// rows, margin and duplex. The POST body is
//
//	{"deck": {"name": "...", "cards": [...]}, "config": {"columns": 2}}
//
// # Errors
//
// Failures are JSON objects {"code", "message", "request_id"}. Invalid input
// maps to 400, missing decks to 404 and everything else to 500. Every
// response carries an X-Request-ID header.
package server
