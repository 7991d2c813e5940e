// Package pkg provides the core libraries for tabooprint, a print-layout
// engine for Taboo-style word-guessing cards.
//
// # Overview
//
// tabooprint takes a deck of cards (a term to guess plus forbidden clue
// words) and produces sheets that can be printed double-sided and cut into
// cards whose backs line up with their fronts. The pkg directory is organized
// into these areas:
//
//  1. [deck] - Card and deck types, deck files, and deck sources
//  2. [layout] - The pagination engine and duplex mirroring
//  3. [render] - Output formats (PDF, SVG, PNG, JSON)
//  4. [pipeline] - Orchestration (shuffle → layout → backs → render)
//  5. [server] - HTTP adapter over the pipeline
//
// # Architecture
//
// The data flow through tabooprint:
//
//	Deck file / MongoDB
//	         ↓
//	    [deck] package (load and validate cards)
//	         ↓
//	    [layout] package (front pages + mirrored back pages)
//	         ↓
//	    [render/sink] package (draw cards)
//	         ↓
//	    PDF/SVG/PNG/JSON output
//
// # Quick Start
//
// Lay out a deck and write a duplex PDF:
//
//	import (
//	    "github.com/matzehuels/tabooprint/pkg/deck"
//	    "github.com/matzehuels/tabooprint/pkg/layout"
//	    "github.com/matzehuels/tabooprint/pkg/render/sink"
//	)
//
//	// 1. Load a deck
//	d, _ := deck.ReadFile("party.toml")
//
//	// 2. Place cards on front pages
//	cfg := layout.DefaultConfig()
//	fronts, _ := layout.Layout(d, cfg)
//
//	// 3. Pair every front with its mirrored back
//	pages := layout.Interleave(fronts, cfg)
//
//	// 4. Render to PDF
//	pdf, _ := sink.RenderPDF(pages, cfg)
//
// # Main Packages
//
// ## Domain Logic
//
// [deck] - Cards, decks, JSON/TOML deck files, and deck sources (directory,
// embedded samples, MongoDB).
//
// [layout] - Row-major placement of cards on a Columns × Rows grid, padding of
// the last page, and long- or short-edge mirroring of back pages.
//
// ## Rendering
//
// [render/sink] - Output formats: PDF via fpdf, SVG previews, JSON layout
// export. [render] converts SVG to PNG with rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Complete document pipeline used by both the CLI and the HTTP
// server so both produce identical documents for identical input.
//
// [cache] - Cache interface with file, Redis and no-op backends plus key
// derivation for layouts, artifacts and decks.
//
// [config] - TOML config file under $XDG_CONFIG_HOME/tabooprint.
//
// [observability] - Hook registry for pipeline, cache and HTTP events.
//
// [errors] - Structured errors with codes shared by the CLI and the server.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis-backed tests run when TABOOPRINT_REDIS_ADDR is set; MongoDB tests
// when TABOOPRINT_MONGO_URI is set.
//
// [deck]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/deck
// [layout]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tabooprint/pkg/errors
package pkg
