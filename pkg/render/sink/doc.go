// Package sink renders laid-out pages into output formats.
//
// # Overview
//
// A "sink" transforms the pages produced by [layout.Layout] and
// [layout.RenderBackPage] into a final format:
//
//   - PDF: print-ready document, one PDF page per laid-out page
//   - SVG: preview sheet with every page stacked vertically
//   - PNG: raster preview (requires rsvg-convert)
//   - JSON: page and cell geometry for external tools
//
// Sinks render pages in the order given. For duplex printing pass the
// result of [layout.Interleave] so each front is followed by its back.
//
// # PDF Output
//
// [RenderPDF] writes the document with github.com/go-pdf/fpdf using the
// built-in Helvetica font. Front cells show the term in a coloured band with
// the forbidden words below it; back cells show the deck title, the card
// number and the optional prompt. Empty cells are left blank. Dashed cut
// lines are drawn along every grid line unless disabled.
//
//	pdf, err := sink.RenderPDF(layout.Interleave(fronts, cfg), cfg,
//	    sink.WithTitle("Ultrasound"),
//	)
//
// Output is byte-for-byte reproducible: the creation date is fixed (see
// [WithCreationDate]) and the PDF catalog is sorted.
//
// # PNG Output
//
// [RenderPNG] renders the SVG preview and converts it via [render.ToPNG].
// This requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/matzehuels/tabooprint/pkg/layout.Layout
// [layout.RenderBackPage]: github.com/matzehuels/tabooprint/pkg/layout.RenderBackPage
// [layout.Interleave]: github.com/matzehuels/tabooprint/pkg/layout.Interleave
// [render.ToPNG]: github.com/matzehuels/tabooprint/pkg/render.ToPNG
package sink
