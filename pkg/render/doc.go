// Package render turns laid-out pages into printable and previewable output.
//
// # Overview
//
// Rendering is split in two parts:
//
//   - Format conversion helpers in this package (SVG to PNG)
//   - Output sinks in the [sink] subpackage (PDF, SVG, PNG, JSON)
//
// # Format Conversion
//
// [ToPNG] rasterizes any SVG using the external rsvg-convert tool (from
// librsvg). The PDF sink does not need it; PDFs are written directly.
//
//	svg := sink.RenderSVG(pages, cfg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [sink]: github.com/matzehuels/tabooprint/pkg/render/sink
package render
