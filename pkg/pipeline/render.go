package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Unless
// SkipBacks is set, every front page is followed by its mirrored back page.
func Render(ctx context.Context, fronts []layout.Page, opts Options) (map[string][]byte, error) {
	cfg := opts.Config
	pages := fronts
	if opts.Backs() {
		pages = layout.Interleave(fronts, cfg)
	}

	svgOpts := []sink.SVGOption{
		sink.WithSVGTitle(opts.Title),
		sink.WithSVGCutLines(opts.CutLines()),
	}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPDF:
			data, err = sink.RenderPDF(pages, cfg,
				sink.WithTitle(opts.Title),
				sink.WithCutLines(opts.CutLines()),
			)
		case FormatSVG:
			data = sink.RenderSVG(pages, cfg, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, pages, cfg,
				sink.WithPNGSVGOptions(svgOpts...),
				sink.WithScale(DefaultPNGScale),
			)
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONTitle(opts.Title)}
			if opts.Shuffle {
				jsonOpts = append(jsonOpts, sink.WithJSONSeed(opts.Seed))
			}
			data, err = sink.RenderJSON(pages, cfg, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
