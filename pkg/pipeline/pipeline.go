// Package pipeline provides the document pipeline for tabooprint.
//
// This package implements the complete layout → back pages → render pipeline
// used by the CLI and the HTTP server. By centralizing this logic, both entry
// points produce identical documents for identical input.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Layout: Optionally shuffle the deck, then place its cards on front
//     pages with [layout.Layout]
//  2. Render: Pair each front with its mirrored back page and write the
//     requested formats (PDF, SVG, PNG, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, d, pipeline.Options{
//	    Config:  layout.DefaultConfig(),
//	    Formats: []string{pipeline.FormatPDF},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts[pipeline.FormatPDF]
//
// Code that only needs a PDF should depend on [DocumentGenerator], which
// [Runner] implements:
//
//	pdf, err := gen.GenerateDocument(ctx, d, cfg)
//
// [layout.Layout]: github.com/matzehuels/tabooprint/pkg/layout.Layout
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabooprint/pkg/cache"
	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultSeed is the shuffle seed used when shuffling without an explicit seed.
const DefaultSeed = uint64(42)

// DefaultPNGScale is the resolution multiplier for PNG previews.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the document pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Config  layout.PageConfig `json:"config"`
	Shuffle bool              `json:"shuffle,omitempty"`
	Seed    uint64            `json:"seed,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Title        string   `json:"title,omitempty"`
	SkipBacks    bool     `json:"skip_backs,omitempty"`     // Fronts only (default: false = render back pages)
	SkipCutLines bool     `json:"skip_cut_lines,omitempty"` // No cut guides (default: false = draw them)
	Refresh      bool     `json:"refresh,omitempty"`        // Ignore cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Deck is the deck as laid out (after shuffling, if requested).
	Deck deck.Deck

	// DeckHash is the content hash of Deck.
	DeckHash string

	// Fronts are the laid-out front pages.
	Fronts []layout.Page

	// Backs are the mirrored back pages, one per front. Nil when SkipBacks is set.
	Backs []layout.Page

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CardCount  int
	PageCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the pages came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is well formed and supported.
func ValidateFormat(format string) error {
	if err := errors.ValidateFormatName(format); err != nil {
		return err
	}
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout options. Only a zero Config is
// replaced, by [layout.DefaultConfig]; a partially set Config is kept as given
// so that Validate reports its zero fields instead of them being guessed.
func (o *Options) SetLayoutDefaults() {
	if o.Config == (layout.PageConfig{}) {
		o.Config = layout.DefaultConfig()
	}
	if o.Shuffle && o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and validates the page configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Backs reports whether back pages are rendered.
func (o *Options) Backs() bool { return !o.SkipBacks }

// CutLines reports whether cut guides are drawn.
func (o *Options) CutLines() bool { return !o.SkipCutLines }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Columns:     o.Config.Columns,
		Rows:        o.Config.Rows,
		CardWidth:   o.Config.CardWidth,
		CardHeight:  o.Config.CardHeight,
		Margin:      o.Config.Margin,
		PaperWidth:  o.Config.Paper.Width,
		PaperHeight: o.Config.Paper.Height,
		Duplex:      string(o.Config.Duplex),
		Shuffle:     o.Shuffle,
		Seed:        o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Title:    o.Title,
		Backs:    o.Backs(),
		CutLines: o.CutLines(),
	}
}

// String summarizes the options for log output.
func (o *Options) String() string {
	return fmt.Sprintf("%s formats=%v backs=%t", o.Config, o.Formats, o.Backs())
}
