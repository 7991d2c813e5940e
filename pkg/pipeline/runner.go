package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabooprint/pkg/cache"
	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
//
// The deck is validated first. Invalid options fail with
// INVALID_CONFIGURATION or INVALID_FORMAT before any work is done.
func (r *Runner) Execute(ctx context.Context, d deck.Deck, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	if opts.Shuffle {
		d = d.Shuffle(opts.Seed)
	}
	deckHash, err := hashDeck(d)
	if err != nil {
		return nil, err
	}
	fronts, layoutHit, err := r.layoutPages(ctx, d, deckHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Deck = d
	result.DeckHash = deckHash
	result.Fronts = fronts
	if opts.Backs() {
		result.Backs = layout.RenderBackPages(fronts, opts.Config)
		duplex, _ := layout.ParseDuplex(string(opts.Config.Duplex))
		observability.Pipeline().OnBackPages(ctx, d.Name, len(result.Backs), string(duplex))
	}
	result.Stats.CardCount = d.Len()
	result.Stats.PageCount = len(fronts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger := opts.Logger.With("deck", d.Name)
	logger.Info("laid out cards",
		"cards", d.Len(),
		"pages", len(fronts),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderArtifacts(ctx, d, deckHash, fronts, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out the front pages of d with caching and returns
// cache hit info. The deck is used as given; shuffling happens in Execute.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d deck.Deck, opts Options) ([]layout.Page, bool, error) {
	deckHash, err := hashDeck(d)
	if err != nil {
		return nil, false, err
	}
	return r.layoutPages(ctx, d, deckHash, opts)
}

func (r *Runner) layoutPages(ctx context.Context, d deck.Deck, deckHash string, opts Options) ([]layout.Page, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	cacheKey := r.layoutKey(deckHash, opts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var pages []layout.Page
			if err := json.Unmarshal(data, &pages); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return pages, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, d.Name, d.Len())
	pages, err := layout.Layout(d, opts.Config)
	observability.Pipeline().OnLayoutComplete(ctx, d.Name, len(pages), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(pages); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Debug("cache layout", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return pages, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d deck.Deck, opts Options) ([]layout.Page, error) {
	pages, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return pages, err
}

// RenderWithCacheInfo renders the front pages of d (and their backs) with
// caching and returns cache hit info. The hit flag is true only when every
// requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d deck.Deck, fronts []layout.Page, opts Options) (map[string][]byte, bool, error) {
	deckHash, err := hashDeck(d)
	if err != nil {
		return nil, false, err
	}
	return r.renderArtifacts(ctx, d, deckHash, fronts, opts)
}

func (r *Runner) renderArtifacts(ctx context.Context, d deck.Deck, deckHash string, fronts []layout.Page, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if opts.Title == "" {
		opts.Title = d.DisplayTitle()
	}
	layoutHash := cache.Hash([]byte(r.layoutKey(deckHash, opts)))

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, fronts, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache artifact", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// GenerateDocument lays out d with cfg and returns a duplex PDF: every front
// page followed by its mirrored back page. It implements [DocumentGenerator].
//
// cfg is validated as given; unlike [Options] no defaults are applied, so a
// zero or partial configuration fails with INVALID_CONFIGURATION.
func (r *Runner) GenerateDocument(ctx context.Context, d deck.Deck, cfg layout.PageConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	result, err := r.Execute(ctx, d, Options{
		Config:  cfg,
		Formats: []string{FormatPDF},
		Title:   d.DisplayTitle(),
	})
	if err != nil {
		return nil, err
	}
	return result.Artifacts[FormatPDF], nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// layoutKey combines the deck content hash with the layout options.
func (r *Runner) layoutKey(deckHash string, opts Options) string {
	return r.Keyer.LayoutKey(deckHash, opts.LayoutKeyOpts())
}

func hashDeck(d deck.Deck) (string, error) {
	h, err := cache.HashJSON(d)
	if err != nil {
		return "", fmt.Errorf("hash deck: %w", err)
	}
	return h, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

var _ DocumentGenerator = (*Runner)(nil)
