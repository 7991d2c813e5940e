// Package cache provides the artifact cache shared by the CLI and the server.
//
// # Overview
//
// A [Cache] is a byte store with per-entry TTLs. Three implementations are
// provided:
//
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: a Redis instance shared by several server replicas
//   - [NullCache]: stores nothing (caching disabled)
//
// # Keys
//
// A [Keyer] builds cache keys from content hashes and render options. The
// pipeline hashes the deck content, so editing a deck automatically misses
// the cache. [ScopedKeyer] prefixes every key, which the server uses to keep
// builds of different versions apart in a shared Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
//
// Get returns hit=false with a nil error on a miss. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is a cache whose entries can all be removed at once, as done by
// "tabooprint cache clear".
type Clearer interface {
	Cache
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	// Location describes where entries live (a directory or a Redis address).
	Location() string
}

// TTLs per entry kind.
const (
	TTLDeck     = time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer generates cache keys.
type Keyer interface {
	// DeckKey identifies a deck loaded from a remote source.
	DeckKey(source, name string) string
	// LayoutKey identifies the laid-out pages of a deck.
	LayoutKey(deckHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes the laid-out pages.
type LayoutKeyOpts struct {
	Columns     int     `json:"columns"`
	Rows        int     `json:"rows"`
	CardWidth   float64 `json:"card_width"`
	CardHeight  float64 `json:"card_height"`
	Margin      float64 `json:"margin"`
	PaperWidth  float64 `json:"paper_width"`
	PaperHeight float64 `json:"paper_height"`
	Duplex      string  `json:"duplex"`
	Shuffle     bool    `json:"shuffle,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Title    string `json:"title,omitempty"`
	Backs    bool   `json:"backs"`
	CutLines bool   `json:"cut_lines"`
}

// DefaultKeyer builds keys as kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DeckKey generates a key for a deck from the named source.
func (DefaultKeyer) DeckKey(source, name string) string {
	return "deck:" + source + ":" + name
}

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(deckHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", deckHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
