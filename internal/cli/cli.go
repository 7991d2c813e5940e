package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/buildinfo"
	"github.com/matzehuels/tabooprint/pkg/cache"
	"github.com/matzehuels/tabooprint/pkg/config"
	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// mongoScope namespaces cached MongoDB decks.
	mongoScope = "mongo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tabooprint lays out Taboo cards for double-sided printing",
		Long: `tabooprint turns decks of word-guessing cards into print-ready sheets.

Cards are placed on a grid, front pages are paired with mirrored back pages
so each card's back lands behind its front after duplex printing, and the
result is written as PDF (or SVG, PNG and JSON previews).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.Path()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.decksCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.activeConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache opens the cache backend named in the config. A file cache that
// cannot be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	default:
		fc, err := cache.NewFileCache(c.Config.CacheDirectory())
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// =============================================================================
// Deck Sources
// =============================================================================

// sourceFlags selects where named decks are loaded from.
type sourceFlags struct {
	dir   string // deck directory (overrides config deck_dir)
	mongo string // MongoDB URI (overrides config [mongo] uri)
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "decks", "", "directory of .toml/.json decks (default: config deck_dir, else built-in samples)")
	cmd.Flags().StringVar(&f.mongo, "mongo", "", "load decks from this MongoDB URI")
}

// openSource returns the deck source selected by flags and config. The
// returned close function releases any connection and is never nil.
func (c *CLI) openSource(ctx context.Context, f sourceFlags, ch cache.Cache) (deck.Source, func(), error) {
	uri := f.mongo
	if uri == "" && f.dir == "" {
		uri = c.Config.Mongo.URI
	}
	if uri != "" {
		ms, err := deck.NewMongoSource(ctx, deck.MongoConfig{
			URI:        uri,
			Database:   c.Config.Mongo.Database,
			Collection: c.Config.Mongo.Collection,
		})
		if err != nil {
			return nil, func() {}, err
		}
		c.Logger.Debug("using mongo deck source", "database", c.Config.Mongo.Database)
		return deck.NewCachedSource(ms, ch, nil, mongoScope), func() { _ = ms.Close(context.Background()) }, nil
	}

	dir := f.dir
	if dir == "" {
		dir = c.Config.DeckDir
	}
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, func() {}, fmt.Errorf("deck directory: %w", err)
		}
		c.Logger.Debug("using deck directory", "dir", dir)
		return deck.NewDirSource(dir), func() {}, nil
	}
	return deck.Samples(), func() {}, nil
}

// resolveDecks loads each argument as a deck file when it names one on disk,
// and otherwise as a deck name from src.
func resolveDecks(ctx context.Context, src deck.Source, args []string) ([]deck.Deck, error) {
	decks := make([]deck.Deck, 0, len(args))
	for _, arg := range args {
		d, err := resolveDeck(ctx, src, arg)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

func resolveDeck(ctx context.Context, src deck.Source, arg string) (deck.Deck, error) {
	if deck.IsDeckFile(arg) {
		if _, err := os.Stat(arg); err == nil {
			return deck.ReadFile(arg)
		}
	}
	d, err := src.Load(ctx, arg)
	if err != nil {
		return deck.Deck{}, err
	}
	if err := d.Validate(); err != nil {
		return deck.Deck{}, fmt.Errorf("deck %s: %w", arg, err)
	}
	return d, nil
}

// allDecks loads every deck in src.
func allDecks(ctx context.Context, src deck.Source) ([]deck.Deck, error) {
	names, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no decks found")
	}
	return resolveDecks(ctx, src, names)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPDF}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
