// Package config loads the tabooprint configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/tabooprint/config.toml
// (~/.config/tabooprint/config.toml when XDG_CONFIG_HOME is unset). Every
// setting is optional; a missing file yields [Default]. Command-line flags
// override file values.
//
//	deck_dir = "~/decks"
//
//	[server]
//	addr = ":8080"
//	shutdown_timeout = "10s"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//
//	[layout]
//	paper = "a4"
//	columns = 3
//	rows = 3
//	duplex = "long"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

// AppName names the configuration and cache directories.
const AppName = "tabooprint"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete configuration file.
type Config struct {
	// DeckDir is a directory of .toml/.json decks. Empty means the embedded
	// sample decks.
	DeckDir string       `toml:"deck_dir"`
	Server  ServerConfig `toml:"server"`
	Cache   CacheConfig  `toml:"cache"`
	Mongo   MongoConfig  `toml:"mongo"`
	Layout  LayoutConfig `toml:"layout"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// MongoConfig points at a MongoDB collection of cards. An empty URI disables
// the MongoDB deck source.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LayoutConfig holds the default page layout. Zero fields keep the built-in
// defaults.
type LayoutConfig struct {
	Paper      string   `toml:"paper"`
	Landscape  bool     `toml:"landscape"`
	Columns    int      `toml:"columns"`
	Rows       int      `toml:"rows"`
	CardWidth  float64  `toml:"card_width"`
	CardHeight float64  `toml:"card_height"`
	Margin     *float64 `toml:"margin"`
	Duplex     string   `toml:"duplex"`
}

// Defaults for the server section.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		Cache: CacheConfig{Backend: CacheFile},
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(xdgHome("XDG_CONFIG_HOME", ".config"), AppName, "config.toml")
}

// CacheDir returns the default file cache directory (~/.cache/tabooprint).
func CacheDir() string {
	return filepath.Join(xdgHome("XDG_CACHE_HOME", ".cache"), AppName)
}

func xdgHome(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}

// Load reads the config file at path on top of [Default]. A missing file is
// not an error. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.DeckDir = expandHome(cfg.DeckDir)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks the cache backend and the default layout.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfiguration, "cache backend redis requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"invalid cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	_, err := c.Layout.PageConfig()
	return err
}

// CacheDirectory returns the configured cache directory or the XDG default.
func (c *Config) CacheDirectory() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return CacheDir()
}

// PageConfig applies the layout section to [layout.DefaultConfig] and
// validates the result.
func (l LayoutConfig) PageConfig() (layout.PageConfig, error) {
	cfg := layout.DefaultConfig()
	if l.Paper != "" {
		p, err := layout.PaperByName(l.Paper)
		if err != nil {
			return layout.PageConfig{}, err
		}
		cfg.Paper = p
	}
	if l.Landscape {
		cfg.Paper = cfg.Paper.Landscape()
	}
	if l.Columns != 0 {
		cfg.Columns = l.Columns
	}
	if l.Rows != 0 {
		cfg.Rows = l.Rows
	}
	if l.CardWidth != 0 {
		cfg.CardWidth = l.CardWidth
	}
	if l.CardHeight != 0 {
		cfg.CardHeight = l.CardHeight
	}
	if l.Margin != nil {
		cfg.Margin = *l.Margin
	}
	if l.Duplex != "" {
		d, err := layout.ParseDuplex(l.Duplex)
		if err != nil {
			return layout.PageConfig{}, err
		}
		cfg.Duplex = d
	}
	return cfg, cfg.Validate()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
