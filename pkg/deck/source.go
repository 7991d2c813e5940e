package deck

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/matzehuels/tabooprint/pkg/errors"
)

// Source provides decks by name.
type Source interface {
	// List returns the names of all available decks, sorted.
	List(ctx context.Context) ([]string, error)

	// Load returns the named deck. Missing decks yield an error with code
	// DECK_NOT_FOUND.
	Load(ctx context.Context, name string) (Deck, error)
}

// Saver stores decks by name, replacing any deck with the same name.
type Saver interface {
	Save(ctx context.Context, d Deck) error
}

//go:embed samples/*.toml
var samplesFS embed.FS

// FSSource serves decks stored as .json or .toml files at the top level of
// a file system.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource creates a source over a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// Samples returns a source over the decks embedded in the binary.
func Samples() *FSSource {
	sub, err := fs.Sub(samplesFS, "samples")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return NewFSSource(sub)
}

// List returns the names of all deck files, sorted. When a name exists with
// both extensions it is listed once.
func (s *FSSource) List(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsDeckFile(e.Name()) {
			continue
		}
		name := NameFromFile(e.Name())
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Load reads the named deck, preferring .toml over .json.
func (s *FSSource) Load(ctx context.Context, name string) (Deck, error) {
	if err := errors.ValidateDeckName(name); err != nil {
		return Deck{}, err
	}
	for _, ext := range []string{ExtTOML, ExtJSON} {
		file := name + ext
		data, err := fs.ReadFile(s.fsys, file)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Deck{}, err
		}
		d, err := Parse(path.Base(file), data)
		if err != nil {
			return Deck{}, err
		}
		if err := d.Validate(); err != nil {
			return Deck{}, err
		}
		return d, nil
	}
	return Deck{}, errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", name)
}

// StaticSource serves a fixed set of in-memory decks. It is mostly useful in
// tests and for decks posted to the server.
type StaticSource map[string]Deck

// List returns the deck names, sorted.
func (s StaticSource) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Load returns a copy of the named deck.
func (s StaticSource) Load(ctx context.Context, name string) (Deck, error) {
	d, ok := s[name]
	if !ok {
		return Deck{}, errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", name)
	}
	return d.Clone(), nil
}

var (
	_ Source = (*FSSource)(nil)
	_ Source = StaticSource(nil)
)
