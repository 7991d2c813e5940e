package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tabooprint/pkg/errors"
)

// Supported deck file extensions.
const (
	ExtJSON = ".json"
	ExtTOML = ".toml"
)

// jsonCard accepts both the canonical field names and the ones used by the
// original web app's card-data files.
type jsonCard struct {
	ID         int      `json:"id"`
	Term       string   `json:"term"`
	TargetWord string   `json:"targetWord"`
	Forbidden  []string `json:"forbidden"`
	TabooWords []string `json:"tabooWords"`
	Prompt     string   `json:"prompt"`
}

func (c jsonCard) card() Card {
	out := Card{ID: c.ID, Term: c.Term, Forbidden: c.Forbidden, Prompt: c.Prompt}
	if out.Term == "" {
		out.Term = c.TargetWord
	}
	if len(out.Forbidden) == 0 {
		out.Forbidden = c.TabooWords
	}
	for i, w := range out.Forbidden {
		out.Forbidden[i] = strings.TrimSpace(w)
	}
	out.Term = strings.TrimSpace(out.Term)
	return out
}

type jsonDeck struct {
	Name  string     `json:"name"`
	Title string     `json:"title"`
	Cards []jsonCard `json:"cards"`
}

// ParseJSON decodes a deck from JSON. The input may be an object with a
// "cards" array or a bare array of cards; name is used when the document
// does not carry one.
func ParseJSON(name string, data []byte) (Deck, error) {
	var raw jsonDeck
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw.Cards); err != nil {
			return Deck{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode deck %q", name)
		}
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Deck{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode deck %q", name)
	}

	d := Deck{Name: raw.Name, Title: raw.Title, Cards: make([]Card, len(raw.Cards))}
	for i, c := range raw.Cards {
		d.Cards[i] = c.card()
	}
	if d.Name == "" {
		d.Name = name
	}
	return d, nil
}

// ParseTOML decodes a deck from TOML. Unknown keys are rejected so typos in
// hand-written decks surface early.
func ParseTOML(name string, data []byte) (Deck, error) {
	var d Deck
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
	if err != nil {
		return Deck{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode deck %q", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Deck{}, errors.New(errors.ErrCodeInvalidInput, "deck %q: unknown key %q", name, undecoded[0].String())
	}
	if d.Name == "" {
		d.Name = name
	}
	return d, nil
}

// Parse decodes data according to the extension of filename.
func Parse(filename string, data []byte) (Deck, error) {
	name := NameFromFile(filename)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtJSON:
		return ParseJSON(name, data)
	case ExtTOML:
		return ParseTOML(name, data)
	default:
		return Deck{}, errors.New(errors.ErrCodeUnsupported, "unsupported deck file %q (want .json or .toml)", filename)
	}
}

// ReadFile loads and validates a deck from a .json or .toml file.
func ReadFile(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Deck{}, errors.Wrap(errors.ErrCodeDeckNotFound, err, "deck file %s", path)
		}
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(path, data)
	if err != nil {
		return Deck{}, err
	}
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(d Deck) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// NameFromFile derives a deck name from a file path ("decks/party.toml" -> "party").
func NameFromFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsDeckFile reports whether path has a supported deck extension.
func IsDeckFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON, ExtTOML:
		return true
	}
	return false
}
