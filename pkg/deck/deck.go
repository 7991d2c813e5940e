// Package deck defines the card records that make up a printable deck and
// the sources decks are loaded from.
//
// # Cards and Decks
//
// A [Card] is one game unit: a [Card.Term] players must get their team to
// say, and an ordered list of [Card.Forbidden] words that may not be used as
// clues. A [Deck] is an ordered list of cards. Decks are loaded once and are
// read-only afterwards; layout and rendering never mutate them.
//
// # Sources
//
// Decks come from a [Source]:
//
//   - [FSSource]: a directory (or any fs.FS) of .json and .toml deck files
//   - [Samples]: the sample decks embedded in the binary
//   - [MongoSource]: cards stored as documents in a MongoDB collection
//
// # File Formats
//
// TOML decks use a [[card]] array:
//
//	name = "ultrasound"
//	title = "Ultrasound Taboo"
//
//	[[card]]
//	term = "Lung Sliding"
//	forbidden = ["Pleura", "Pneumothorax"]
//
// JSON decks are either an object with a "cards" array or a bare array of
// cards. The original web app's field names (targetWord, tabooWords) are
// accepted as aliases.
package deck

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/tabooprint/pkg/errors"
)

// Card is a single word-guessing card.
type Card struct {
	ID        int      `json:"id,omitempty" toml:"id,omitempty" bson:"id,omitempty"`
	Term      string   `json:"term" toml:"term" bson:"term"`
	Forbidden []string `json:"forbidden" toml:"forbidden" bson:"forbidden"`
	Prompt    string   `json:"prompt,omitempty" toml:"prompt,omitempty" bson:"prompt,omitempty"`
}

// Clone returns a deep copy of c.
func (c Card) Clone() Card {
	c.Forbidden = slices.Clone(c.Forbidden)
	return c
}

// Validate checks that the card has a term and no blank forbidden words.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Term) == "" {
		return errors.New(errors.ErrCodeInvalidCard, "card %d: term cannot be empty", c.ID)
	}
	for i, w := range c.Forbidden {
		if strings.TrimSpace(w) == "" {
			return errors.New(errors.ErrCodeInvalidCard, "card %q: forbidden word %d is empty", c.Term, i)
		}
	}
	return nil
}

// Deck is an ordered collection of cards.
type Deck struct {
	Name  string `json:"name" toml:"name"`
	Title string `json:"title,omitempty" toml:"title,omitempty"`
	Cards []Card `json:"cards" toml:"card"`
}

// Len returns the number of cards in the deck.
func (d Deck) Len() int { return len(d.Cards) }

// DisplayTitle returns the title, falling back to the name.
func (d Deck) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Validate checks every card and rejects duplicate terms (case-insensitive).
// An empty deck is valid.
func (d Deck) Validate() error {
	seen := make(map[string]int, len(d.Cards))
	for i, c := range d.Cards {
		if err := c.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(c.Term))
		if j, ok := seen[key]; ok {
			return errors.New(errors.ErrCodeInvalidCard, "duplicate term %q (cards %d and %d)", c.Term, j, i)
		}
		seen[key] = i
	}
	return nil
}

// Clone returns a deep copy of d.
func (d Deck) Clone() Deck {
	out := d
	out.Cards = make([]Card, len(d.Cards))
	for i, c := range d.Cards {
		out.Cards[i] = c.Clone()
	}
	return out
}

// Shuffle returns a copy of d with its cards in a pseudo-random order.
// The same seed always yields the same order.
func (d Deck) Shuffle(seed uint64) Deck {
	out := d.Clone()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := len(out.Cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out.Cards[i], out.Cards[j] = out.Cards[j], out.Cards[i]
	}
	return out
}
