package sink

import (
	"encoding/json"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title string
	seed  uint64
}

// WithJSONTitle records the deck title in the JSON output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONSeed records the shuffle seed so the same order can be reproduced.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	Title        string            `json:"title,omitempty"`
	Seed         uint64            `json:"seed,omitempty"`
	Config       layout.PageConfig `json:"config"`
	CardsPerPage int               `json:"cards_per_page"`
	Pages        []jsonPage        `json:"pages"`
}

type jsonPage struct {
	Index int         `json:"index"`
	Side  layout.Side `json:"side"`
	Cells []jsonCell  `json:"cells"`
}

type jsonCell struct {
	Row    int        `json:"row"`
	Column int        `json:"column"`
	Slot   int        `json:"slot"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Card   *deck.Card `json:"card,omitempty"`
}

// RenderJSON exports pages with the point geometry of every cell as a
// pretty-printed JSON document. Empty cells are included with a slot of -1
// and no card.
func RenderJSON(pages []layout.Page, cfg layout.PageConfig, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:        r.title,
		Seed:         r.seed,
		Config:       cfg,
		CardsPerPage: cfg.CardsPerPage(),
		Pages:        make([]jsonPage, 0, len(pages)),
	}
	for _, p := range pages {
		jp := jsonPage{Index: p.Index, Side: p.Side, Cells: make([]jsonCell, 0, len(p.Cells))}
		for _, c := range p.Cells {
			rect := cfg.CellRect(c.Position)
			jp.Cells = append(jp.Cells, jsonCell{
				Row:    c.Row,
				Column: c.Column,
				Slot:   c.Slot,
				X:      rect.X,
				Y:      rect.Y,
				Width:  rect.Width,
				Height: rect.Height,
				Card:   c.Card,
			})
		}
		out.Pages = append(out.Pages, jp)
	}
	return json.MarshalIndent(out, "", "  ")
}
