package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/tabooprint/pkg/deck"
)

// Side identifies the printed side of a page.
type Side string

const (
	Front Side = "front"
	Back  Side = "back"
)

// Flip returns the opposite side.
func (s Side) Flip() Side {
	if s == Back {
		return Front
	}
	return Back
}

// Position is a zero-based cell coordinate within a page grid.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Index returns the row-major linear index of p in a grid with the given
// number of columns.
func (p Position) Index(columns int) int { return p.Row*columns + p.Column }

// PositionAt converts a row-major linear index into a position.
func PositionAt(index, columns int) Position {
	return Position{Row: index / columns, Column: index % columns}
}

// Cell is one grid slot on a page. Empty cells pad the last page and have a
// nil Card and a Slot of -1.
type Cell struct {
	Position
	Slot int        `json:"slot"`
	Card *deck.Card `json:"card,omitempty"`
}

// Empty reports whether the cell holds no card.
func (c Cell) Empty() bool { return c.Card == nil }

// Page is a laid-out page: every grid cell in row-major order of position.
type Page struct {
	Index int    `json:"index"`
	Side  Side   `json:"side"`
	Cells []Cell `json:"cells"`
}

// Occupied returns the number of cells that hold a card.
func (p Page) Occupied() int {
	n := 0
	for _, c := range p.Cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// CellAt returns the cell at pos.
func (p Page) CellAt(pos Position) (Cell, bool) {
	for _, c := range p.Cells {
		if c.Position == pos {
			return c, true
		}
	}
	return Cell{}, false
}

// Layout arranges the cards of d on front pages according to cfg.
//
// The configuration is validated before any work is done; on failure no
// pages are returned. An empty deck yields no pages. Otherwise the result
// has ceil(len/CardsPerPage) pages, each with exactly CardsPerPage cells,
// and every card appears exactly once at
// slot = pageIndex*CardsPerPage + linearCellIndex.
func Layout(d deck.Deck, cfg PageConfig) ([]Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := len(d.Cards)
	if n == 0 {
		return nil, nil
	}

	per := cfg.CardsPerPage()
	pages := make([]Page, cfg.PageCount(n))
	for pi := range pages {
		cells := make([]Cell, per)
		for ci := range cells {
			cells[ci] = Cell{Position: PositionAt(ci, cfg.Columns), Slot: -1}
			slot := pi*per + ci
			if slot < n {
				card := d.Cards[slot].Clone()
				cells[ci].Slot = slot
				cells[ci].Card = &card
			}
		}
		pages[pi] = Page{Index: pi, Side: Front, Cells: cells}
	}
	return pages, nil
}

// RenderBackPage returns the mirrored companion of page. Long-edge duplex
// keeps each cell's row and moves it to column Columns-1-column; short-edge
// duplex keeps the column and moves it to row Rows-1-row. The side is
// flipped. Applying RenderBackPage twice with the same cfg restores every
// card to its original position.
func RenderBackPage(page Page, cfg PageConfig) Page {
	cells := make([]Cell, len(page.Cells))
	for i, c := range page.Cells {
		c.Position = mirror(c.Position, cfg)
		if c.Card != nil {
			card := c.Card.Clone()
			c.Card = &card
		}
		cells[i] = c
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		return cmp.Compare(a.Index(cfg.Columns), b.Index(cfg.Columns))
	})
	return Page{Index: page.Index, Side: page.Side.Flip(), Cells: cells}
}

// RenderBackPages returns the back page of every page in pages.
func RenderBackPages(pages []Page, cfg PageConfig) []Page {
	backs := make([]Page, len(pages))
	for i, p := range pages {
		backs[i] = RenderBackPage(p, cfg)
	}
	return backs
}

// Interleave pairs fronts with their back pages in duplex print order:
// front 0, back 0, front 1, back 1, ...
func Interleave(fronts []Page, cfg PageConfig) []Page {
	out := make([]Page, 0, 2*len(fronts))
	for _, p := range fronts {
		out = append(out, p, RenderBackPage(p, cfg))
	}
	return out
}

func mirror(p Position, cfg PageConfig) Position {
	if cfg.duplex() == DuplexShortEdge {
		return Position{Row: cfg.Rows - 1 - p.Row, Column: p.Column}
	}
	return Position{Row: p.Row, Column: cfg.Columns - 1 - p.Column}
}
