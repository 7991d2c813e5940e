package layout

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/tabooprint/pkg/errors"
)

// PaperSize is a sheet size in points (1" = 72pt).
type PaperSize struct {
	Name   string  `json:"name" toml:"name"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Standard portrait paper sizes.
var (
	Letter = PaperSize{Name: "letter", Width: 612, Height: 792}        // 8.5" x 11"
	Legal  = PaperSize{Name: "legal", Width: 612, Height: 1008}        // 8.5" x 14"
	A4     = PaperSize{Name: "a4", Width: 595.2756, Height: 841.8898}  // 210mm x 297mm
	A3     = PaperSize{Name: "a3", Width: 841.8898, Height: 1190.5512} // 297mm x 420mm
)

var papers = map[string]PaperSize{
	Letter.Name: Letter,
	Legal.Name:  Legal,
	A4.Name:     A4,
	A3.Name:     A3,
}

// PaperNames returns the names accepted by [PaperByName], smallest sheet first.
func PaperNames() []string {
	names := make([]string, 0, len(papers))
	for name := range papers {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		pa, pb := papers[a], papers[b]
		return cmp.Or(cmp.Compare(pa.Width*pa.Height, pb.Width*pb.Height), cmp.Compare(a, b))
	})
	return names
}

// PaperByName looks up a standard paper size (case-insensitive).
func PaperByName(name string) (PaperSize, error) {
	p, ok := papers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PaperSize{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"unknown paper size %q (must be one of: letter, legal, a4, a3)", name)
	}
	return p, nil
}

// Landscape returns the paper rotated by 90 degrees.
func (p PaperSize) Landscape() PaperSize {
	return PaperSize{Name: p.Name + "-landscape", Width: p.Height, Height: p.Width}
}

// Duplex selects which edge the printer flips the sheet around.
type Duplex string

const (
	// DuplexLongEdge mirrors columns on the back page. This is the default
	// for portrait sheets on most printers.
	DuplexLongEdge Duplex = "long"

	// DuplexShortEdge mirrors rows on the back page.
	DuplexShortEdge Duplex = "short"
)

// ParseDuplex parses "long" or "short". The empty string means long edge.
func ParseDuplex(s string) (Duplex, error) {
	switch Duplex(strings.ToLower(s)) {
	case "", DuplexLongEdge:
		return DuplexLongEdge, nil
	case DuplexShortEdge:
		return DuplexShortEdge, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfiguration, "invalid duplex %q (must be long or short)", s)
}

// Default card geometry: poker-size cards, nine to a Letter sheet.
const (
	DefaultColumns    = 3
	DefaultRows       = 3
	DefaultCardWidth  = 180.0 // 2.5"
	DefaultCardHeight = 252.0 // 3.5"
	DefaultMargin     = 18.0  // 0.25"
)

// fitTolerance absorbs rounding in metric paper sizes.
const fitTolerance = 1e-6

// PageConfig describes the card grid printed on each page. Dimensions are in
// points.
type PageConfig struct {
	Columns    int       `json:"columns" toml:"columns"` // cards per row
	Rows       int       `json:"rows" toml:"rows"`       // cards per column
	CardWidth  float64   `json:"card_width" toml:"card_width"`
	CardHeight float64   `json:"card_height" toml:"card_height"`
	Margin     float64   `json:"margin" toml:"margin"`
	Paper      PaperSize `json:"paper" toml:"paper"`
	Duplex     Duplex    `json:"duplex,omitempty" toml:"duplex,omitempty"`
}

// DefaultConfig returns a 3×3 grid of poker-size cards on Letter paper.
func DefaultConfig() PageConfig {
	return PageConfig{
		Columns:    DefaultColumns,
		Rows:       DefaultRows,
		CardWidth:  DefaultCardWidth,
		CardHeight: DefaultCardHeight,
		Margin:     DefaultMargin,
		Paper:      Letter,
		Duplex:     DuplexLongEdge,
	}
}

// CardsPerPage returns the number of cells on each page.
func (c PageConfig) CardsPerPage() int {
	return c.Columns * c.Rows
}

// PageCount returns the number of pages needed for n cards.
func (c PageConfig) PageCount(n int) int {
	per := c.CardsPerPage()
	if n <= 0 || per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

// Validate checks the grid and dimensions. Every failure carries the
// INVALID_CONFIGURATION code.
func (c PageConfig) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return invalid("grid must be at least 1x1, got %dx%d", c.Columns, c.Rows)
	}
	if c.CardWidth <= 0 || c.CardHeight <= 0 {
		return invalid("card size must be positive, got %gx%g", c.CardWidth, c.CardHeight)
	}
	if c.Paper.Width <= 0 || c.Paper.Height <= 0 {
		return invalid("paper size must be positive, got %gx%g", c.Paper.Width, c.Paper.Height)
	}
	if c.Margin < 0 {
		return invalid("margin cannot be negative, got %g", c.Margin)
	}
	if _, err := ParseDuplex(string(c.Duplex)); err != nil {
		return err
	}

	gridW, gridH := c.GridSize()
	if gridW+2*c.Margin > c.Paper.Width+fitTolerance {
		return invalid("%d columns of %gpt with %gpt margins need %gpt, paper is %gpt wide",
			c.Columns, c.CardWidth, c.Margin, gridW+2*c.Margin, c.Paper.Width)
	}
	if gridH+2*c.Margin > c.Paper.Height+fitTolerance {
		return invalid("%d rows of %gpt with %gpt margins need %gpt, paper is %gpt tall",
			c.Rows, c.CardHeight, c.Margin, gridH+2*c.Margin, c.Paper.Height)
	}
	return nil
}

// String returns a short human-readable description of the configuration.
func (c PageConfig) String() string {
	return fmt.Sprintf("%dx%d %gx%gpt on %s (%s edge)", c.Columns, c.Rows, c.CardWidth, c.CardHeight, c.Paper.Name, c.duplex())
}

func (c PageConfig) duplex() Duplex {
	if c.Duplex == "" {
		return DuplexLongEdge
	}
	return c.Duplex
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfiguration, format, args...)
}
