package sink

import (
	"fmt"

	"github.com/matzehuels/tabooprint/pkg/layout"
)

type rgb struct{ R, G, B int }

func (c rgb) hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

var (
	colorBand     = rgb{0x1f, 0x6f, 0x8b}
	colorBandText = rgb{0xff, 0xff, 0xff}
	colorText     = rgb{0x22, 0x22, 0x22}
	colorMuted    = rgb{0x80, 0x80, 0x80}
	colorBorder   = rgb{0x33, 0x33, 0x33}
	colorCut      = rgb{0xb0, 0xb0, 0xb0}
	colorBack     = rgb{0xe6, 0xf0, 0xf3}
)

const (
	fontFamily   = "Helvetica"
	maxTermSize  = 22.0
	maxWordSize  = 14.0
	maxTitleSize = 18.0
	numberSize   = 12.0
	promptSize   = 9.0
	footerSize   = 7.0
	labelSize    = 7.0

	borderWidth = 0.75
	cutWidth    = 0.4

	// minWordSlots keeps the forbidden list from growing huge on cards with
	// only one or two words.
	minWordSlots = 5

	defaultTitle = "Taboo"
)

var cutDash = []float64{4, 3}

// cardRegions splits a card rectangle into the areas the sinks draw into.
type cardRegions struct {
	Inner  layout.Rect // bordered card face
	Band   layout.Rect // term band (front) or title band (back)
	Body   layout.Rect // forbidden words (front) or number and prompt (back)
	Footer layout.Rect
}

func regionsFor(r layout.Rect) cardRegions {
	pad := min(r.Width, r.Height) * 0.06
	inner := r.Inset(pad)
	bandH := inner.Height * 0.2
	footH := inner.Height * 0.08
	band := layout.Rect{X: inner.X, Y: inner.Y, Width: inner.Width, Height: bandH}
	footer := layout.Rect{X: inner.X, Y: inner.Bottom() - footH, Width: inner.Width, Height: footH}
	body := layout.Rect{X: inner.X, Y: band.Bottom(), Width: inner.Width, Height: footer.Y - band.Bottom()}
	return cardRegions{Inner: inner, Band: band, Body: body.Inset(inner.Width * 0.05), Footer: footer}
}

// cardNumber is the number printed on a card back: the card ID when set,
// otherwise its one-based deck position.
func cardNumber(c layout.Cell) int {
	if c.Card != nil && c.Card.ID != 0 {
		return c.Card.ID
	}
	return c.Slot + 1
}

func pageLabel(title string, p layout.Page) string {
	return fmt.Sprintf("%s - page %d (%s)", title, p.Index+1, p.Side)
}

// cutLines returns the grid lines of cfg as segments spanning the whole
// sheet, vertical lines first.
func cutLines(cfg layout.PageConfig) [][4]float64 {
	g := cfg.GridRect()
	lines := make([][4]float64, 0, cfg.Columns+cfg.Rows+2)
	for i := 0; i <= cfg.Columns; i++ {
		x := g.X + float64(i)*cfg.CardWidth
		lines = append(lines, [4]float64{x, 0, x, cfg.Paper.Height})
	}
	for i := 0; i <= cfg.Rows; i++ {
		y := g.Y + float64(i)*cfg.CardHeight
		lines = append(lines, [4]float64{0, y, cfg.Paper.Width, y})
	}
	return lines
}
