package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tabooprint/pkg/layout"
)

// pageGap is the vertical space between stacked pages in the SVG preview.
const pageGap = 24.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title    string
	cutLines bool
}

// WithSVGTitle sets the deck title printed on card backs.
func WithSVGTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithSVGCutLines toggles the dashed cut guides (default on).
func WithSVGCutLines(on bool) SVGOption { return func(r *svgRenderer) { r.cutLines = on } }

// RenderSVG renders pages as a single SVG preview sheet, pages stacked top to
// bottom in the given order. Font sizes are estimated from character counts,
// so the preview approximates the PDF rather than matching it exactly.
func RenderSVG(pages []layout.Page, cfg layout.PageConfig, opts ...SVGOption) []byte {
	r := svgRenderer{cutLines: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.title == "" {
		r.title = defaultTitle
	}

	width := cfg.Paper.Width
	height := 0.0
	if n := len(pages); n > 0 {
		height = float64(n)*cfg.Paper.Height + float64(n-1)*pageGap
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <style>text { font-family: %s, Arial, sans-serif; }</style>`+"\n", fontFamily)

	for i, p := range pages {
		y := float64(i) * (cfg.Paper.Height + pageGap)
		fmt.Fprintf(&buf, `  <g class="page page-%s" id="page-%d-%s" transform="translate(0 %.2f)">`+"\n", p.Side, p.Index, p.Side, y)
		fmt.Fprintf(&buf, `    <rect x="0" y="0" width="%.2f" height="%.2f" fill="#ffffff" stroke="%s" stroke-width="0.5"/>`+"\n",
			cfg.Paper.Width, cfg.Paper.Height, colorCut.hex())
		if r.cutLines {
			renderSVGCutLines(&buf, cfg)
		}
		for _, c := range p.Cells {
			if c.Empty() {
				continue
			}
			if p.Side == layout.Back {
				r.back(&buf, cfg, c)
			} else {
				r.front(&buf, cfg, c)
			}
		}
		r.label(&buf, cfg, p)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGCutLines(buf *bytes.Buffer, cfg layout.PageConfig) {
	fmt.Fprintf(buf, `    <g class="cut-lines" stroke="%s" stroke-width="%.2f" stroke-dasharray="%g %g">`+"\n",
		colorCut.hex(), cutWidth, cutDash[0], cutDash[1])
	for _, l := range cutLines(cfg) {
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", l[0], l[1], l[2], l[3])
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) front(buf *bytes.Buffer, cfg layout.PageConfig, c layout.Cell) {
	g := regionsFor(cfg.CellRect(c.Position))
	fmt.Fprintf(buf, `    <g class="card card-front" data-slot="%d">`+"\n", c.Slot)
	svgRect(buf, g.Inner, "none", colorBorder.hex())
	svgRect(buf, g.Band, colorBand.hex(), "none")
	svgText(buf, c.Card.Term, g.Band, maxTermSize, colorBandText.hex(), "bold")

	if words := c.Card.Forbidden; len(words) > 0 {
		lineH := g.Body.Height / float64(max(len(words), minWordSlots))
		top := g.Body.Y + (g.Body.Height-lineH*float64(len(words)))/2
		for i, w := range words {
			row := layout.Rect{X: g.Body.X, Y: top + float64(i)*lineH, Width: g.Body.Width, Height: lineH}
			svgText(buf, w, row, maxWordSize, colorText.hex(), "normal")
		}
	}
	svgText(buf, r.title, g.Footer, footerSize, colorMuted.hex(), "normal")
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) back(buf *bytes.Buffer, cfg layout.PageConfig, c layout.Cell) {
	g := regionsFor(cfg.CellRect(c.Position))
	fmt.Fprintf(buf, `    <g class="card card-back" data-slot="%d">`+"\n", c.Slot)
	svgRect(buf, g.Inner, colorBack.hex(), colorBorder.hex())
	svgText(buf, r.title, g.Band, maxTitleSize, colorBand.hex(), "bold")

	numH := numberSize * 2
	num := layout.Rect{X: g.Body.X, Y: g.Body.Y, Width: g.Body.Width, Height: numH}
	svgText(buf, fmt.Sprintf("#%d", cardNumber(c)), num, numberSize, colorMuted.hex(), "bold")

	if c.Card.Prompt != "" {
		lineH := promptSize * 1.3
		avail := g.Body.Height - numH
		maxChars := int(g.Body.Width / (promptSize * fontCharWidth))
		lines := truncate(wrapWords(c.Card.Prompt, maxChars), int(avail/lineH))
		top := g.Body.Y + numH + (avail-lineH*float64(len(lines)))/2
		for i, line := range lines {
			row := layout.Rect{X: g.Body.X, Y: top + float64(i)*lineH, Width: g.Body.Width, Height: lineH}
			svgFixedText(buf, line, row, promptSize, colorText.hex(), "normal")
		}
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) label(buf *bytes.Buffer, cfg layout.PageConfig, p layout.Page) {
	room := cfg.Paper.Height - cfg.GridRect().Bottom()
	if room < labelSize*2 {
		return
	}
	box := layout.Rect{X: 0, Y: cfg.Paper.Height - room, Width: cfg.Paper.Width, Height: room}
	svgFixedText(buf, pageLabel(r.title, p), box, labelSize, colorMuted.hex(), "normal")
}

func svgRect(buf *bytes.Buffer, r layout.Rect, fill, stroke string) {
	fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		r.X, r.Y, r.Width, r.Height, fill, stroke, borderWidth)
}

// svgText writes s centred in box, shrinking the font to fit the box width.
func svgText(buf *bytes.Buffer, s string, box layout.Rect, maxSize float64, fill, weight string) {
	size := fontSizeFor(box.Width, box.Height, len([]rune(s)), maxSize)
	svgFixedText(buf, s, box, size, fill, weight)
}

func svgFixedText(buf *bytes.Buffer, s string, box layout.Rect, size float64, fill, weight string) {
	fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" font-size="%.1f" font-weight="%s" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		box.CenterX(), box.CenterY(), size, weight, fill, escapeXML(s))
}
