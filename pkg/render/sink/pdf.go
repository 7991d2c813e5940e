package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/tabooprint/pkg/buildinfo"
	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

// DefaultCreationDate is stamped into every PDF unless overridden, so equal
// input renders to equal bytes.
var DefaultCreationDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title    string
	cutLines bool
	created  time.Time
}

// WithTitle sets the deck title printed on card backs and in the document
// metadata.
func WithTitle(title string) PDFOption { return func(r *pdfRenderer) { r.title = title } }

// WithCutLines toggles the dashed cut guides (default on).
func WithCutLines(on bool) PDFOption { return func(r *pdfRenderer) { r.cutLines = on } }

// WithCreationDate overrides the creation and modification date.
func WithCreationDate(t time.Time) PDFOption { return func(r *pdfRenderer) { r.created = t } }

// RenderPDF renders pages as a PDF document with one sheet per page. Pages
// are emitted in the given order; the side of each page selects the front or
// back card design.
func RenderPDF(pages []layout.Page, cfg layout.PageConfig, opts ...PDFOption) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := pdfRenderer{cutLines: true, created: DefaultCreationDate}
	for _, opt := range opts {
		opt(&r)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: cfg.Paper.Width, Ht: cfg.Paper.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(r.created)
	pdf.SetModificationDate(r.created)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("tabooprint "+buildinfo.Version, false)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}

	d := pdfDoc{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		cfg:   cfg,
		opts:  r,
		title: r.title,
	}
	if d.title == "" {
		d.title = defaultTitle
	}
	for _, p := range pages {
		d.page(p)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}

type pdfDoc struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	cfg   layout.PageConfig
	opts  pdfRenderer
	title string
}

func (d *pdfDoc) page(p layout.Page) {
	d.pdf.AddPage()
	if d.opts.cutLines {
		d.cutLines()
	}
	for _, c := range p.Cells {
		if c.Empty() {
			continue
		}
		if p.Side == layout.Back {
			d.back(c)
		} else {
			d.front(c)
		}
	}
	d.label(p)
}

func (d *pdfDoc) cutLines() {
	d.pdf.SetDrawColor(colorCut.R, colorCut.G, colorCut.B)
	d.pdf.SetLineWidth(cutWidth)
	d.pdf.SetDashPattern(cutDash, 0)
	for _, l := range cutLines(d.cfg) {
		d.pdf.Line(l[0], l[1], l[2], l[3])
	}
	d.pdf.SetDashPattern(nil, 0)
}

func (d *pdfDoc) front(c layout.Cell) {
	g := regionsFor(d.cfg.CellRect(c.Position))

	d.pdf.SetLineWidth(borderWidth)
	d.pdf.SetDrawColor(colorBorder.R, colorBorder.G, colorBorder.B)
	d.pdf.Rect(g.Inner.X, g.Inner.Y, g.Inner.Width, g.Inner.Height, "D")

	d.pdf.SetFillColor(colorBand.R, colorBand.G, colorBand.B)
	d.pdf.Rect(g.Band.X, g.Band.Y, g.Band.Width, g.Band.Height, "F")
	d.pdf.SetTextColor(colorBandText.R, colorBandText.G, colorBandText.B)
	d.centered(c.Card.Term, "B", g.Band.Inset(g.Band.Height*0.1), maxTermSize)

	words := c.Card.Forbidden
	if len(words) > 0 {
		d.pdf.SetTextColor(colorText.R, colorText.G, colorText.B)
		lineH := g.Body.Height / float64(max(len(words), minWordSlots))
		top := g.Body.Y + (g.Body.Height-lineH*float64(len(words)))/2
		for i, w := range words {
			row := layout.Rect{X: g.Body.X, Y: top + float64(i)*lineH, Width: g.Body.Width, Height: lineH}
			d.centered(w, "", row, maxWordSize)
		}
	}

	d.pdf.SetTextColor(colorMuted.R, colorMuted.G, colorMuted.B)
	d.pdf.SetFont(fontFamily, "I", footerSize)
	d.pdf.SetXY(g.Footer.X, g.Footer.Y)
	d.pdf.CellFormat(g.Footer.Width, g.Footer.Height, d.tr(d.title), "", 0, "CM", false, 0, "")
}

func (d *pdfDoc) back(c layout.Cell) {
	g := regionsFor(d.cfg.CellRect(c.Position))

	d.pdf.SetLineWidth(borderWidth)
	d.pdf.SetDrawColor(colorBorder.R, colorBorder.G, colorBorder.B)
	d.pdf.SetFillColor(colorBack.R, colorBack.G, colorBack.B)
	d.pdf.Rect(g.Inner.X, g.Inner.Y, g.Inner.Width, g.Inner.Height, "FD")

	d.pdf.SetTextColor(colorBand.R, colorBand.G, colorBand.B)
	d.centered(d.title, "B", g.Band.Inset(g.Band.Height*0.1), maxTitleSize)

	numH := numberSize * 2
	d.pdf.SetTextColor(colorMuted.R, colorMuted.G, colorMuted.B)
	d.pdf.SetFont(fontFamily, "B", numberSize)
	d.pdf.SetXY(g.Body.X, g.Body.Y)
	d.pdf.CellFormat(g.Body.Width, numH, fmt.Sprintf("#%d", cardNumber(c)), "", 0, "CM", false, 0, "")

	if c.Card.Prompt == "" {
		return
	}
	d.pdf.SetTextColor(colorText.R, colorText.G, colorText.B)
	d.pdf.SetFont(fontFamily, "", promptSize)
	lineH := promptSize * 1.3
	avail := g.Body.Height - numH
	lines := truncate(d.pdf.SplitText(d.tr(c.Card.Prompt), g.Body.Width), int(avail/lineH))
	top := g.Body.Y + numH + (avail-lineH*float64(len(lines)))/2
	for i, line := range lines {
		d.pdf.SetXY(g.Body.X, top+float64(i)*lineH)
		d.pdf.CellFormat(g.Body.Width, lineH, line, "", 0, "CM", false, 0, "")
	}
}

// label prints the page caption in the bottom margin when there is room.
func (d *pdfDoc) label(p layout.Page) {
	room := d.cfg.Paper.Height - d.cfg.GridRect().Bottom()
	if room < labelSize*2 {
		return
	}
	d.pdf.SetTextColor(colorMuted.R, colorMuted.G, colorMuted.B)
	d.pdf.SetFont(fontFamily, "", labelSize)
	d.pdf.SetXY(0, d.cfg.Paper.Height-room/2-labelSize/2)
	d.pdf.CellFormat(d.cfg.Paper.Width, labelSize, d.tr(pageLabel(d.title, p)), "", 0, "CM", false, 0, "")
}

// centered writes s centred in box using the largest font size up to
// maxSize at which the text fits the box width.
func (d *pdfDoc) centered(s, style string, box layout.Rect, maxSize float64) {
	s = d.tr(s)
	size := max(fontSizeMin, min(maxSize, box.Height*fontHeightRatio))
	d.pdf.SetFont(fontFamily, style, size)
	if w := d.pdf.GetStringWidth(s); w > box.Width*fontWidthRatio {
		size = max(fontSizeMin, size*box.Width*fontWidthRatio/w)
		d.pdf.SetFont(fontFamily, style, size)
	}
	d.pdf.SetXY(box.X, box.Y)
	d.pdf.CellFormat(box.Width, box.Height, s, "", 0, "CM", false, 0, "")
}
