package layout

// Rect is an axis-aligned rectangle in points with a top-left origin.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: max(0, r.Width-2*d), Height: max(0, r.Height-2*d)}
}

// GridSize returns the total width and height of the card grid.
func (c PageConfig) GridSize() (width, height float64) {
	return float64(c.Columns) * c.CardWidth, float64(c.Rows) * c.CardHeight
}

// GridRect returns the rectangle covered by the card grid, centred on the
// paper.
func (c PageConfig) GridRect() Rect {
	w, h := c.GridSize()
	return Rect{
		X:      (c.Paper.Width - w) / 2,
		Y:      (c.Paper.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// CellRect returns the rectangle of the cell at pos. Cells abut each other,
// so a single cut along each grid line separates the cards.
func (c PageConfig) CellRect(pos Position) Rect {
	g := c.GridRect()
	return Rect{
		X:      g.X + float64(pos.Column)*c.CardWidth,
		Y:      g.Y + float64(pos.Row)*c.CardHeight,
		Width:  c.CardWidth,
		Height: c.CardHeight,
	}
}
