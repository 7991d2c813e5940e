// Package layout places the cards of a deck onto printable pages.
//
// # Overview
//
// The engine is a pure function from a deck and a [PageConfig] to a list of
// [Page] values. Each page is a grid of Columns × Rows cells filled in
// row-major order: row 0 left to right, then row 1, and so on. The deck is
// cut into consecutive chunks of [PageConfig.CardsPerPage] cards; the last
// chunk is padded with empty cells, never with repeated cards.
//
//	pages, err := layout.Layout(d, layout.DefaultConfig())
//	if err != nil {
//	    // err has code INVALID_CONFIGURATION
//	}
//
// # Duplex Printing
//
// [RenderBackPage] produces the companion back page of a front page. When a
// sheet is flipped along its long edge the columns of the back appear
// reversed, so each card's back goes to
//
//	mirroredColumn = Columns - 1 - column
//
// in the same row. With [DuplexShortEdge] the rows are reversed instead.
// Either way the mapping is an involution: rendering the back of a back page
// gives the original positions. [Interleave] orders fronts and backs as
// front, back, front, back for a duplex printer.
//
// # Geometry
//
// [PageConfig.CellRect] converts a cell position to a rectangle in points
// with a top-left origin. The grid is centred on the paper; the configured
// margin is the minimum distance between the grid and the paper edge.
//
// All functions in this package are safe for concurrent use. None of them
// retain the deck passed in: pages hold copies of the cards.
package layout
