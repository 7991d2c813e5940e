package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tabooprint/pkg/layout"
)

// gridCellWidth is the number of characters shown per card term.
const gridCellWidth = 16

var (
	gridFrontStyle = lipgloss.NewStyle().Foreground(colorWhite)
	gridBackStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	gridEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// gridRows converts a page into Rows x Columns labels: the card's slot
// number and term, or "·" for an empty cell.
func gridRows(p layout.Page, cfg layout.PageConfig) [][]string {
	rows := make([][]string, cfg.Rows)
	for r := range rows {
		rows[r] = make([]string, cfg.Columns)
		for col := range rows[r] {
			rows[r][col] = "·"
		}
	}
	for _, cell := range p.Cells {
		if cell.Row >= cfg.Rows || cell.Column >= cfg.Columns || cell.Empty() {
			continue
		}
		rows[cell.Row][cell.Column] = cellLabel(cell)
	}
	return rows
}

func cellLabel(cell layout.Cell) string {
	return clip(fmt.Sprintf("%d %s", cell.Slot+1, cell.Card.Term), gridCellWidth)
}

// clip shortens s to at most n runes, marking the cut with "…".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// renderGrid draws a page as a bordered table.
func renderGrid(p layout.Page, cfg layout.PageConfig) string {
	style := gridFrontStyle
	if p.Side == layout.Back {
		style = gridBackStyle
	}
	rows := gridRows(p, cfg)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			s := style
			if rows[row][col] == "·" {
				s = gridEmptyStyle
			}
			return s.Width(gridCellWidth + 2).Align(lipgloss.Center)
		}).
		Render()
}

// pageHeading labels a page for display, e.g. "Page 2 · back".
func pageHeading(p layout.Page, total int) string {
	return fmt.Sprintf("Page %d/%d · %s", p.Index+1, total, p.Side)
}
