package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

var (
	pagerHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	pagerDetailStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// PagerModel - Interactive page browser
// =============================================================================

// PagerModel is the bubbletea model for paging through a laid-out deck.
// The cursor moves over cells of the current page and shows the card under
// it; tab flips between the front and its mirrored back.
type PagerModel struct {
	Deck   deck.Deck
	Config layout.PageConfig
	Fronts []layout.Page

	Page int  // index into Fronts
	Back bool // showing the back of Page
	Row  int
	Col  int
}

// NewPagerModel creates a pager positioned on the first front page.
func NewPagerModel(d deck.Deck, cfg layout.PageConfig, fronts []layout.Page) PagerModel {
	return PagerModel{Deck: d, Config: cfg, Fronts: fronts}
}

// Current returns the page on screen.
func (m PagerModel) Current() layout.Page {
	p := m.Fronts[m.Page]
	if m.Back {
		return layout.RenderBackPage(p, m.Config)
	}
	return p
}

// Selected returns the cell under the cursor.
func (m PagerModel) Selected() (layout.Cell, bool) {
	if len(m.Fronts) == 0 {
		return layout.Cell{}, false
	}
	return m.Current().CellAt(layout.Position{Row: m.Row, Column: m.Col})
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "b":
		// Keep the cursor on the same physical card.
		m.Back = !m.Back
		m.Row, m.Col = m.mirror(m.Row, m.Col)
	case "n", "pgdown", "]":
		if m.Page < len(m.Fronts)-1 {
			m.Page++
		}
	case "p", "pgup", "[":
		if m.Page > 0 {
			m.Page--
		}
	case "up", "k":
		if m.Row > 0 {
			m.Row--
		}
	case "down", "j":
		if m.Row < m.Config.Rows-1 {
			m.Row++
		}
	case "left", "h":
		if m.Col > 0 {
			m.Col--
		}
	case "right", "l":
		if m.Col < m.Config.Columns-1 {
			m.Col++
		}
	}
	return m, nil
}

func (m PagerModel) mirror(row, col int) (int, int) {
	if m.Config.Duplex == layout.DuplexShortEdge {
		return m.Config.Rows - 1 - row, col
	}
	return row, m.Config.Columns - 1 - col
}

func (m PagerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Deck.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(pagerHelpStyle.Render("←↑↓→ move  tab flip  n/p page  q quit"))
	b.WriteString("\n\n")

	if len(m.Fronts) == 0 {
		b.WriteString(pagerDetailStyle.Render("This deck has no cards."))
		b.WriteString("\n")
		return b.String()
	}

	page := m.Current()
	b.WriteString(StyleHighlight.Render(pageHeading(page, len(m.Fronts))))
	b.WriteString("\n")
	b.WriteString(m.renderPage(page))
	b.WriteString("\n")

	cell, ok := m.Selected()
	switch {
	case !ok || cell.Empty():
		b.WriteString(pagerDetailStyle.Render(fmt.Sprintf("(%d,%d) empty", m.Row, m.Col)))
	default:
		b.WriteString(StyleValue.Render(fmt.Sprintf("#%d %s", cell.Slot+1, cell.Card.Term)))
		b.WriteString("\n")
		b.WriteString(pagerDetailStyle.Render("  " + strings.Join(cell.Card.Forbidden, " · ")))
		if cell.Card.Prompt != "" {
			b.WriteString("\n")
			b.WriteString(pagerDetailStyle.Render("  " + cell.Card.Prompt))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// renderPage draws the grid with the cursor cell highlighted.
func (m PagerModel) renderPage(p layout.Page) string {
	rows := gridRows(p, m.Config)
	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for c, label := range row {
			style := gridFrontStyle
			if p.Side == layout.Back {
				style = gridBackStyle
			}
			if label == "·" {
				style = gridEmptyStyle
			}
			if r == m.Row && c == m.Col {
				style = listSelectedStyle.Reverse(true)
			}
			cells[c] = style.Width(gridCellWidth + 2).Align(lipgloss.Center).Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

var listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

// =============================================================================
// browse command
// =============================================================================

// browseCommand opens the interactive pager for one deck.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		lf layoutFlags
		sf sourceFlags
	)
	cmd := &cobra.Command{
		Use:   "browse [deck]",
		Short: "Page through a deck's layout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.pageConfig(cmd, &lf)
			if err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), args[0], cfg, sf)
		},
	}
	lf.register(cmd)
	sf.register(cmd)
	cmd.ValidArgsFunction = c.completeDecks(&sf, true)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, name string, cfg layout.PageConfig, sf sourceFlags) error {
	src, closeSrc, err := c.openSource(ctx, sf, nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	d, err := resolveDeck(ctx, src, name)
	if err != nil {
		return err
	}
	fronts, err := layout.Layout(d, cfg)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(NewPagerModel(d, cfg, fronts), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
