package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/layout"
)

// layoutFlags overrides the config file's [layout] section. Only flags the
// user actually set are applied; a zero size keeps the configured value.
type layoutFlags struct {
	paper      string
	landscape  bool
	columns    int
	rows       int
	cardWidth  float64
	cardHeight float64
	margin     float64
	duplex     string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.paper, "paper", "", "paper size: letter, legal, a4, a3")
	fs.BoolVar(&f.landscape, "landscape", false, "rotate the paper")
	fs.IntVar(&f.columns, "columns", 0, "cards per row")
	fs.IntVar(&f.rows, "rows", 0, "cards per column")
	fs.Float64Var(&f.cardWidth, "card-width", 0, "card width in points")
	fs.Float64Var(&f.cardHeight, "card-height", 0, "card height in points")
	fs.Float64Var(&f.margin, "margin", 0, "minimum page margin in points")
	fs.StringVar(&f.duplex, "duplex", "", "flip edge for double-sided printing: long, short")
	registerLayoutCompletions(cmd)
}

// pageConfig merges changed flags into the configured layout and validates
// the result.
func (c *CLI) pageConfig(cmd *cobra.Command, f *layoutFlags) (layout.PageConfig, error) {
	lc := c.Config.Layout
	changed := cmd.Flags().Changed
	if changed("paper") {
		lc.Paper = f.paper
	}
	if changed("landscape") {
		lc.Landscape = f.landscape
	}
	if changed("columns") {
		lc.Columns = f.columns
	}
	if changed("rows") {
		lc.Rows = f.rows
	}
	if changed("card-width") {
		lc.CardWidth = f.cardWidth
	}
	if changed("card-height") {
		lc.CardHeight = f.cardHeight
	}
	if changed("margin") {
		m := f.margin
		lc.Margin = &m
	}
	if changed("duplex") {
		lc.Duplex = f.duplex
	}
	return lc.PageConfig()
}
