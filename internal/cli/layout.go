package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting page grids.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf        layoutFlags
		sf        sourceFlags
		frontOnly bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [deck]",
		Short: "Print the page grids of a deck, front and back",
		Long: `Print where every card lands on each page.

Each front page is followed by its back page. On the back, columns are
mirrored for long-edge duplex printing (rows for short-edge), so a card's
back appears behind its front once the sheet is flipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.pageConfig(cmd, &lf)
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.SkipBacks = frontOnly
			if cmd.Flags().Changed("seed") {
				opts.Shuffle = true
			}
			return c.runLayout(cmd.Context(), args[0], opts, sf)
		},
	}

	cmd.Flags().BoolVar(&frontOnly, "front-only", false, "hide back pages")
	cmd.Flags().BoolVar(&opts.Shuffle, "shuffle", false, "shuffle cards before layout")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "shuffle seed (implies --shuffle)")
	lf.register(cmd)
	sf.register(cmd)
	cmd.ValidArgsFunction = c.completeDecks(&sf, true)

	return cmd
}

// runLayout lays out one deck and prints its grids.
func (c *CLI) runLayout(ctx context.Context, name string, opts pipeline.Options, sf sourceFlags) error {
	src, closeSrc, err := c.openSource(ctx, sf, nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	d, err := resolveDeck(ctx, src, name)
	if err != nil {
		return err
	}

	if opts.Shuffle {
		d = d.Shuffle(opts.Seed)
	}

	// Layout is cheap; no cache.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	opts.Logger = c.Logger
	fronts, err := runner.Layout(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	printSuccess("%s", d.DisplayTitle())
	printDetail("%s", opts.Config.String())
	var notes []string
	if empty := len(fronts)*opts.Config.CardsPerPage() - d.Len(); empty > 0 {
		notes = append(notes, plural(empty, "empty slot"))
	}
	printStats(d.Len(), len(fronts), notes...)
	printNewline()

	for _, front := range fronts {
		fmt.Fprintln(uiOut, StyleTitle.Render(pageHeading(front, len(fronts))))
		fmt.Fprintln(uiOut, renderGrid(front, opts.Config))
		if opts.Backs() {
			back := layout.RenderBackPage(front, opts.Config)
			fmt.Fprintln(uiOut, StyleTitle.Render(pageHeading(back, len(fronts))))
			fmt.Fprintln(uiOut, renderGrid(back, opts.Config))
		}
		printNewline()
	}

	printNextStep("Render", appName+" render "+name)
	return nil
}
