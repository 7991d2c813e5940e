package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/layout"
)

// validateCommand checks decks and the page layout without rendering.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		lf layoutFlags
		sf sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "validate [deck...]",
		Short: "Check decks and the page layout for errors",
		Long: `Check decks and the page layout for errors.

Every card needs a term, forbidden words may not be blank, and terms must be
unique within a deck. The page layout must fit its grid on the paper. With
no arguments only the layout is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.pageConfig(cmd, &lf)
			if err != nil {
				printError("Layout: %v", err)
				return err
			}
			printSuccess("Layout %s", cfg.String())
			return c.runValidate(cmd.Context(), args, cfg, sf)
		},
	}
	lf.register(cmd)
	sf.register(cmd)
	cmd.ValidArgsFunction = c.completeDecks(&sf, false)
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, args []string, cfg layout.PageConfig, sf sourceFlags) error {
	if len(args) == 0 {
		return nil
	}
	src, closeSrc, err := c.openSource(ctx, sf, nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	failed := 0
	for _, arg := range args {
		d, err := resolveDeck(ctx, src, arg)
		if err != nil {
			printError("%s: %v", arg, err)
			failed++
			continue
		}
		printSuccess("%s", d.DisplayTitle())
		printStats(d.Len(), cfg.PageCount(d.Len()))
		if d.Len() == 0 {
			printWarning("%s has no cards", arg)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deck(s) invalid", failed, len(args))
	}
	return nil
}
