package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/deck"
)

// decksCommand lists the decks available from the deck source.
func (c *CLI) decksCommand() *cobra.Command {
	var (
		sf   sourceFlags
		long bool
	)
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List available decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDecks(cmd.Context(), sf, long)
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "load each deck and show its title and card count")
	sf.register(cmd)

	cmd.AddCommand(c.decksExportCommand())
	cmd.AddCommand(c.decksPushCommand())
	return cmd
}

// decksExportCommand writes a deck as JSON, the format accepted by POST /v1/render.
func (c *CLI) decksExportCommand() *cobra.Command {
	var (
		sf     sourceFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "export [deck]",
		Short: "Write a deck as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSrc, err := c.openSource(cmd.Context(), sf, nil)
			if err != nil {
				return err
			}
			defer closeSrc()

			d, err := resolveDeck(cmd.Context(), src, args[0])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return exportDeck(cmd.OutOrStdout(), d)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := exportDeck(f, d); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess("Exported %s", d.DisplayTitle())
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	sf.register(cmd)
	cmd.ValidArgsFunction = c.completeDecks(&sf, true)
	return cmd
}

func exportDeck(w io.Writer, d deck.Deck) error {
	data, err := deck.WriteJSON(d)
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// decksPushCommand uploads decks to MongoDB so the server can load them.
func (c *CLI) decksPushCommand() *cobra.Command {
	var (
		dir   string
		mongo string
	)
	cmd := &cobra.Command{
		Use:   "push [deck...]",
		Short: "Upload decks to MongoDB",
		Long: `Upload decks to the MongoDB deck store.

Each argument is a deck file or the name of a deck in --decks (or the
built-in samples). A stored deck with the same name is replaced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uri := mongo
			if uri == "" {
				uri = c.Config.Mongo.URI
			}
			if uri == "" {
				return fmt.Errorf("requires --mongo or [mongo] uri in the config file")
			}

			// Decks are read from files or a local source, never from the target.
			if dir == "" {
				dir = c.Config.DeckDir
			}
			var src deck.Source = deck.Samples()
			if dir != "" {
				src = deck.NewDirSource(dir)
			}
			decks, err := resolveDecks(ctx, src, args)
			if err != nil {
				return err
			}

			store, err := deck.NewMongoSource(ctx, deck.MongoConfig{
				URI:        uri,
				Database:   c.Config.Mongo.Database,
				Collection: c.Config.Mongo.Collection,
			})
			if err != nil {
				return err
			}
			defer store.Close(context.Background())
			return pushDecks(ctx, store, decks)
		},
	}
	cmd.Flags().StringVar(&dir, "decks", "", "directory of .toml/.json decks to read from")
	cmd.Flags().StringVar(&mongo, "mongo", "", "MongoDB URI (default: config [mongo] uri)")
	return cmd
}

// pushDecks saves every deck and reports each one. It stops at the first failure.
func pushDecks(ctx context.Context, store deck.Saver, decks []deck.Deck) error {
	for _, d := range decks {
		if err := store.Save(ctx, d); err != nil {
			printError("%s: %v", d.Name, err)
			return fmt.Errorf("push %s: %w", d.Name, err)
		}
		printSuccess("Pushed %s (%s)", d.Name, plural(d.Len(), "card"))
	}
	return nil
}

func (c *CLI) runDecks(ctx context.Context, sf sourceFlags, long bool) error {
	src, closeSrc, err := c.openSource(ctx, sf, nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	names, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("list decks: %w", err)
	}
	if len(names) == 0 {
		printInfo("No decks found")
		return nil
	}
	for _, name := range names {
		if !long {
			fmt.Fprintln(uiOut, name)
			continue
		}
		d, err := src.Load(ctx, name)
		if err != nil {
			printError("%s: %v", name, err)
			continue
		}
		printKeyValue(name, fmt.Sprintf("%s (%s)", d.DisplayTitle(), plural(d.Len(), "card")))
	}
	return nil
}
