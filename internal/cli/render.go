package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (one deck, one format) or directory
	formats string // comma-separated formats
	all     bool   // render every deck in the source
	noCache bool
	jobs    int // concurrent decks
}

// renderCommand creates the render command for writing printable documents.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ro     renderOpts
		lf     layoutFlags
		sf     sourceFlags
		noBack bool
		noCut  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [deck...]",
		Short: "Render decks to print-ready PDF (or SVG, PNG, JSON)",
		Long: `Render decks to print-ready documents.

Each argument is a deck file (.toml or .json) or the name of a deck in the
deck source. Front pages are followed by their mirrored back pages so the
document can be printed double-sided and cut along the guides.

With one deck and one format, --output names the file. Otherwise --output is
a directory and files are named <deck>.<format>. Several decks are rendered
concurrently.`,
		Example: `  tabooprint render ultrasound
  tabooprint render party.toml -f pdf,svg -o out/
  tabooprint render --all --paper a4 --columns 2 --rows 4 --duplex short`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !ro.all {
				return fmt.Errorf("requires at least one deck (or --all)")
			}
			cfg, err := c.pageConfig(cmd, &lf)
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Formats = parseFormats(ro.formats)
			opts.SkipBacks = noBack
			opts.SkipCutLines = noCut
			if cmd.Flags().Changed("seed") {
				opts.Shuffle = true
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts, ro, sf)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file or directory (default: current directory)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): pdf (default), svg, png, json (comma-separated)")
	cmd.Flags().BoolVar(&ro.all, "all", false, "render every deck in the source")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&ro.jobs, "jobs", "j", pipeline.DefaultBatchLimit, "decks rendered concurrently")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.Shuffle, "shuffle", false, "shuffle cards before layout")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "shuffle seed (implies --shuffle)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title printed on cards (default: deck title)")
	cmd.Flags().BoolVar(&noBack, "no-backs", false, "render front pages only")
	cmd.Flags().BoolVar(&noCut, "no-cut-lines", false, "omit cut guides")
	lf.register(cmd)
	sf.register(cmd)
	cmd.ValidArgsFunction = c.completeDecks(&sf, false)

	return cmd
}

// runRender resolves the decks, renders them as a batch and writes outputs.
func (c *CLI) runRender(ctx context.Context, args []string, opts pipeline.Options, ro renderOpts, sf sourceFlags) error {
	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, closeSrc, err := c.openSource(ctx, sf, runner.Cache)
	if err != nil {
		return err
	}
	defer closeSrc()

	var decks []deck.Deck
	if ro.all {
		decks, err = allDecks(ctx, src)
	} else {
		decks, err = resolveDecks(ctx, src, args)
	}
	if err != nil {
		return err
	}

	logger := loggerFrom(ctx, c.Logger)
	jobs := make([]pipeline.Job, len(decks))
	for i, d := range decks {
		jobOpts := opts
		jobOpts.Logger = jobLogger(logger, i, len(decks))
		jobs[i] = pipeline.Job{Deck: d, Options: jobOpts}
	}

	prog := newProgress(logger)
	spinner := newBatchSpinner(ctx, "Rendering decks", len(jobs))
	spinner.Start()
	results, batchErr := runner.RenderBatchFunc(ctx, jobs, ro.jobs, func(res pipeline.BatchResult) {
		spinner.Advance(res.Job.Deck.Name)
	})
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	multi := len(decks) > 1 || len(opts.Formats) > 1
	for _, res := range results {
		if res.Err != nil {
			printError("%s: %v", res.Job.Deck.Name, res.Err)
			continue
		}
		paths, err := writeArtifacts(res.Result, opts.Formats, ro.output, multi)
		if err != nil {
			return err
		}
		printSuccess("Rendered %s", res.Job.Deck.DisplayTitle())
		for _, p := range paths {
			printFile(p)
		}
		printStats(res.Result.Stats.CardCount, res.Result.Stats.PageCount, cacheNotes(res.Result.CacheInfo)...)
	}
	prog.done("rendered decks", "decks", len(decks), "formats", opts.Formats)
	return batchErr
}

// writeArtifacts writes each requested format of r and returns the paths.
func writeArtifacts(r *pipeline.Result, formats []string, output string, multi bool) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(output, r.Deck.Name, format, multi)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, r.Artifacts[format], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath names the file for one deck and format. A single output whose
// extension matches the format is used as-is; otherwise output is treated
// as a directory.
func outputPath(output, deckName, format string, multi bool) string {
	name := deckName + "." + format
	if output == "" {
		return name
	}
	if !multi && strings.EqualFold(filepath.Ext(output), "."+format) {
		return output
	}
	return filepath.Join(output, name)
}
