package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/buildinfo"
	"github.com/matzehuels/tabooprint/pkg/cache"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/observability"
	"github.com/matzehuels/tabooprint/pkg/server"
)

// serveCommand runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		lf      layoutFlags
		sf      sourceFlags
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve printable decks over HTTP",
		Long: `Serve printable decks over HTTP.

  GET  /v1/decks                     list decks
  GET  /v1/decks/{name}/cards.pdf    PDF (query: paper, columns, rows, margin, duplex)
  POST /v1/render                    PDF for a posted deck

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.pageConfig(cmd, &lf)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, cfg, noCache, sf)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)
	sf.register(cmd)
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cfg layout.PageConfig, noCache bool, sf sourceFlags) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	// Documents cached by one build are not served by another.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, buildinfo.Version)

	src, closeSrc, err := c.openSource(ctx, sf, runner.Cache)
	if err != nil {
		runner.Close()
		return err
	}

	observability.NewLogHooks(c.Logger).Install()
	defer observability.Reset()

	srv := server.New(src, runner,
		server.WithLogger(c.Logger),
		server.WithDefaults(cfg),
		server.WithMaxBodyBytes(c.Config.Server.MaxBodyBytes),
	)

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printDetail("%s", cfg.String())
	return server.Run(ctx, addr, srv, c.Config.Server.ShutdownTimeout, c.Logger, func() {
		closeSrc()
		runner.Close()
	})
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
