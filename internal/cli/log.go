// Package cli implements the tabooprint command-line interface.
//
// The commands lay out decks of Taboo cards, render print-ready documents,
// and serve them over HTTP. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Write PDF, SVG, PNG or JSON for one or more decks
//   - layout: Print the front and back grids of a deck
//   - validate: Check decks and the page layout
//   - decks: List the decks in a directory or MongoDB
//   - browse: Page through a layout interactively
//   - serve: Run the HTTP server
//   - cache, config: Manage the cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so pipeline stages log with the same
// settings.
//
// # Example
//
//	import "github.com/matzehuels/tabooprint/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps (e.g. "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// jobLogger tags l with the position of a batch job ("2/5"). The pipeline
// adds the deck name itself; the job tag orders lines from concurrent renders.
func jobLogger(l *log.Logger, i, n int) *log.Logger {
	return l.With("job", fmt.Sprintf("%d/%d", i+1, n))
}

// progress logs how long a command took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time rounded to milliseconds,
// e.g. `INFO rendered decks decks=3 formats=[pdf] elapsed=1.234s`.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. The root command does this before any
// subcommand runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFrom returns the logger attached to ctx, or fallback when there is
// none (commands invoked directly from tests).
func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return fallback
}
