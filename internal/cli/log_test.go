package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, false, true},
		{"debug at info level", log.InfoLevel, true, false},
		{"debug at debug level", log.DebugLevel, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			if tt.debug {
				logger.Debug("cache layout", "deck", "party")
			} else {
				logger.Info("laid out cards", "deck", "party")
			}
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestJobLogger(t *testing.T) {
	var buf bytes.Buffer
	jobLogger(newLogger(&buf, log.InfoLevel), 1, 3).Info("laid out cards")

	if !strings.Contains(buf.String(), "job=2/3") {
		t.Errorf("log line %q lacks job=2/3", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("rendered decks", "decks", 2)

	out := buf.String()
	for _, want := range []string{"rendered decks", "decks=2", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q lacks %q", out, want)
		}
	}
}

func TestLoggerFrom(t *testing.T) {
	fallback := newLogger(io.Discard, log.InfoLevel)
	if got := loggerFrom(context.Background(), fallback); got != fallback {
		t.Error("loggerFrom without a context logger should return the fallback")
	}

	attached := newLogger(io.Discard, log.DebugLevel)
	ctx := withLogger(context.Background(), attached)
	if got := loggerFrom(ctx, fallback); got != attached {
		t.Error("loggerFrom should prefer the context logger")
	}
}

// Render logs go through the logger the root command attaches to the context,
// tagged with the batch job and the deck.
func TestRenderLogsThroughContextLogger(t *testing.T) {
	c := testCLI(t)
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	opts := pipeline.Options{Config: layout.DefaultConfig(), Formats: []string{pipeline.FormatJSON}}
	ro := renderOpts{output: t.TempDir(), noCache: true}
	if err := c.runRender(ctx, []string{"ultrasound"}, opts, ro, sourceFlags{}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"laid out cards", "deck=ultrasound", "job=1/1", "rendered decks"} {
		if !strings.Contains(out, want) {
			t.Errorf("render log lacks %q:\n%s", want, out)
		}
	}
}
