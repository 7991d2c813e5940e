package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/config"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	c.Config.Cache.Backend = config.CacheNone
	return c
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to pdf", "", []string{"pdf"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "pdf,svg,png", []string{"pdf", "svg", "png"}},
		{"spaces and case", " PDF , json ", []string{"pdf", "json"}},
		{"empty entries dropped", "pdf,,svg", []string{"pdf", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid pdf", []string{"pdf"}, false},
		{"valid all", []string{"svg", "pdf", "png", "json"}, false},
		{"invalid format", []string{"docx"}, true},
		{"mixed valid invalid", []string{"pdf", "docx"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		multi  bool
		want   string
	}{
		{"default", "", false, "party.pdf"},
		{"default multi", "", true, "party.pdf"},
		{"explicit file", "out/cards.pdf", false, "out/cards.pdf"},
		{"explicit file uppercase ext", "cards.PDF", false, "cards.PDF"},
		{"file ext but multi", "out/cards.pdf", true, "out/cards.pdf/party.pdf"},
		{"directory", "out", false, "out/party.pdf"},
		{"wrong extension is a directory", "out.svg", false, "out.svg/party.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "party", "pdf", tt.multi); got != filepath.FromSlash(tt.want) {
				t.Errorf("outputPath(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func TestPageConfigFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(layout.PageConfig) bool
		wantErr bool
	}{
		{"defaults", nil, func(c layout.PageConfig) bool { return c == layout.DefaultConfig() }, false},
		{"grid", []string{"--columns", "2", "--rows", "2"}, func(c layout.PageConfig) bool { return c.Columns == 2 && c.Rows == 2 }, false},
		{"paper and duplex", []string{"--paper", "a4", "--duplex", "short"}, func(c layout.PageConfig) bool {
			return c.Paper == layout.A4 && c.Duplex == layout.DuplexShortEdge
		}, false},
		{"zero margin", []string{"--margin", "0"}, func(c layout.PageConfig) bool { return c.Margin == 0 }, false},
		{"too many columns", []string{"--columns", "10"}, nil, true},
		{"negative rows", []string{"--rows", "-1"}, nil, true},
		{"bad paper", []string{"--paper", "napkin"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(t)
			var lf layoutFlags
			cmd := &cobra.Command{Use: "x"}
			lf.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg, err := c.pageConfig(cmd, &lf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("pageConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !tt.check(cfg) {
				t.Errorf("pageConfig = %+v", cfg)
			}
		})
	}
}

func TestPageConfigUsesConfigFile(t *testing.T) {
	c := testCLI(t)
	c.Config.Layout = config.LayoutConfig{Paper: "a4", Columns: 2}

	var lf layoutFlags
	cmd := &cobra.Command{Use: "x"}
	lf.register(cmd)
	if err := cmd.ParseFlags([]string{"--rows", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := c.pageConfig(cmd, &lf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paper != layout.A4 || cfg.Columns != 2 || cfg.Rows != 2 {
		t.Errorf("pageConfig = %+v, want a4 2x2", cfg)
	}
}

func TestResolveDeck(t *testing.T) {
	ctx := context.Background()
	c := testCLI(t)
	src, closeSrc, err := c.openSource(ctx, sourceFlags{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer closeSrc()

	d, err := resolveDeck(ctx, src, "ultrasound")
	if err != nil {
		t.Fatalf("resolveDeck(sample) error: %v", err)
	}
	if d.Len() == 0 {
		t.Error("sample deck is empty")
	}

	path := filepath.Join(t.TempDir(), "party.toml")
	body := "[[card]]\nterm = \"Beach\"\nforbidden = [\"Sand\"]\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	d, err = resolveDeck(ctx, src, path)
	if err != nil {
		t.Fatalf("resolveDeck(file) error: %v", err)
	}
	if d.Name != "party" || d.Len() != 1 {
		t.Errorf("deck = %+v", d)
	}

	if _, err := resolveDeck(ctx, src, "no-such-deck"); err == nil {
		t.Error("resolveDeck(unknown) should fail")
	}
}

func TestOpenSourceDir(t *testing.T) {
	dir := t.TempDir()
	body := "[[card]]\nterm = \"Beach\"\nforbidden = [\"Sand\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "party.toml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	c := testCLI(t)
	src, closeSrc, err := c.openSource(context.Background(), sourceFlags{dir: dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer closeSrc()

	names, err := src.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, ",") != "party" {
		t.Errorf("List() = %v", names)
	}

	if _, _, err := c.openSource(context.Background(), sourceFlags{dir: filepath.Join(dir, "missing")}, nil); err == nil {
		t.Error("openSource with a missing directory should fail")
	}
}

func TestRunRender(t *testing.T) {
	c := testCLI(t)
	out := t.TempDir()

	opts := pipeline.Options{
		Config:  layout.DefaultConfig(),
		Formats: []string{pipeline.FormatPDF, pipeline.FormatJSON},
	}
	ro := renderOpts{output: out, noCache: true, jobs: 2}
	if err := c.runRender(context.Background(), []string{"ultrasound"}, opts, ro, sourceFlags{}); err != nil {
		t.Fatalf("runRender error: %v", err)
	}

	pdf, err := os.ReadFile(filepath.Join(out, "ultrasound.pdf"))
	if err != nil {
		t.Fatalf("pdf not written: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Error("pdf output lacks %PDF header")
	}
	if _, err := os.Stat(filepath.Join(out, "ultrasound.json")); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRunRenderReportsBadDeck(t *testing.T) {
	c := testCLI(t)
	opts := pipeline.Options{Config: layout.DefaultConfig(), Formats: []string{pipeline.FormatJSON}}
	ro := renderOpts{output: t.TempDir(), noCache: true}
	if err := c.runRender(context.Background(), []string{"missing"}, opts, ro, sourceFlags{}); err == nil {
		t.Error("runRender with an unknown deck should fail")
	}
}
