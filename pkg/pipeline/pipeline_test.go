package pipeline

import (
	"testing"

	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pdf", false},
		{"svg", false},
		{"png", false},
		{"json", false},
		{"invalid", true},
		{"PDF", true}, // case-sensitive
		{"", true},
		{"pdf;rm", true},
		{"../pdf", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"pdf", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"pdf", "docx"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Zero options should pass: %v", err)
	}

	if opts.Config != layout.DefaultConfig() {
		t.Errorf("Config = %+v, want DefaultConfig()", opts.Config)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPDF {
		t.Errorf("Formats = %v, want [pdf]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if !opts.Backs() || !opts.CutLines() {
		t.Error("backs and cut lines should be on by default")
	}
	if opts.Seed != 0 {
		t.Errorf("Seed = %d, want 0 without shuffle", opts.Seed)
	}
}

func TestOptionsPartialConfigNotFilled(t *testing.T) {
	tests := []struct {
		name string
		cfg  layout.PageConfig
	}{
		{"zero card size", layout.PageConfig{Columns: 2, Rows: 2, Paper: layout.Letter}},
		{"zero paper", layout.PageConfig{Columns: 2, Rows: 2, CardWidth: 180, CardHeight: 252}},
		{"paper name only", layout.PageConfig{Columns: 1, Rows: 1, CardWidth: 180, CardHeight: 252, Paper: layout.PaperSize{Name: "a4"}}},
		{"zero rows", func() layout.PageConfig { c := layout.DefaultConfig(); c.Rows = 0; return c }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Config: tt.cfg}
			err := opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Fatalf("error = %v, want INVALID_CONFIGURATION", err)
			}
			if opts.Config != tt.cfg {
				t.Errorf("Config changed to %+v", opts.Config)
			}
		})
	}
}

func TestOptionsZeroMarginKept(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.Margin = 0
	opts := Options{Config: cfg}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Config.Margin != 0 {
		t.Errorf("Margin = %g, want 0", opts.Config.Margin)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative columns", Options{Config: layout.PageConfig{Columns: -1}}, errors.ErrCodeInvalidConfiguration},
		{"negative margin", Options{Config: layout.PageConfig{Margin: -5}}, errors.ErrCodeInvalidConfiguration},
		{"grid too large", Options{Config: layout.PageConfig{Columns: 10}}, errors.ErrCodeInvalidConfiguration},
		{"bad duplex", Options{Config: layout.PageConfig{Duplex: "diagonal"}}, errors.ErrCodeInvalidConfiguration},
		{"bad format", Options{Formats: []string{"docx"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Shuffle: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Config != first.Config || opts.Seed != first.Seed || len(opts.Formats) != len(first.Formats) {
		t.Error("second call changed options")
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want DefaultSeed when shuffling", opts.Seed)
	}
}

func TestKeyOptsReflectOptions(t *testing.T) {
	a := Options{}
	short := layout.DefaultConfig()
	short.Duplex = layout.DuplexShortEdge
	b := Options{Config: short}
	_ = a.ValidateAndSetDefaults()
	_ = b.ValidateAndSetDefaults()

	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("duplex mode should be part of the layout key")
	}
	if a.ArtifactKeyOpts("pdf") == a.ArtifactKeyOpts("svg") {
		t.Error("format should be part of the artifact key")
	}
	c := a
	c.SkipCutLines = true
	if a.ArtifactKeyOpts("pdf") == c.ArtifactKeyOpts("pdf") {
		t.Error("cut lines should be part of the artifact key")
	}
}
