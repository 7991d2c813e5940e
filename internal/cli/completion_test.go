package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestFilterPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		given  []string
		want   []string
	}{
		{"all", "", nil, []string{"party", "pets", "ultrasound"}},
		{"prefix", "p", nil, []string{"party", "pets"}},
		{"skip given", "p", []string{"party"}, []string{"pets"}},
		{"no match", "z", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterPrefix([]string{"party", "pets", "ultrasound"}, tt.prefix, tt.given)
			if !slices.Equal(got, tt.want) {
				t.Errorf("filterPrefix = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompleteDecks(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	for _, name := range []string{"party.toml", "pets.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := testCLI(t)
	sf := sourceFlags{dir: dir}

	names, directive := c.completeDecks(&sf, false)(&cobra.Command{}, nil, "pa")
	if !slices.Equal(names, []string{"party"}) {
		t.Errorf("completions = %v, want [party]", names)
	}
	if directive != cobra.ShellCompDirectiveDefault {
		t.Errorf("directive = %v, want file completion kept", directive)
	}

	names, directive = c.completeDecks(&sf, true)(&cobra.Command{}, []string{"party"}, "")
	if names != nil || directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("single-arg completion after one arg = %v, %v", names, directive)
	}
}

func TestCompleteDecksSamples(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := testCLI(t)
	names, _ := c.completeDecks(&sourceFlags{}, false)(&cobra.Command{}, nil, "")
	if !slices.Contains(names, "ultrasound") {
		t.Errorf("completions = %v, want the built-in samples", names)
	}
}

func TestLayoutFlagCompletions(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	var lf layoutFlags
	lf.register(cmd)

	fn, ok := cmd.GetFlagCompletionFunc("paper")
	if !ok {
		t.Fatal("--paper has no completion")
	}
	got, _ := fn(cmd, nil, "a")
	if !slices.Equal(got, []string{"a4", "a3"}) {
		t.Errorf("--paper a completions = %v, want [a4 a3]", got)
	}

	fn, ok = cmd.GetFlagCompletionFunc("duplex")
	if !ok {
		t.Fatal("--duplex has no completion")
	}
	if got, _ := fn(cmd, nil, ""); !slices.Equal(got, []string{"long", "short"}) {
		t.Errorf("--duplex completions = %v", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	root := testCLI(t).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(buf.String(), "tabooprint") {
		t.Error("bash completion script does not mention tabooprint")
	}
}
