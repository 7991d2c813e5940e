package pipeline

import (
	"context"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

// DocumentGenerator produces a printable PDF for a deck. The HTTP server
// depends on this interface so tests can substitute a fake.
type DocumentGenerator interface {
	GenerateDocument(ctx context.Context, d deck.Deck, cfg layout.PageConfig) ([]byte, error)
}

// GeneratorFunc adapts a function to [DocumentGenerator].
type GeneratorFunc func(ctx context.Context, d deck.Deck, cfg layout.PageConfig) ([]byte, error)

// GenerateDocument calls f.
func (f GeneratorFunc) GenerateDocument(ctx context.Context, d deck.Deck, cfg layout.PageConfig) ([]byte, error) {
	return f(ctx, d, cfg)
}
