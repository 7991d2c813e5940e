package sink

import (
	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

func testDeck() deck.Deck {
	return deck.Deck{
		Name:  "test",
		Title: "Test Deck",
		Cards: []deck.Card{
			{ID: 1, Term: "Pizza", Forbidden: []string{"Cheese", "Italy", "Slice"}},
			{ID: 2, Term: "Beach", Forbidden: []string{"Sand", "Ocean"}, Prompt: "Where the land meets the sea."},
			{ID: 3, Term: "Crème Brûlée", Forbidden: []string{"Dessert", "Custard", "Caramel", "Torch", "French"}},
			{ID: 4, Term: "Rocket"},
			{ID: 5, Term: "Castle", Forbidden: []string{"King"}},
		},
	}
}

func testConfig() layout.PageConfig {
	cfg := layout.DefaultConfig()
	cfg.Columns, cfg.Rows = 2, 2
	return cfg
}

// testPages returns the interleaved front and back pages of testDeck.
func testPages() ([]layout.Page, layout.PageConfig) {
	cfg := testConfig()
	fronts, err := layout.Layout(testDeck(), cfg)
	if err != nil {
		panic(err)
	}
	return layout.Interleave(fronts, cfg), cfg
}
