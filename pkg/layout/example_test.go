package layout_test

import (
	"fmt"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

func ExampleLayout() {
	d := deck.Deck{Name: "demo"}
	for _, term := range []string{"Pizza", "Beach", "Guitar", "Rocket", "Castle"} {
		d.Cards = append(d.Cards, deck.Card{Term: term})
	}

	cfg := layout.DefaultConfig()
	cfg.Columns, cfg.Rows = 2, 2

	pages, err := layout.Layout(d, cfg)
	if err != nil {
		panic(err)
	}
	for _, p := range pages {
		fmt.Printf("page %d: %d of %d cells used\n", p.Index, p.Occupied(), len(p.Cells))
	}
	// Output:
	// page 0: 4 of 4 cells used
	// page 1: 1 of 4 cells used
}

func ExampleRenderBackPage() {
	d := deck.Deck{Cards: []deck.Card{{Term: "A"}, {Term: "B"}, {Term: "C"}}}
	cfg := layout.DefaultConfig()
	cfg.Rows = 1

	pages, _ := layout.Layout(d, cfg)
	back := layout.RenderBackPage(pages[0], cfg)
	for _, c := range back.Cells {
		fmt.Printf("(%d,%d) %s\n", c.Row, c.Column, c.Card.Term)
	}
	// Output:
	// (0,0) C
	// (0,1) B
	// (0,2) A
}
