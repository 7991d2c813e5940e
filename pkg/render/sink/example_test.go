package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/render/sink"
)

func ExampleRenderSVG() {
	d := deck.Deck{Cards: []deck.Card{
		{Term: "Pizza", Forbidden: []string{"Cheese", "Italy"}},
		{Term: "Beach", Forbidden: []string{"Sand", "Ocean"}},
	}}
	cfg := layout.DefaultConfig()

	fronts, _ := layout.Layout(d, cfg)
	svg := sink.RenderSVG(layout.Interleave(fronts, cfg), cfg, sink.WithSVGTitle("Demo"))

	fmt.Println(strings.Count(string(svg), "card-front"), "fronts")
	fmt.Println(strings.Count(string(svg), "card-back"), "backs")
	// Output:
	// 2 fronts
	// 2 backs
}
