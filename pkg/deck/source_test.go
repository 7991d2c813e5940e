package deck

import (
	"context"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/tabooprint/pkg/errors"
)

func TestSamples(t *testing.T) {
	ctx := context.Background()
	src := Samples()

	names, err := src.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !slices.Contains(names, "ultrasound") {
		t.Fatalf("List() = %v, want it to contain ultrasound", names)
	}

	d, err := src.Load(ctx, "ultrasound")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() == 0 {
		t.Fatal("sample deck is empty")
	}
	if d.Cards[0].Term != "Morison's Pouch View" {
		t.Errorf("first card = %q", d.Cards[0].Term)
	}
}

func TestFSSource(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"party.toml":   {Data: []byte("[[card]]\nterm = \"Pizza\"\nforbidden = [\"Cheese\"]\n")},
		"party.json":   {Data: []byte(`[{"term":"Ignored"}]`)},
		"kitchen.json": {Data: []byte(`[{"term":"Whisk","forbidden":["Egg"]}]`)},
		"notes.txt":    {Data: []byte("not a deck")},
		"sub/x.toml":   {Data: []byte("")},
	}
	src := NewFSSource(fsys)

	names, err := src.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"kitchen", "party"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}

	d, err := src.Load(ctx, "party")
	if err != nil {
		t.Fatalf("Load(party): %v", err)
	}
	if d.Cards[0].Term != "Pizza" {
		t.Errorf("Load(party) should prefer .toml, got %q", d.Cards[0].Term)
	}

	if _, err := src.Load(ctx, "missing"); !errors.Is(err, errors.ErrCodeDeckNotFound) {
		t.Errorf("Load(missing) = %v, want DECK_NOT_FOUND", err)
	}
	if _, err := src.Load(ctx, "../etc"); !errors.Is(err, errors.ErrCodeInvalidDeckName) {
		t.Errorf("Load(../etc) = %v, want INVALID_DECK_NAME", err)
	}
}

func TestFSSourceRejectsInvalidDeck(t *testing.T) {
	fsys := fstest.MapFS{
		"dupes.json": {Data: []byte(`[{"term":"A"},{"term":"a"}]`)},
	}
	_, err := NewFSSource(fsys).Load(context.Background(), "dupes")
	if !errors.Is(err, errors.ErrCodeInvalidCard) {
		t.Errorf("Load(dupes) = %v, want INVALID_CARD", err)
	}
}

func TestStaticSource(t *testing.T) {
	ctx := context.Background()
	src := StaticSource{"b": testDeck(1), "a": testDeck(2)}

	names, _ := src.List(ctx)
	if !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("List() = %v", names)
	}

	d, err := src.Load(ctx, "a")
	if err != nil || d.Len() != 2 {
		t.Fatalf("Load(a) = %v, %v", d, err)
	}
	d.Cards[0].Forbidden[0] = "mutated"
	again, _ := src.Load(ctx, "a")
	if again.Cards[0].Forbidden[0] == "mutated" {
		t.Error("Load should return a copy")
	}

	if _, err := src.Load(ctx, "zzz"); !errors.Is(err, errors.ErrCodeDeckNotFound) {
		t.Errorf("Load(zzz) = %v, want DECK_NOT_FOUND", err)
	}
}
