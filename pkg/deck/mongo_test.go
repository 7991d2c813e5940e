package deck

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestDocumentsRoundTrip(t *testing.T) {
	d := Deck{Name: "party", Title: "Party Pack", Cards: []Card{
		{ID: 7, Term: "Pizza", Forbidden: []string{"Cheese"}},
		{ID: 3, Term: "Beach", Forbidden: []string{"Sand", "Sea"}, Prompt: "shore"},
	}}

	raw := toDocuments(d)
	docs := make([]cardDocument, len(raw))
	for i, r := range raw {
		docs[i] = r.(cardDocument)
		if docs[i].Position != i {
			t.Errorf("doc %d position = %d", i, docs[i].Position)
		}
	}

	got := fromDocuments("party", docs)
	if got.Title != "Party Pack" || got.Len() != 2 {
		t.Fatalf("fromDocuments = %+v", got)
	}
	if got.Cards[1].Prompt != "shore" || got.Cards[0].ID != 7 {
		t.Errorf("cards = %+v", got.Cards)
	}
}

func TestMongoSourceIntegration(t *testing.T) {
	uri := os.Getenv("TABOOPRINT_MONGO_URI")
	if uri == "" {
		t.Skip("TABOOPRINT_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	src, err := NewMongoSource(ctx, MongoConfig{URI: uri, Database: "tabooprint_test"})
	if err != nil {
		t.Fatalf("NewMongoSource: %v", err)
	}
	defer src.Close(ctx)

	want := testDeck(3)
	want.Name = "integration"
	if err := src.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := src.Load(ctx, "integration")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 3 || got.Cards[2].Term != want.Cards[2].Term {
		t.Errorf("Load = %+v", got)
	}
}
