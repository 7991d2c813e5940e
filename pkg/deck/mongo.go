package deck

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tabooprint/pkg/errors"
)

// Default MongoDB locations for card documents.
const (
	DefaultMongoDatabase   = "tabooprint"
	DefaultMongoCollection = "cards"
)

// cardDocument is the stored form of a card. One document per card; the
// deck is a field so a single collection can hold many decks.
type cardDocument struct {
	Deck      string   `bson:"deck"`
	DeckTitle string   `bson:"deck_title,omitempty"`
	Position  int      `bson:"position"`
	ID        int      `bson:"id,omitempty"`
	Term      string   `bson:"term"`
	Forbidden []string `bson:"forbidden"`
	Prompt    string   `bson:"prompt,omitempty"`
}

// MongoConfig configures a [MongoSource].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoSource loads decks from a MongoDB collection of card documents.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSource connects to MongoDB and verifies the connection.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoSource{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// List returns the distinct deck names in the collection, sorted.
func (s *MongoSource) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "deck", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Load returns the named deck with cards ordered by their stored position.
func (s *MongoSource) Load(ctx context.Context, name string) (Deck, error) {
	if err := errors.ValidateDeckName(name); err != nil {
		return Deck{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{{Key: "deck", Value: name}}, opts)
	if err != nil {
		return Deck{}, fmt.Errorf("find deck %q: %w", name, err)
	}
	var docs []cardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return Deck{}, fmt.Errorf("decode deck %q: %w", name, err)
	}
	if len(docs) == 0 {
		return Deck{}, errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", name)
	}

	d := fromDocuments(name, docs)
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// Save replaces the stored cards of d.Name with the cards of d.
func (s *MongoSource) Save(ctx context.Context, d Deck) error {
	if err := errors.ValidateDeckName(d.Name); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if _, err := s.coll.DeleteMany(ctx, bson.D{{Key: "deck", Value: d.Name}}); err != nil {
		return fmt.Errorf("clear deck %q: %w", d.Name, err)
	}
	docs := toDocuments(d)
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert deck %q: %w", d.Name, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocuments(d Deck) []interface{} {
	docs := make([]interface{}, len(d.Cards))
	for i, c := range d.Cards {
		docs[i] = cardDocument{
			Deck:      d.Name,
			DeckTitle: d.Title,
			Position:  i,
			ID:        c.ID,
			Term:      c.Term,
			Forbidden: c.Forbidden,
			Prompt:    c.Prompt,
		}
	}
	return docs
}

func fromDocuments(name string, docs []cardDocument) Deck {
	d := Deck{Name: name, Cards: make([]Card, len(docs))}
	for i, doc := range docs {
		if d.Title == "" {
			d.Title = doc.DeckTitle
		}
		d.Cards[i] = Card{ID: doc.ID, Term: doc.Term, Forbidden: doc.Forbidden, Prompt: doc.Prompt}
	}
	return d
}

var (
	_ Source = (*MongoSource)(nil)
	_ Saver  = (*MongoSource)(nil)
)
