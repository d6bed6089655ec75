package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/flowbox/pkg/document"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "flowbox"
	DefaultCollection = "layouts"
)

const connectTimeout = 10 * time.Second

// storedLayout is the record shape in both stores.
type storedLayout struct {
	ID        string          `bson:"_id"`
	CreatedAt time.Time       `bson:"created_at"`
	Layout    document.Layout `bson:"layout"`
}

// MongoStore stores layouts in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and returns a store backed by the layouts
// collection of the flowbox database. The connection is checked with a
// ping before returning.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoStoreFromClient(client, DefaultDatabase, DefaultCollection), nil
}

// NewMongoStoreFromClient wraps an existing client. Close disconnects it.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, l document.Layout) (string, error) {
	rec := storedLayout{ID: newID(), CreatedAt: time.Now().UTC(), Layout: l}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert layout: %w", err)
	}
	return rec.ID, nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, id string) (document.Layout, error) {
	var rec storedLayout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return document.Layout{}, notFound(id)
	}
	if err != nil {
		return document.Layout{}, fmt.Errorf("find layout %s: %w", id, err)
	}
	return rec.Layout, nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
