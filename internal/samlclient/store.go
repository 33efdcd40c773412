package samlclient

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "saml_clients"

const listCap = 1000

// Store defines document-store operations for SAML clients.
type Store interface {
	EnsureIndexes(ctx context.Context) error
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (Client, error)
	GetByEntityID(ctx context.Context, entityID string) (Client, error)
	Insert(ctx context.Context, c Client) error
	Replace(ctx context.Context, id string, c Client) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]Client, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore creates a MongoDB-backed SAML client store.
func NewStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(collectionName)}
}

func (s *mongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "entity_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *mongoStore) List(ctx context.Context) ([]Client, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	clients := []Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *mongoStore) Get(ctx context.Context, id string) (Client, error) {
	var c Client
	err := s.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return Client{}, ErrNotFound
	}
	return c, err
}

func (s *mongoStore) GetByEntityID(ctx context.Context, entityID string) (Client, error) {
	var c Client
	err := s.coll.FindOne(ctx, bson.D{{Key: "entity_id", Value: entityID}}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return Client{}, ErrNotFound
	}
	return c, err
}

func (s *mongoStore) Insert(ctx context.Context, c Client) error {
	_, err := s.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEntityIDExists
	}
	return err
}

func (s *mongoStore) Replace(ctx context.Context, id string, c Client) error {
	result, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "id", Value: id}}, c)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}

func (s *mongoStore) Recent(ctx context.Context, limit int) ([]Client, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	clients := []Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}
