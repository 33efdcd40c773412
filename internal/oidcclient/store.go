package oidcclient

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "oidc_clients"

// listCap bounds unpaginated listings as a fail-safe.
const listCap = 1000

// Store defines document-store operations for OIDC clients.
type Store interface {
	EnsureIndexes(ctx context.Context) error
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, clientID string) (Client, error)
	Insert(ctx context.Context, c Client) error
	Replace(ctx context.Context, clientID string, c Client) error
	Delete(ctx context.Context, clientID string) error
	Count(ctx context.Context) (int64, error)
	CountPublic(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]Client, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore creates a MongoDB-backed client store.
func NewStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique index on client_id. It backstops the
// service's pre-insert existence check against concurrent creates.
func (s *mongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "client_id", Value: 1}},
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

func (s *mongoStore) Get(ctx context.Context, clientID string) (Client, error) {
	var c Client
	err := s.coll.FindOne(ctx, bson.D{{Key: "client_id", Value: clientID}}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return Client{}, ErrNotFound
	}
	return c, err
}

func (s *mongoStore) Insert(ctx context.Context, c Client) error {
	_, err := s.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return ErrClientIDExists
	}
	return err
}

func (s *mongoStore) Replace(ctx context.Context, clientID string, c Client) error {
	result, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "client_id", Value: clientID}}, c)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, clientID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "client_id", Value: clientID}})
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

func (s *mongoStore) CountPublic(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{{Key: "public", Value: true}})
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
