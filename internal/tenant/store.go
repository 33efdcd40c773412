package tenant

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "tenants"

const listCap = 1000

// Store defines document-store operations for tenants. The reserved
// default tenant never reaches this layer.
type Store interface {
	EnsureIndexes(ctx context.Context) error
	List(ctx context.Context) ([]Tenant, error)
	Get(ctx context.Context, id string) (Tenant, error)
	GetByName(ctx context.Context, name string) (Tenant, error)
	Insert(ctx context.Context, t Tenant) error
	Replace(ctx context.Context, id string, t Tenant) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore creates a MongoDB-backed tenant store.
func NewStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(collectionName)}
}

func (s *mongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *mongoStore) List(ctx context.Context) ([]Tenant, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	tenants := []Tenant{}
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

func (s *mongoStore) Get(ctx context.Context, id string) (Tenant, error) {
	var t Tenant
	err := s.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return Tenant{}, ErrNotFound
	}
	return t, err
}

func (s *mongoStore) GetByName(ctx context.Context, name string) (Tenant, error) {
	var t Tenant
	err := s.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return Tenant{}, ErrNotFound
	}
	return t, err
}

func (s *mongoStore) Insert(ctx context.Context, t Tenant) error {
	_, err := s.coll.InsertOne(ctx, t)
	if mongo.IsDuplicateKeyError(err) {
		return ErrNameExists
	}
	return err
}

func (s *mongoStore) Replace(ctx context.Context, id string, t Tenant) error {
	result, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "id", Value: id}}, t)
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
