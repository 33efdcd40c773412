package connection

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	samlCollectionName = "saml_connections"
	oidcCollectionName = "oidc_connections"
)

const listCap = 1000

// SAMLStore defines document-store operations for SAML connections.
type SAMLStore interface {
	List(ctx context.Context) ([]SAMLConnection, error)
	Get(ctx context.Context, id string) (SAMLConnection, error)
	Insert(ctx context.Context, conn SAMLConnection) error
	Replace(ctx context.Context, id string, conn SAMLConnection) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]SAMLConnection, error)
}

// OIDCStore defines document-store operations for OIDC connections.
type OIDCStore interface {
	List(ctx context.Context) ([]OIDCConnection, error)
	Get(ctx context.Context, id string) (OIDCConnection, error)
	Insert(ctx context.Context, conn OIDCConnection) error
	Replace(ctx context.Context, id string, conn OIDCConnection) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]OIDCConnection, error)
}

type samlMongoStore struct {
	coll *mongo.Collection
}

// NewSAMLStore creates a MongoDB-backed SAML connection store.
func NewSAMLStore(db *mongo.Database) SAMLStore {
	return &samlMongoStore{coll: db.Collection(samlCollectionName)}
}

func (s *samlMongoStore) List(ctx context.Context) ([]SAMLConnection, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	conns := []SAMLConnection{}
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

func (s *samlMongoStore) Get(ctx context.Context, id string) (SAMLConnection, error) {
	var conn SAMLConnection
	err := s.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return SAMLConnection{}, ErrNotFound
	}
	return conn, err
}

func (s *samlMongoStore) Insert(ctx context.Context, conn SAMLConnection) error {
	_, err := s.coll.InsertOne(ctx, conn)
	return err
}

func (s *samlMongoStore) Replace(ctx context.Context, id string, conn SAMLConnection) error {
	result, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "id", Value: id}}, conn)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *samlMongoStore) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *samlMongoStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}

func (s *samlMongoStore) Recent(ctx context.Context, limit int) ([]SAMLConnection, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	conns := []SAMLConnection{}
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

type oidcMongoStore struct {
	coll *mongo.Collection
}

// NewOIDCStore creates a MongoDB-backed OIDC connection store.
func NewOIDCStore(db *mongo.Database) OIDCStore {
	return &oidcMongoStore{coll: db.Collection(oidcCollectionName)}
}

func (s *oidcMongoStore) List(ctx context.Context) ([]OIDCConnection, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	conns := []OIDCConnection{}
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

func (s *oidcMongoStore) Get(ctx context.Context, id string) (OIDCConnection, error) {
	var conn OIDCConnection
	err := s.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return OIDCConnection{}, ErrNotFound
	}
	return conn, err
}

func (s *oidcMongoStore) Insert(ctx context.Context, conn OIDCConnection) error {
	_, err := s.coll.InsertOne(ctx, conn)
	return err
}

func (s *oidcMongoStore) Replace(ctx context.Context, id string, conn OIDCConnection) error {
	result, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "id", Value: id}}, conn)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *oidcMongoStore) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *oidcMongoStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}

func (s *oidcMongoStore) Recent(ctx context.Context, limit int) ([]OIDCConnection, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	conns := []OIDCConnection{}
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}
