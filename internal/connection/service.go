package connection

import (
	"context"

	"github.com/shyntr/shyntr/internal/record"
)

// Service defines registry operations for SAML and OIDC connections.
type Service interface {
	ListSAMLConnections(ctx context.Context) ([]SAMLConnection, error)
	GetSAMLConnection(ctx context.Context, id string) (SAMLConnection, error)
	CreateSAMLConnection(ctx context.Context, p SAMLPayload) (SAMLConnection, error)
	UpdateSAMLConnection(ctx context.Context, id string, p SAMLPayload) (SAMLConnection, error)
	DeleteSAMLConnection(ctx context.Context, id string) error

	ListOIDCConnections(ctx context.Context) ([]OIDCConnection, error)
	GetOIDCConnection(ctx context.Context, id string) (OIDCConnection, error)
	CreateOIDCConnection(ctx context.Context, p OIDCPayload) (OIDCConnection, error)
	UpdateOIDCConnection(ctx context.Context, id string, p OIDCPayload) (OIDCConnection, error)
	DeleteOIDCConnection(ctx context.Context, id string) error
}

type service struct {
	saml SAMLStore
	oidc OIDCStore
}

// NewService creates a new connection service.
func NewService(saml SAMLStore, oidc OIDCStore) Service {
	return &service{saml: saml, oidc: oidc}
}

func (s *service) ListSAMLConnections(ctx context.Context) ([]SAMLConnection, error) {
	return s.saml.List(ctx)
}

func (s *service) GetSAMLConnection(ctx context.Context, id string) (SAMLConnection, error) {
	return s.saml.Get(ctx, id)
}

func (s *service) CreateSAMLConnection(ctx context.Context, p SAMLPayload) (SAMLConnection, error) {
	if err := validateMetadataXML(p.IDPMetadataXML); err != nil {
		return SAMLConnection{}, err
	}

	conn := p.toConnection()
	conn.ID = record.NewID()
	now := record.Timestamp()
	conn.CreatedAt = now
	conn.UpdatedAt = now

	if err := s.saml.Insert(ctx, conn); err != nil {
		return SAMLConnection{}, err
	}
	return conn, nil
}

func (s *service) UpdateSAMLConnection(ctx context.Context, id string, p SAMLPayload) (SAMLConnection, error) {
	existing, err := s.saml.Get(ctx, id)
	if err != nil {
		return SAMLConnection{}, err
	}
	if err := validateMetadataXML(p.IDPMetadataXML); err != nil {
		return SAMLConnection{}, err
	}

	merged := mergeSAML(existing, p)
	if err := s.saml.Replace(ctx, id, merged); err != nil {
		return SAMLConnection{}, err
	}
	return merged, nil
}

func (s *service) DeleteSAMLConnection(ctx context.Context, id string) error {
	return s.saml.Delete(ctx, id)
}

func (s *service) ListOIDCConnections(ctx context.Context) ([]OIDCConnection, error) {
	return s.oidc.List(ctx)
}

func (s *service) GetOIDCConnection(ctx context.Context, id string) (OIDCConnection, error) {
	return s.oidc.Get(ctx, id)
}

func (s *service) CreateOIDCConnection(ctx context.Context, p OIDCPayload) (OIDCConnection, error) {
	conn := p.toConnection()
	conn.ID = record.NewID()
	now := record.Timestamp()
	conn.CreatedAt = now
	conn.UpdatedAt = now

	if err := s.oidc.Insert(ctx, conn); err != nil {
		return OIDCConnection{}, err
	}
	return conn, nil
}

func (s *service) UpdateOIDCConnection(ctx context.Context, id string, p OIDCPayload) (OIDCConnection, error) {
	existing, err := s.oidc.Get(ctx, id)
	if err != nil {
		return OIDCConnection{}, err
	}

	merged := mergeOIDC(existing, p)
	if err := s.oidc.Replace(ctx, id, merged); err != nil {
		return OIDCConnection{}, err
	}
	return merged, nil
}

func (s *service) DeleteOIDCConnection(ctx context.Context, id string) error {
	return s.oidc.Delete(ctx, id)
}
