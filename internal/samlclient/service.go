package samlclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/shyntr/shyntr/internal/record"
)

// Service defines registry operations for SAML clients.
type Service interface {
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, id string) (Client, error)
	CreateClient(ctx context.Context, p Payload) (Client, error)
	UpdateClient(ctx context.Context, id string, p Payload) (Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// NewService creates a new SAML client service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) ListClients(ctx context.Context) ([]Client, error) {
	return s.store.List(ctx)
}

func (s *service) GetClient(ctx context.Context, id string) (Client, error) {
	return s.store.Get(ctx, id)
}

func (s *service) CreateClient(ctx context.Context, p Payload) (Client, error) {
	_, err := s.store.GetByEntityID(ctx, p.EntityID)
	if err == nil {
		return Client{}, ErrEntityIDExists
	}
	if !errors.Is(err, ErrNotFound) {
		return Client{}, fmt.Errorf("check existing entity id: %w", err)
	}

	c := p.toClient()
	c.ID = record.NewID()
	now := record.Timestamp()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.store.Insert(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *service) UpdateClient(ctx context.Context, id string, p Payload) (Client, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}

	merged := merge(existing, p)
	if err := s.store.Replace(ctx, id, merged); err != nil {
		return Client{}, err
	}
	return merged, nil
}

func (s *service) DeleteClient(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
