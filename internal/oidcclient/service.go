package oidcclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/shyntr/shyntr/internal/record"
)

// Service defines registry operations for OIDC clients.
type Service interface {
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, clientID string) (Client, error)
	CreateClient(ctx context.Context, p Payload) (Client, error)
	UpdateClient(ctx context.Context, clientID string, p Payload) (Client, error)
	DeleteClient(ctx context.Context, clientID string) error
}

type service struct {
	store Store
}

// NewService creates a new OIDC client service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) ListClients(ctx context.Context) ([]Client, error) {
	return s.store.List(ctx)
}

func (s *service) GetClient(ctx context.Context, clientID string) (Client, error) {
	return s.store.Get(ctx, clientID)
}

func (s *service) CreateClient(ctx context.Context, p Payload) (Client, error) {
	_, err := s.store.Get(ctx, p.ClientID)
	if err == nil {
		return Client{}, ErrClientIDExists
	}
	if !errors.Is(err, ErrNotFound) {
		return Client{}, fmt.Errorf("check existing client: %w", err)
	}

	c := p.toClient()
	if c.ClientSecret == "" {
		c.ClientSecret = record.GenerateSecret()
	}
	now := record.Timestamp()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.store.Insert(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *service) UpdateClient(ctx context.Context, clientID string, p Payload) (Client, error) {
	existing, err := s.store.Get(ctx, clientID)
	if err != nil {
		return Client{}, err
	}

	merged := merge(existing, p)
	if err := s.store.Replace(ctx, clientID, merged); err != nil {
		return Client{}, err
	}
	return merged, nil
}

func (s *service) DeleteClient(ctx context.Context, clientID string) error {
	return s.store.Delete(ctx, clientID)
}
