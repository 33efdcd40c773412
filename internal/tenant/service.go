package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/shyntr/shyntr/internal/record"
)

// Service defines registry operations for tenants. The reserved default
// tenant is resolved here, before any store access: it is always readable,
// never writable, and never persisted.
type Service interface {
	ListTenants(ctx context.Context) ([]Tenant, error)
	GetTenant(ctx context.Context, id string) (Tenant, error)
	CreateTenant(ctx context.Context, p Payload) (Tenant, error)
	UpdateTenant(ctx context.Context, id string, p Payload) (Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// NewService creates a new tenant service.
func NewService(store Store) Service {
	return &service{store: store}
}

// ListTenants returns the synthesized default tenant followed by all stored
// tenants. The default is always present, even with zero stored documents.
func (s *service) ListTenants(ctx context.Context) ([]Tenant, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return append([]Tenant{defaultTenant()}, stored...), nil
}

func (s *service) GetTenant(ctx context.Context, id string) (Tenant, error) {
	if id == record.DefaultTenantID {
		return defaultTenant(), nil
	}
	return s.store.Get(ctx, id)
}

func (s *service) CreateTenant(ctx context.Context, p Payload) (Tenant, error) {
	if p.Name == record.DefaultTenantID {
		return Tenant{}, ErrDefaultProtected
	}

	_, err := s.store.GetByName(ctx, p.Name)
	if err == nil {
		return Tenant{}, ErrNameExists
	}
	if !errors.Is(err, ErrNotFound) {
		return Tenant{}, fmt.Errorf("check existing tenant name: %w", err)
	}

	t := p.toTenant()
	t.ID = record.NewID()
	now := record.Timestamp()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.store.Insert(ctx, t); err != nil {
		return Tenant{}, err
	}
	return t, nil
}

func (s *service) UpdateTenant(ctx context.Context, id string, p Payload) (Tenant, error) {
	if id == record.DefaultTenantID || p.Name == record.DefaultTenantID {
		return Tenant{}, ErrDefaultProtected
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return Tenant{}, err
	}

	merged := merge(existing, p)
	if err := s.store.Replace(ctx, id, merged); err != nil {
		return Tenant{}, err
	}
	return merged, nil
}

func (s *service) DeleteTenant(ctx context.Context, id string) error {
	if id == record.DefaultTenantID {
		return ErrDefaultProtected
	}
	return s.store.Delete(ctx, id)
}
