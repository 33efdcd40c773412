package tenant

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	order   []string
	tenants map[string]Tenant
}

// NewMemoryStore returns an in-memory Store, used by tests and for running
// the service without a MongoDB instance.
func NewMemoryStore() Store {
	return &memoryStore{tenants: make(map[string]Tenant)}
}

func (s *memoryStore) EnsureIndexes(ctx context.Context) error { return nil }

func (s *memoryStore) List(ctx context.Context) ([]Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tenants := make([]Tenant, 0, len(s.order))
	for _, id := range s.order {
		tenants = append(tenants, s.tenants[id])
		if len(tenants) == listCap {
			break
		}
	}
	return tenants, nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[id]
	if !ok {
		return Tenant{}, ErrNotFound
	}
	return t, nil
}

func (s *memoryStore) GetByName(ctx context.Context, name string) (Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenants {
		if t.Name == name {
			return t, nil
		}
	}
	return Tenant{}, ErrNotFound
}

func (s *memoryStore) Insert(ctx context.Context, t Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if existing.Name == t.Name {
			return ErrNameExists
		}
	}
	s.tenants[t.ID] = t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *memoryStore) Replace(ctx context.Context, id string, t Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return ErrNotFound
	}
	s.tenants[id] = t
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return ErrNotFound
	}
	delete(s.tenants, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tenants)), nil
}
