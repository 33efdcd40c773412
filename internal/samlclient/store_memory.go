package samlclient

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	order   []string
	clients map[string]Client
}

// NewMemoryStore returns an in-memory Store, used by tests and for running
// the service without a MongoDB instance.
func NewMemoryStore() Store {
	return &memoryStore{clients: make(map[string]Client)}
}

func (s *memoryStore) EnsureIndexes(ctx context.Context) error { return nil }

func (s *memoryStore) List(ctx context.Context) ([]Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]Client, 0, len(s.order))
	for _, id := range s.order {
		clients = append(clients, s.clients[id])
		if len(clients) == listCap {
			break
		}
	}
	return clients, nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (s *memoryStore) GetByEntityID(ctx context.Context, entityID string) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.EntityID == entityID {
			return c, nil
		}
	}
	return Client{}, ErrNotFound
}

func (s *memoryStore) Insert(ctx context.Context, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clients {
		if existing.EntityID == c.EntityID {
			return ErrEntityIDExists
		}
	}
	s.clients[c.ID] = c
	s.order = append(s.order, c.ID)
	return nil
}

func (s *memoryStore) Replace(ctx context.Context, id string, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return ErrNotFound
	}
	s.clients[id] = c
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return ErrNotFound
	}
	delete(s.clients, id)
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
	return int64(len(s.clients)), nil
}

func (s *memoryStore) Recent(ctx context.Context, limit int) ([]Client, error) {
	clients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt > clients[j].CreatedAt
	})
	if len(clients) > limit {
		clients = clients[:limit]
	}
	return clients, nil
}
