package oidcclient

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

func (s *memoryStore) Get(ctx context.Context, clientID string) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (s *memoryStore) Insert(ctx context.Context, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ClientID]; ok {
		return ErrClientIDExists
	}
	s.clients[c.ClientID] = c
	s.order = append(s.order, c.ClientID)
	return nil
}

func (s *memoryStore) Replace(ctx context.Context, clientID string, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[clientID]; !ok {
		return ErrNotFound
	}
	s.clients[clientID] = c
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[clientID]; !ok {
		return ErrNotFound
	}
	delete(s.clients, clientID)
	for i, id := range s.order {
		if id == clientID {
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

func (s *memoryStore) CountPublic(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, c := range s.clients {
		if c.Public {
			n++
		}
	}
	return n, nil
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
