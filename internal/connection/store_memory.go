package connection

import (
	"context"
	"sort"
	"sync"
)

type samlMemoryStore struct {
	mu    sync.RWMutex
	order []string
	conns map[string]SAMLConnection
}

// NewSAMLMemoryStore returns an in-memory SAMLStore, used by tests and for
// running the service without a MongoDB instance.
func NewSAMLMemoryStore() SAMLStore {
	return &samlMemoryStore{conns: make(map[string]SAMLConnection)}
}

func (s *samlMemoryStore) List(ctx context.Context) ([]SAMLConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conns := make([]SAMLConnection, 0, len(s.order))
	for _, id := range s.order {
		conns = append(conns, s.conns[id])
		if len(conns) == listCap {
			break
		}
	}
	return conns, nil
}

func (s *samlMemoryStore) Get(ctx context.Context, id string) (SAMLConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.conns[id]
	if !ok {
		return SAMLConnection{}, ErrNotFound
	}
	return conn, nil
}

func (s *samlMemoryStore) Insert(ctx context.Context, conn SAMLConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn.ID] = conn
	s.order = append(s.order, conn.ID)
	return nil
}

func (s *samlMemoryStore) Replace(ctx context.Context, id string, conn SAMLConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[id]; !ok {
		return ErrNotFound
	}
	s.conns[id] = conn
	return nil
}

func (s *samlMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[id]; !ok {
		return ErrNotFound
	}
	delete(s.conns, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *samlMemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.conns)), nil
}

func (s *samlMemoryStore) Recent(ctx context.Context, limit int) ([]SAMLConnection, error) {
	conns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(conns, func(i, j int) bool {
		return conns[i].CreatedAt > conns[j].CreatedAt
	})
	if len(conns) > limit {
		conns = conns[:limit]
	}
	return conns, nil
}

type oidcMemoryStore struct {
	mu    sync.RWMutex
	order []string
	conns map[string]OIDCConnection
}

// NewOIDCMemoryStore returns an in-memory OIDCStore, used by tests and for
// running the service without a MongoDB instance.
func NewOIDCMemoryStore() OIDCStore {
	return &oidcMemoryStore{conns: make(map[string]OIDCConnection)}
}

func (s *oidcMemoryStore) List(ctx context.Context) ([]OIDCConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conns := make([]OIDCConnection, 0, len(s.order))
	for _, id := range s.order {
		conns = append(conns, s.conns[id])
		if len(conns) == listCap {
			break
		}
	}
	return conns, nil
}

func (s *oidcMemoryStore) Get(ctx context.Context, id string) (OIDCConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.conns[id]
	if !ok {
		return OIDCConnection{}, ErrNotFound
	}
	return conn, nil
}

func (s *oidcMemoryStore) Insert(ctx context.Context, conn OIDCConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn.ID] = conn
	s.order = append(s.order, conn.ID)
	return nil
}

func (s *oidcMemoryStore) Replace(ctx context.Context, id string, conn OIDCConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[id]; !ok {
		return ErrNotFound
	}
	s.conns[id] = conn
	return nil
}

func (s *oidcMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[id]; !ok {
		return ErrNotFound
	}
	delete(s.conns, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *oidcMemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.conns)), nil
}

func (s *oidcMemoryStore) Recent(ctx context.Context, limit int) ([]OIDCConnection, error) {
	conns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(conns, func(i, j int) bool {
		return conns[i].CreatedAt > conns[j].CreatedAt
	})
	if len(conns) > limit {
		conns = conns[:limit]
	}
	return conns, nil
}
