package store

import (
	"context"
	"sort"
	"sync"

	"pangate/internal/plugin/models"
)

// InMemory is a mutex-guarded plugin store used when no database is configured
// and in tests. It applies the credential constraint under the write lock so a
// rejected write never becomes visible.
type InMemory struct {
	mu      sync.RWMutex
	plugins map[string]*models.Plugin
}

// NewInMemory constructs an empty store.
func NewInMemory() *InMemory {
	return &InMemory{plugins: make(map[string]*models.Plugin)}
}

func (s *InMemory) Create(_ context.Context, p *models.Plugin) error {
	if err := checkWritable(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plugins[p.UID]; exists {
		return ErrConflict
	}
	for _, existing := range s.plugins {
		if existing.ID == p.ID {
			return ErrConflict
		}
	}
	s.plugins[p.UID] = clone(p)
	return nil
}

func (s *InMemory) Update(_ context.Context, p *models.Plugin) error {
	if err := checkWritable(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.plugins[p.UID]
	if !ok {
		return ErrNotFound
	}
	updated := clone(p)
	// id, uid and created_at are immutable
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	s.plugins[p.UID] = updated
	return nil
}

func (s *InMemory) FindByUID(_ context.Context, uid string) (*models.Plugin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plugins[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

// List returns plugins ordered by creation time. An empty service lists all.
func (s *InMemory) List(_ context.Context, service models.Service) ([]*models.Plugin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Plugin, 0, len(s.plugins))
	for _, p := range s.plugins {
		if service == "" || p.Service == service {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].UID < out[j].UID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) DeleteByUID(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plugins[uid]; !ok {
		return ErrNotFound
	}
	delete(s.plugins, uid)
	return nil
}
