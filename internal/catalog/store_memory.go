package catalog

import (
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	items  []Product
	lastID int64
}

func NewMemStore() *MemStore {
	return &MemStore{items: make([]Product, 0, 16)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

func (s *MemStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctCategories(s.items), nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return Product{}, false, nil
	}
	return s.items[i], true, nil
}

func (s *MemStore) Create(ctx context.Context, f Fields) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	p := f.product(s.lastID, DefaultRating)
	s.items = append(s.items, p)
	return p, nil
}

func (s *MemStore) Replace(ctx context.Context, id int64, f Fields) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Product{}, false, nil
	}
	s.items[i] = f.product(id, s.items[i].Rating)
	return s.items[i], true, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true, nil
}

// index must be called with mu held.
func (s *MemStore) index(id int64) int {
	return slices.IndexFunc(s.items, func(p Product) bool { return p.ID == id })
}
