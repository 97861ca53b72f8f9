package catalog

import (
	"context"
	"strconv"
	"sync"
)

// MemStore keeps the latest feed snapshot in memory. ReplaceAll swaps the
// whole snapshot so readers never observe a half-applied refresh.
type MemStore struct {
	mu      sync.RWMutex
	entries []Entry
	byKey   map[string]Product
}

func NewMemStore() *MemStore {
	return &MemStore{byKey: map[string]Product{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ReplaceAll(ctx context.Context, products []Product) error {
	entries := make([]Entry, 0, len(products))
	byKey := make(map[string]Product, len(products))

	for i, p := range products {
		k := Key(p, strconv.Itoa(i))
		if _, dup := byKey[k]; dup {
			continue
		}
		entries = append(entries, Entry{Key: k, Product: p})
		byKey[k] = p
	}

	s.mu.Lock()
	s.entries = entries
	s.byKey = byKey
	s.mu.Unlock()
	return nil
}

func (s *MemStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, key string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byKey[key]
	return p, ok, nil
}
