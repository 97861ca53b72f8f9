package favorites

import (
	"sort"
	"sync"

	"AquaKart/internal/catalog"
)

// Entry is one favorited product, payload retained so the favorites screen
// renders without re-fetching the catalog.
type Entry struct {
	Key     string          `json:"key"`
	Product catalog.Product `json:"product"`
}

// Store holds one favorites set per user, encoded key -> product for O(1)
// membership plus payload retention. Mutations swap in a fresh map, same
// copy-on-write discipline as the cart. Memory-only by design.
type Store struct {
	mu   sync.RWMutex
	favs map[string]map[string]catalog.Product
}

func NewStore() *Store {
	return &Store{favs: map[string]map[string]catalog.Product{}}
}

// Toggle flips membership for key and reports the new state: true when the
// product was just added, false when it was just removed. This is the single
// mutator behind "tap heart", so callers never race a read against a write.
func (s *Store) Toggle(user, key string, product catalog.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.favs[user]
	_, had := prev[key]

	next := make(map[string]catalog.Product, len(prev)+1)
	for k, v := range prev {
		if had && k == key {
			continue
		}
		next[k] = v
	}
	if !had {
		next[key] = product
	}
	s.favs[user] = next
	return !had
}

// Remove deletes the entry unconditionally; unknown keys are a no-op.
func (s *Store) Remove(user, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.favs[user]
	if _, ok := prev[key]; !ok {
		return
	}

	next := make(map[string]catalog.Product, len(prev))
	for k, v := range prev {
		if k != key {
			next[k] = v
		}
	}
	s.favs[user] = next
}

func (s *Store) Clear(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favs[user] = map[string]catalog.Product{}
}

// Snapshot returns the user's current favorites map, read-only by contract.
func (s *Store) Snapshot(user string) map[string]catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favs[user]
}

func (s *Store) Count(user string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favs[user])
}

func (s *Store) IsFavorite(user, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favs[user][key]
	return ok
}

// Items lists the user's favorites sorted by key for a stable rendering
// order.
func (s *Store) Items(user string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.favs[user]))
	for k, p := range s.favs[user] {
		out = append(out, Entry{Key: k, Product: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
