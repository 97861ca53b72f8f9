package cart

import (
	"sync"

	"AquaKart/internal/catalog"
)

// Item is one cart line: the raw product payload plus a quantity that is
// always >= 1. A decrement to zero deletes the line instead of storing it.
type Item struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// Store holds one cart per user. Every mutation replaces the user's map
// wholesale, so a snapshot handed to a reader never changes underneath it
// and change detection is a reference comparison. Carts are memory-only and
// reset on restart; that is the documented behavior, not an oversight.
type Store struct {
	mu    sync.RWMutex
	carts map[string]map[string]Item
}

func NewStore() *Store {
	return &Store{carts: map[string]map[string]Item{}}
}

// Increment adds one unit of key to the user's cart, inserting the line at
// quantity 1 when absent. The stored payload is refreshed to the latest one
// passed in. There is no upper bound on quantity.
func (s *Store) Increment(user, key string, product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.carts[user]
	next := make(map[string]Item, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}

	it := next[key]
	next[key] = Item{Product: product, Qty: it.Qty + 1}
	s.carts[user] = next
}

// Decrement removes one unit of key; the line disappears entirely when the
// quantity would drop below 1. Unknown keys are a no-op.
func (s *Store) Decrement(user, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.carts[user]
	it, ok := prev[key]
	if !ok {
		return
	}

	next := make(map[string]Item, len(prev))
	for k, v := range prev {
		if k == key {
			continue
		}
		next[k] = v
	}
	if it.Qty > 1 {
		next[key] = Item{Product: it.Product, Qty: it.Qty - 1}
	}
	s.carts[user] = next
}

// Remove deletes the line regardless of quantity. Unknown keys are a no-op.
func (s *Store) Remove(user, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.carts[user]
	if _, ok := prev[key]; !ok {
		return
	}

	next := make(map[string]Item, len(prev))
	for k, v := range prev {
		if k != key {
			next[k] = v
		}
	}
	s.carts[user] = next
}

func (s *Store) Clear(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[user] = map[string]Item{}
}

// Snapshot returns the user's current cart map. Callers must treat it as
// read-only; mutations always swap in a fresh map.
func (s *Store) Snapshot(user string) map[string]Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[user]
}

// Count is the total number of units across all lines.
func (s *Store) Count(user string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, it := range s.carts[user] {
		total += it.Qty
	}
	return total
}

// Quantity reports the stored quantity for key, 0 when absent.
func (s *Store) Quantity(user, key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[user][key].Qty
}

func (s *Store) Contains(user, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.carts[user][key]
	return ok
}
