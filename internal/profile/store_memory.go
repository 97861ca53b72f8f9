package profile

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu        sync.RWMutex
	profiles  map[string]Profile
	addresses map[string][]Address
}

func NewMemStore() *MemStore {
	return &MemStore{
		profiles:  make(map[string]Profile),
		addresses: make(map[string][]Address),
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) GetProfile(ctx context.Context, userID string) (Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	return p, ok, nil
}

func (s *MemStore) UpsertProfile(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[p.UserID] = p
	return nil
}

func (s *MemStore) ListAddresses(ctx context.Context, userID string) ([]Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.addresses[userID]
	out := make([]Address, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) AddAddress(ctx context.Context, userID string, a Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The first saved address becomes the default.
	if len(s.addresses[userID]) == 0 {
		a.Default = true
	}
	s.addresses[userID] = append(s.addresses[userID], a)
	return nil
}

func (s *MemStore) UpdateAddress(ctx context.Context, userID string, a Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addresses[userID]
	for i := range list {
		if list[i].ID == a.ID {
			a.Default = list[i].Default
			a.CreatedAt = list[i].CreatedAt
			list[i] = a
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) DeleteAddress(ctx context.Context, userID, addressID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addresses[userID]
	idx := -1
	for i := range list {
		if list[i].ID == addressID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	wasDefault := list[idx].Default
	list = append(list[:idx], list[idx+1:]...)
	s.addresses[userID] = list

	// Deleting the default promotes the earliest remaining address.
	if wasDefault && len(list) > 0 {
		earliest := 0
		for i := range list {
			if list[i].CreatedAt.Before(list[earliest].CreatedAt) {
				earliest = i
			}
		}
		list[earliest].Default = true
	}
	return true, nil
}

func (s *MemStore) SetDefaultAddress(ctx context.Context, userID, addressID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addresses[userID]
	found := false
	for i := range list {
		if list[i].ID == addressID {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	for i := range list {
		list[i].Default = list[i].ID == addressID
	}
	return true, nil
}
