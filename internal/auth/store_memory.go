package auth

import (
	"context"
	"sync"
	"time"
)

type memCode struct {
	hash      []byte
	expiresAt time.Time
	attempts  int
}

// MemCodeStore keeps pending codes in process memory. Fine for dev and for
// single-instance deployments; the redis store covers everything else.
type MemCodeStore struct {
	mu    sync.Mutex
	codes map[string]*memCode
}

func NewMemCodeStore() *MemCodeStore {
	return &MemCodeStore{codes: make(map[string]*memCode)}
}

func (s *MemCodeStore) Ping(ctx context.Context) error { return nil }

func (s *MemCodeStore) Save(ctx context.Context, channel string, hash []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[channel] = &memCode{hash: hash, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemCodeStore) Get(ctx context.Context, channel string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[channel]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(c.expiresAt) {
		delete(s.codes, channel)
		return nil, false, nil
	}
	return c.hash, true, nil
}

func (s *MemCodeStore) Delete(ctx context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, channel)
	return nil
}

func (s *MemCodeStore) Bump(ctx context.Context, channel string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[channel]
	if !ok {
		return 0, nil
	}
	c.attempts++
	return c.attempts, nil
}

// MemUserStore is the in-memory channel -> user registry.
type MemUserStore struct {
	mu        sync.RWMutex
	byChannel map[string]User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{byChannel: make(map[string]User)}
}

func (s *MemUserStore) Resolve(ctx context.Context, channel string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byChannel[channel]
	return u, ok, nil
}

func (s *MemUserStore) Create(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byChannel[u.Channel] = u
	return nil
}
