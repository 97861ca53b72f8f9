package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCodeExpired  = errors.New("code expired or never requested")
	ErrCodeMismatch = errors.New("code mismatch")
	ErrTooManyTries = errors.New("too many attempts")
)

// User is the minimal auth identity. Everything else about a person lives in
// the profile service.
type User struct {
	ID      string
	Channel string
}

// CodeStore persists pending one-time codes. Only the bcrypt hash is stored;
// the plaintext code exists in memory just long enough to dispatch it.
type CodeStore interface {
	Save(ctx context.Context, channel string, hash []byte, ttl time.Duration) error
	Get(ctx context.Context, channel string) ([]byte, bool, error)
	Delete(ctx context.Context, channel string) error
	// Bump increments and returns the verify-attempt counter for channel.
	Bump(ctx context.Context, channel string) (int, error)
	Ping(ctx context.Context) error
}

// UserStore maps login channels (email or phone) to user identities.
type UserStore interface {
	Resolve(ctx context.Context, channel string) (User, bool, error)
	Create(ctx context.Context, u User) error
}
