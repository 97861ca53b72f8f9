package profile

import (
	"context"
	"time"
)

type Profile struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// Address is one saved delivery address. Exactly one address per user is the
// default as long as the user has any.
type Address struct {
	ID         string    `json:"id"`
	Label      string    `json:"label,omitempty"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Default    bool      `json:"default"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store interface {
	GetProfile(ctx context.Context, userID string) (Profile, bool, error)
	UpsertProfile(ctx context.Context, p Profile) error

	ListAddresses(ctx context.Context, userID string) ([]Address, error)
	AddAddress(ctx context.Context, userID string, a Address) error
	UpdateAddress(ctx context.Context, userID string, a Address) (bool, error)
	DeleteAddress(ctx context.Context, userID, addressID string) (bool, error)
	SetDefaultAddress(ctx context.Context, userID, addressID string) (bool, error)

	Ping(ctx context.Context) error
}
