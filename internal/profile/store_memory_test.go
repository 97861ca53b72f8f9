package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(id string, createdAt time.Time) Address {
	return Address{
		ID:         id,
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "00000",
		Country:    "US",
		CreatedAt:  createdAt,
	}
}

func TestProfileUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	_, found, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	p := Profile{UserID: "u1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.UpsertProfile(ctx, p))

	got, found, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, p, got)

	p.Name = "Ada L."
	require.NoError(t, s.UpsertProfile(ctx, p))
	got, _, _ = s.GetProfile(ctx, "u1")
	assert.Equal(t, "Ada L.", got.Name)
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	now := time.Now()

	require.NoError(t, s.AddAddress(ctx, "u1", addr("a1", now)))
	require.NoError(t, s.AddAddress(ctx, "u1", addr("a2", now.Add(time.Second))))

	list, err := s.ListAddresses(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Default)
	assert.False(t, list[1].Default)
}

func TestSetDefaultAddress(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	now := time.Now()

	require.NoError(t, s.AddAddress(ctx, "u1", addr("a1", now)))
	require.NoError(t, s.AddAddress(ctx, "u1", addr("a2", now.Add(time.Second))))

	found, err := s.SetDefaultAddress(ctx, "u1", "a2")
	require.NoError(t, err)
	assert.True(t, found)

	list, _ := s.ListAddresses(ctx, "u1")
	defaults := 0
	for _, a := range list {
		if a.Default {
			defaults++
			assert.Equal(t, "a2", a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	found, err = s.SetDefaultAddress(ctx, "u1", "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteDefaultPromotesEarliest(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	now := time.Now()

	require.NoError(t, s.AddAddress(ctx, "u1", addr("a1", now)))
	require.NoError(t, s.AddAddress(ctx, "u1", addr("a2", now.Add(time.Second))))
	require.NoError(t, s.AddAddress(ctx, "u1", addr("a3", now.Add(2*time.Second))))

	found, err := s.DeleteAddress(ctx, "u1", "a1")
	require.NoError(t, err)
	assert.True(t, found)

	list, _ := s.ListAddresses(ctx, "u1")
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID)
	assert.True(t, list[0].Default)
	assert.False(t, list[1].Default)
}

func TestDeleteUnknownAddress(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	found, err := s.DeleteAddress(ctx, "u1", "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateAddressPreservesDefaultAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	now := time.Now()

	require.NoError(t, s.AddAddress(ctx, "u1", addr("a1", now)))

	updated := addr("a1", time.Time{})
	updated.City = "Shelbyville"
	found, err := s.UpdateAddress(ctx, "u1", updated)
	require.NoError(t, err)
	assert.True(t, found)

	list, _ := s.ListAddresses(ctx, "u1")
	require.Len(t, list, 1)
	assert.Equal(t, "Shelbyville", list[0].City)
	assert.True(t, list[0].Default)
	assert.Equal(t, now, list[0].CreatedAt)
}
