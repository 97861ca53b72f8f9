package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AquaKart/internal/catalog"
)

func TestIncrementAccumulates(t *testing.T) {
	s := NewStore()
	p := catalog.Product{"id": "sku-1"}

	for i := 1; i <= 5; i++ {
		s.Increment("u1", "sku-1", p)
		assert.Equal(t, i, s.Quantity("u1", "sku-1"))
	}
	assert.Equal(t, 5, s.Count("u1"))
}

func TestDecrementToZeroRemovesEntry(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "k", catalog.Product{})

	s.Decrement("u1", "k")

	assert.False(t, s.Contains("u1", "k"))
	assert.Equal(t, 0, s.Quantity("u1", "k"))
	assert.Empty(t, s.Snapshot("u1"))
}

func TestDecrementUnknownKeyIsNoop(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "a", catalog.Product{})

	s.Decrement("u1", "missing")

	assert.Equal(t, 1, s.Count("u1"))
}

func TestQuantityNeverBelowOne(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "k", catalog.Product{})

	for i := 0; i < 4; i++ {
		s.Decrement("u1", "k")
	}

	for _, it := range s.Snapshot("u1") {
		require.GreaterOrEqual(t, it.Qty, 1)
	}
	assert.False(t, s.Contains("u1", "k"))
}

func TestRemoveAndClear(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "a", catalog.Product{})
	s.Increment("u1", "b", catalog.Product{})
	s.Increment("u1", "b", catalog.Product{})

	s.Remove("u1", "a")
	assert.False(t, s.Contains("u1", "a"))
	assert.Equal(t, 2, s.Count("u1"))

	s.Remove("u1", "missing") // no-op

	s.Clear("u1")
	assert.Empty(t, s.Snapshot("u1"))
	assert.Equal(t, 0, s.Count("u1"))
}

func TestIncrementRefreshesProductPayload(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "k", catalog.Product{"title": "old"})
	s.Increment("u1", "k", catalog.Product{"title": "new"})

	snap := s.Snapshot("u1")
	require.Contains(t, snap, "k")
	assert.Equal(t, "new", snap["k"].Product["title"])
	assert.Equal(t, 2, snap["k"].Qty)
}

func TestMutationsSwapSnapshots(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "k", catalog.Product{})

	before := s.Snapshot("u1")
	s.Increment("u1", "k", catalog.Product{})
	after := s.Snapshot("u1")

	// The old snapshot is untouched; change detection is reference-based.
	assert.Equal(t, 1, before["k"].Qty)
	assert.Equal(t, 2, after["k"].Qty)
}

func TestUsersAreIsolated(t *testing.T) {
	s := NewStore()
	s.Increment("u1", "k", catalog.Product{})

	assert.Equal(t, 0, s.Count("u2"))
	assert.False(t, s.Contains("u2", "k"))
}

func TestIncrementIncrementDecrementScenario(t *testing.T) {
	s := NewStore()
	productA := catalog.Product{"id": "sku-1", "title": "A"}

	s.Increment("u1", "sku-1", productA)
	s.Increment("u1", "sku-1", productA)
	s.Decrement("u1", "sku-1")

	snap := s.Snapshot("u1")
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap["sku-1"].Qty)
	assert.Equal(t, productA, snap["sku-1"].Product)
}
