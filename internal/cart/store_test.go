package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainath-666/storefront/internal/model"
)

func TestStoreReplaysCurrentStateOnSubscribe(t *testing.T) {
	store := NewStore()
	store.Apply(1, func([]model.CartItem) []model.CartItem {
		return []model.CartItem{{CartItemId: 1, Quantity: 2}}
	})

	items, cancel := store.Subscribe()
	defer cancel()

	first := <-items
	require.Len(t, first, 1)
	assert.Equal(t, int64(1), first[0].CartItemId)
}

func TestStoreDeliversSubsequentStates(t *testing.T) {
	store := NewStore()
	items, cancel := store.Subscribe()
	defer cancel()

	assert.Empty(t, <-items)

	store.Apply(1, func([]model.CartItem) []model.CartItem {
		return []model.CartItem{{CartItemId: 1, Quantity: 1}}
	})
	store.Apply(2, func(current []model.CartItem) []model.CartItem {
		current[0].Quantity = 5
		return current
	})

	assert.Len(t, <-items, 1)
	second := <-items
	require.Len(t, second, 1)
	assert.Equal(t, 5, second[0].Quantity)
}

func TestStoreRejectsStaleVersion(t *testing.T) {
	store := NewStore()
	require.True(t, store.Apply(2, func([]model.CartItem) []model.CartItem {
		return []model.CartItem{{CartItemId: 2}}
	}))

	applied := store.Apply(1, func([]model.CartItem) []model.CartItem { return nil })

	assert.False(t, applied)
	require.Len(t, store.Snapshot(), 1)
	assert.Equal(t, uint64(2), store.Version())
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.Apply(1, func([]model.CartItem) []model.CartItem {
		return []model.CartItem{{CartItemId: 1, Quantity: 1}}
	})

	snapshot := store.Snapshot()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, store.Snapshot()[0].Quantity)
}

func TestStoreCancelClosesChannel(t *testing.T) {
	store := NewStore()
	items, cancel := store.Subscribe()
	<-items

	cancel()
	cancel()

	_, open := <-items
	assert.False(t, open)
}
