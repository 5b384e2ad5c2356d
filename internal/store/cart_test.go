package store

import (
	"context"
	"testing"

	"giftoria/internal/domain"
	"giftoria/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSlots(t *testing.T) (*storage.Slots, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return storage.NewSlots(client, "test"), client
}

func testProduct(id string, price float64, inventory int) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      "Product " + id,
		Price:     price,
		Category:  "Test",
		Inventory: inventory,
	}
}

func TestCart_AddAccumulatesQuantity(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	properties := gopter.NewProperties(nil)

	properties.Property("repeated adds of one product keep a single line item whose quantity is the sum", prop.ForAll(
		func(quantities []int) bool {
			if err := cart.Clear(ctx); err != nil {
				return false
			}

			p := testProduct("p1", 10, 1000)
			want := 0
			for _, q := range quantities {
				if q < 1 {
					q = 1
				}
				if err := cart.Add(ctx, p, q); err != nil {
					return false
				}
				want += q
			}

			items := cart.Items()
			if len(quantities) == 0 {
				return len(items) == 0 && cart.Count() == 0 && cart.Total() == 0
			}

			return len(items) == 1 &&
				items[0].Quantity == want &&
				cart.Count() == want &&
				cart.Total() == float64(want)*p.Price
		},
		gen.SliceOf(gen.IntRange(1, 20)),
	))

	properties.TestingRun(t)
}

func TestCart_UpdateQuantityZeroEquivalentToRemove(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	properties := gopter.NewProperties(nil)

	properties.Property("updating to a non-positive quantity removes the line item", prop.ForAll(
		func(q int) bool {
			if err := cart.Clear(ctx); err != nil {
				return false
			}
			if err := cart.Add(ctx, testProduct("p1", 5, 100), 3); err != nil {
				return false
			}

			if err := cart.UpdateQuantity(ctx, "p1", q); err != nil {
				return false
			}

			for _, item := range cart.Items() {
				if item.Product.ID == "p1" {
					return false
				}
			}
			return cart.Count() == 0 && cart.Total() == 0
		},
		gen.IntRange(-10, 0),
	))

	properties.TestingRun(t)
}

func TestCart_Scenario(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	p1 := testProduct("1", 10, 5)

	require.NoError(t, cart.Add(ctx, p1, 2))
	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 20.0, cart.Total())

	require.NoError(t, cart.Add(ctx, p1, 3))
	assert.Equal(t, 5, cart.Count())
	assert.Equal(t, 50.0, cart.Total())
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 5, cart.Items()[0].Quantity)

	require.NoError(t, cart.UpdateQuantity(ctx, "1", 0))
	assert.Empty(t, cart.Items())
	assert.Equal(t, 0, cart.Count())
	assert.Equal(t, 0.0, cart.Total())
}

func TestCart_UpdateQuantitySetsExactValue(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, cart.Add(ctx, testProduct("1", 10, 50), 2))
	require.NoError(t, cart.UpdateQuantity(ctx, "1", 7))

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 7, cart.Items()[0].Quantity)
}

func TestCart_UpdateQuantityUnknownItem(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	err = cart.UpdateQuantity(ctx, "missing", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, cart.Add(ctx, testProduct("1", 10, 50), 1))
	require.NoError(t, cart.Remove(ctx, "does-not-exist"))
	assert.Len(t, cart.Items(), 1)

	require.NoError(t, cart.Remove(ctx, "1"))
	assert.Empty(t, cart.Items())
}

func TestCart_RoundTrip(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, cart.Add(ctx, testProduct("1", 10, 50), 2))
	require.NoError(t, cart.Add(ctx, testProduct("2", 25.5, 10), 1))

	// A fresh instance built over the same slots observes an identical
	// collection: same identifiers, quantities, order.
	reloaded, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, cart.Items(), reloaded.Items())
	assert.Equal(t, cart.Total(), reloaded.Total())
	assert.Equal(t, cart.Count(), reloaded.Count())
}

func TestCart_MalformedDataLoadsEmpty(t *testing.T) {
	slots, client := newTestSlots(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "test:cart", "{not json", 0).Err())

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, cart.Items())
}

func TestCart_ToggleIsTransient(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, cart.IsOpen())
	assert.True(t, cart.Toggle())
	assert.True(t, cart.IsOpen())

	// The drawer flag never reaches the persistence layer.
	reloaded, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, reloaded.IsOpen())
}

func TestCart_SnapshotIndependentOfCatalogEdits(t *testing.T) {
	slots, _ := newTestSlots(t)
	ctx := context.Background()

	catalog, err := NewCatalog(ctx, slots, true, zap.NewNop())
	require.NoError(t, err)
	cart, err := NewCart(ctx, slots, zap.NewNop())
	require.NoError(t, err)

	p, err := catalog.Get("1")
	require.NoError(t, err)
	require.NoError(t, cart.Add(ctx, p, 1))

	// Deleting the product from the catalog leaves the embedded copy alone.
	require.NoError(t, catalog.Delete(ctx, "1"))

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, p.Name, cart.Items()[0].Product.Name)
	assert.Equal(t, p.Price, cart.Items()[0].Product.Price)
}
