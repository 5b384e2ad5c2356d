package service

import (
	"context"
	"testing"
	"time"

	"giftoria/internal/domain"
	"giftoria/internal/storage"
	"giftoria/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCart(t *testing.T) *store.Cart {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cart, err := store.NewCart(context.Background(), storage.NewSlots(client, "test"), zap.NewNop())
	require.NoError(t, err)
	return cart
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	cart := newTestCart(t)
	checkout := NewCheckoutService(cart, 0, zap.NewNop())

	_, err := checkout.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_OrderClearsCart(t *testing.T) {
	cart := newTestCart(t)
	ctx := context.Background()

	p := domain.Product{ID: "1", Name: "Vase", Price: 10}
	require.NoError(t, cart.Add(ctx, p, 3))

	checkout := NewCheckoutService(cart, 0, zap.NewNop())
	order, err := checkout.PlaceOrder(ctx)
	require.NoError(t, err)

	assert.Equal(t, 30.0, order.Total)
	assert.Equal(t, 3, order.ItemCount)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.PlacedAt.IsZero())

	assert.Empty(t, cart.Items())
	assert.Equal(t, 0, cart.Count())
}

func TestCheckout_PaymentDelayElapses(t *testing.T) {
	cart := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, domain.Product{ID: "1", Price: 5}, 1))

	delay := 50 * time.Millisecond
	checkout := NewCheckoutService(cart, delay, zap.NewNop())

	start := time.Now()
	_, err := checkout.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestCheckout_CancelledContext(t *testing.T) {
	cart := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, domain.Product{ID: "1", Price: 5}, 2))

	checkout := NewCheckoutService(cart, time.Minute, zap.NewNop())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := checkout.PlaceOrder(cancelled)
	assert.ErrorIs(t, err, context.Canceled)

	// An aborted payment leaves the cart untouched.
	assert.Equal(t, 2, cart.Count())
}

func TestSimulateLatency_ZeroReturnsImmediately(t *testing.T) {
	start := time.Now()
	require.NoError(t, SimulateLatency(context.Background(), 0))
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}
