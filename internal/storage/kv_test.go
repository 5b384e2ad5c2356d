package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlots(t *testing.T) (*Slots, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSlots(client, "giftoria"), mr
}

func TestSlots_ReadAbsentSlot(t *testing.T) {
	slots, _ := newSlots(t)

	data, ok, err := slots.Read(context.Background(), "products")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestSlots_WriteReadRoundTrip(t *testing.T) {
	slots, mr := newSlots(t)
	ctx := context.Background()

	require.NoError(t, slots.Write(ctx, "cart", []byte(`[{"quantity":2}]`)))

	data, ok, err := slots.Read(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"quantity":2}]`, string(data))

	// Slots are namespaced under the configured prefix.
	got, err := mr.Get("giftoria:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":2}]`, got)
}

func TestSlots_Clear(t *testing.T) {
	slots, _ := newSlots(t)
	ctx := context.Background()

	require.NoError(t, slots.Write(ctx, "session", []byte(`{}`)))
	require.NoError(t, slots.Clear(ctx, "session"))

	_, ok, err := slots.Read(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an absent slot is a no-op.
	require.NoError(t, slots.Clear(ctx, "session"))
}

func TestSlots_Health(t *testing.T) {
	slots, mr := newSlots(t)

	require.NoError(t, slots.Health(context.Background()))

	mr.Close()
	assert.Error(t, slots.Health(context.Background()))
}
