package storage

import (
	"context"
	"fmt"

	"giftoria/internal/config"

	"github.com/redis/go-redis/v9"
)

// Slots is the persistence layer behind the state containers. Each store
// owns one named slot holding the full serialized collection; every mutation
// rewrites the slot whole, last write wins.
type Slots struct {
	client *redis.Client
	prefix string
}

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewSlots creates a slot accessor over the given client. All slot names
// are namespaced under the configured prefix.
func NewSlots(client *redis.Client, prefix string) *Slots {
	return &Slots{client: client, prefix: prefix}
}

func (s *Slots) key(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}

// Read returns the slot contents. The second return value is false when the
// slot has never been written (or has been cleared).
func (s *Slots) Read(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %q: %w", name, err)
	}
	return data, true, nil
}

// Write replaces the slot contents.
func (s *Slots) Write(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", name, err)
	}
	return nil
}

// Clear removes the slot entirely. Clearing an absent slot is a no-op.
func (s *Slots) Clear(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to clear slot %q: %w", name, err)
	}
	return nil
}

// Health pings the backing Redis instance.
func (s *Slots) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("storage unreachable: %w", err)
	}
	return nil
}
