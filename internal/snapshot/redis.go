package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wayfare/backend/internal/domain"
)

// RedisStore persists the snapshot as one JSON value under the namespace key.
// Redis already offers the exact shape the contract asks for — durable-enough
// key/value with whole-value replacement — so there is no schema beyond the
// key name.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore returns a RedisStore keyed by namespace
// (e.g. "travel-itineraries").
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

// Load fetches and decodes the snapshot value.
// Returns domain.ErrNotFound when the key does not exist.
func (r *RedisStore) Load(ctx context.Context) (domain.Snapshot, error) {
	data, err := r.client.Get(ctx, r.namespace).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Snapshot{}, fmt.Errorf("snapshot.RedisStore.Load: %w", domain.ErrNotFound)
		}
		return domain.Snapshot{}, fmt.Errorf("snapshot.RedisStore.Load: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot.RedisStore.Load: decode key %q: %w", r.namespace, err)
	}
	return snap, nil
}

// Save replaces the value under the namespace key. No TTL: snapshots live
// until the next write.
func (r *RedisStore) Save(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot.RedisStore.Save: encode: %w", err)
	}
	if err := r.client.Set(ctx, r.namespace, data, 0).Err(); err != nil {
		return fmt.Errorf("snapshot.RedisStore.Save: %w", err)
	}
	return nil
}
