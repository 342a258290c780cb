package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/tasks/internal/core/kv"
	"github.com/colonyops/tasks/internal/data/db"
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db *db.DB
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	row, err := s.db.Queries().KVGet(ctx, key)
	if err != nil {
		if IsNotFoundError(err) {
			return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
		}
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	if err := json.Unmarshal(row.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}

	return nil
}

// Set stores a value, replacing any previous one.
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	now := time.Now().UnixNano()
	err = withBusyRetry(ctx, func() error {
		return s.db.Queries().KVSet(ctx, db.KVSetParams{
			Key:       key,
			Value:     data,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Queries().KVDelete(ctx, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.db.Queries().KVHas(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.db.Queries().KVListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	return keys, nil
}
