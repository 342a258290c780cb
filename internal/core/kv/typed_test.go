package kv

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV is an in-memory KV for testing.
type memKV map[string][]byte

func (m memKV) Get(_ context.Context, key string, dest any) error {
	data, ok := m[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (m memKV) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m[key] = data
	return nil
}

func (m memKV) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func (m memKV) Has(_ context.Context, key string) (bool, error) {
	_, ok := m[key]
	return ok, nil
}

func (m memKV) ListKeys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func TestTypedKV(t *testing.T) {
	ctx := context.Background()
	store := memKV{}
	themes := Scoped[string](store, "app")

	t.Run("prefixes keys", func(t *testing.T) {
		require.NoError(t, themes.Set(ctx, "theme", "dark"))
		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"app.theme"}, keys)
	})

	t.Run("get round trips", func(t *testing.T) {
		got, err := themes.Get(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", got)
	})

	t.Run("get or falls back on missing", func(t *testing.T) {
		got, err := themes.GetOr(ctx, "missing", "light")
		require.NoError(t, err)
		assert.Equal(t, "light", got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, themes.Delete(ctx, "theme"))
		ok, err := themes.Has(ctx, "theme")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = themes.Get(ctx, "theme")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
