package utils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_Passthrough(t *testing.T) {
	var out bytes.Buffer
	d := NewDeferredWriter(&out)

	n, err := d.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", out.String())
	assert.Zero(t, d.Len())
}

func TestDeferredWriter_Hold(t *testing.T) {
	t.Run("buffers until release", func(t *testing.T) {
		var out bytes.Buffer
		d := NewDeferredWriter(&out)
		d.Hold()

		_, err := d.Write([]byte("hello "))
		require.NoError(t, err)
		_, err = d.Write([]byte("world"))
		require.NoError(t, err)

		assert.Empty(t, out.String())
		assert.Equal(t, 11, d.Len())

		require.NoError(t, d.Release())
		assert.Equal(t, "hello world", out.String())
		assert.Zero(t, d.Len())

		_, err = d.Write([]byte("!"))
		require.NoError(t, err)
		assert.Equal(t, "hello world!", out.String(), "writes pass through after release")
	})

	t.Run("release with nothing buffered", func(t *testing.T) {
		var out bytes.Buffer
		d := NewDeferredWriter(&out)
		d.Hold()
		require.NoError(t, d.Release())
		assert.Empty(t, out.String())
	})

	t.Run("concurrent writes are safe", func(t *testing.T) {
		var out bytes.Buffer
		d := NewDeferredWriter(&out)
		d.Hold()

		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = d.Write([]byte("x"))
			}()
		}
		wg.Wait()

		require.NoError(t, d.Release())
		assert.Len(t, out.String(), 100)
	})
}

func TestDeferredWriter_NilOut(t *testing.T) {
	d := NewDeferredWriter(nil)

	_, err := d.Write([]byte("kept"))
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())
	require.NoError(t, d.Release())
}
