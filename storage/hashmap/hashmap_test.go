package hashmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmikhailov/spatialstore/storage"
)

func TestMap(t *testing.T) {
	t.Run("AddGetRemove", func(t *testing.T) {
		m := New()

		added, err := m.Add(storage.Entry{X: 10, Y: 20, Label: "a"})
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 1, m.Count())

		e, err := m.Get(10, 20)
		require.NoError(t, err)
		assert.Equal(t, "a", e.Label)

		removed, err := m.Remove(10, 20)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, 0, m.Count())

		_, err = m.Get(10, 20)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("UpdateInPlace", func(t *testing.T) {
		m := New()

		added, err := m.Add(storage.Entry{X: 1, Y: 2, Label: "old"})
		require.NoError(t, err)
		assert.True(t, added)

		added, err = m.Add(storage.Entry{X: 1, Y: 2, Label: "new"})
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, 1, m.Count())

		e, err := m.Get(1, 2)
		require.NoError(t, err)
		assert.Equal(t, "new", e.Label)
	})

	t.Run("TryGet", func(t *testing.T) {
		m := New()
		_, _ = m.Add(storage.Entry{X: 5, Y: 5, Label: "x"})

		e, ok := m.TryGet(5, 5)
		assert.True(t, ok)
		assert.Equal(t, "x", e.Label)

		_, ok = m.TryGet(6, 6)
		assert.False(t, ok)

		// TryGet never errors, even on invalid coordinates.
		_, ok = m.TryGet(-1, 0)
		assert.False(t, ok)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		m := New(storage.WithMaxCoordinate(100))

		_, err := m.Add(storage.Entry{X: 100, Y: 0})
		assert.ErrorIs(t, err, storage.ErrOutOfRange)

		_, err = m.Get(0, -1)
		assert.ErrorIs(t, err, storage.ErrOutOfRange)

		_, err = m.Contains(101, 0)
		assert.ErrorIs(t, err, storage.ErrOutOfRange)

		_, err = m.WithinRadiusOf(100, 0, 5)
		assert.ErrorIs(t, err, storage.ErrOutOfRange)
	})

	t.Run("InvalidArguments", func(t *testing.T) {
		m := New()

		_, err := m.InRegion(10, 0, 5, 5)
		assert.ErrorIs(t, err, storage.ErrInvalidArgument)

		_, err = m.WithinRadius(-1)
		assert.ErrorIs(t, err, storage.ErrInvalidArgument)

		_, err = m.WithinRadiusOf(0, 0, -1)
		assert.ErrorIs(t, err, storage.ErrInvalidArgument)
	})

	t.Run("RegionScan", func(t *testing.T) {
		m := New()
		_, _ = m.Add(storage.Entry{X: 1, Y: 1, Label: "in"})
		_, _ = m.Add(storage.Entry{X: 10, Y: 10, Label: "edge"})
		_, _ = m.Add(storage.Entry{X: 11, Y: 10, Label: "out"})

		got, err := m.InRegion(0, 0, 10, 10)
		require.NoError(t, err)
		labels := make([]string, 0, len(got))
		for _, e := range got {
			labels = append(labels, e.Label)
		}
		assert.ElementsMatch(t, []string{"in", "edge"}, labels)
	})

	t.Run("Clear", func(t *testing.T) {
		m := New()
		_, _ = m.Add(storage.Entry{X: 1, Y: 1})
		_, _ = m.Add(storage.Entry{X: 2, Y: 2})
		m.Clear()
		assert.Equal(t, 0, m.Count())
		assert.Empty(t, m.ListAll())
	})
}

func TestStringMap(t *testing.T) {
	t.Run("SameBehaviorAsMap", func(t *testing.T) {
		m := NewStringMap()

		added, err := m.Add(storage.Entry{X: 7, Y: 8, Label: "a"})
		require.NoError(t, err)
		assert.True(t, added)

		added, err = m.Add(storage.Entry{X: 7, Y: 8, Label: "b"})
		require.NoError(t, err)
		assert.False(t, added)

		e, err := m.Get(7, 8)
		require.NoError(t, err)
		assert.Equal(t, "b", e.Label)

		ok, err := m.Contains(7, 8)
		require.NoError(t, err)
		assert.True(t, ok)

		removed, err := m.Remove(7, 8)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, 0, m.Count())
	})

	t.Run("KeyFormat", func(t *testing.T) {
		// "12,3" and "1,23" must not collide.
		m := NewStringMap()
		_, _ = m.Add(storage.Entry{X: 12, Y: 3, Label: "a"})
		_, _ = m.Add(storage.Entry{X: 1, Y: 23, Label: "b"})
		assert.Equal(t, 2, m.Count())

		e, err := m.Get(12, 3)
		require.NoError(t, err)
		assert.Equal(t, "a", e.Label)
	})
}
