package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		assert.Equal(t, int64(0), Key(0, 0))
		assert.Equal(t, int64(25), Key(3, 4))
		assert.Equal(t, int64(25), Key(4, 3))
		assert.Equal(t, int64(25), Key(5, 0))
	})

	t.Run("NoOverflowAtMaxCoordinate", func(t *testing.T) {
		// 2 * (10^6 - 1)^2 ≈ 2e12 needs 64-bit arithmetic.
		max := DefaultMaxCoordinate - 1
		assert.Equal(t, int64(1999996000002), Key(max, max))
	})
}

func TestOptions(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		o := ApplyOptions()
		assert.Equal(t, DefaultMaxCoordinate, o.MaxCoordinate)
		assert.Equal(t, 15, o.TileShift)
		assert.Equal(t, 64, o.TileCapacity)
	})

	t.Run("Overrides", func(t *testing.T) {
		o := ApplyOptions(WithMaxCoordinate(1000), WithTileShift(4), WithTileCapacity(8))
		assert.Equal(t, 1000, o.MaxCoordinate)
		assert.Equal(t, 4, o.TileShift)
		assert.Equal(t, 8, o.TileCapacity)
	})

	t.Run("InvalidValuesIgnored", func(t *testing.T) {
		o := ApplyOptions(WithMaxCoordinate(0), WithTileShift(-1), WithTileCapacity(0))
		assert.Equal(t, DefaultOptions, o)
	})
}

func TestCheckCoordinate(t *testing.T) {
	o := ApplyOptions(WithMaxCoordinate(100))

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, o.CheckCoordinate("x", 0))
		require.NoError(t, o.CheckCoordinate("x", 99))
	})

	t.Run("Negative", func(t *testing.T) {
		err := o.CheckCoordinate("x", -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)

		var ce *CoordinateError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "x", ce.Arg)
		assert.Equal(t, -1, ce.Value)
	})

	t.Run("AtBound", func(t *testing.T) {
		// The bound itself is exclusive.
		err := o.CheckCoordinate("y", 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestCheckRegion(t *testing.T) {
	o := ApplyOptions(WithMaxCoordinate(100))

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, o.CheckRegion(0, 0, 99, 99))
		require.NoError(t, o.CheckRegion(5, 5, 5, 5))
	})

	t.Run("Inverted", func(t *testing.T) {
		err := o.CheckRegion(10, 0, 5, 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		err = o.CheckRegion(0, 10, 99, 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("BoundOutOfRange", func(t *testing.T) {
		err := o.CheckRegion(0, 0, 100, 50)
		require.Error(t, err)
		// Range violations win over shape violations: bounds are checked
		// first.
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestCheckRadius(t *testing.T) {
	o := ApplyOptions()
	require.NoError(t, o.CheckRadius(0))
	require.NoError(t, o.CheckRadius(1_000_000))

	err := o.CheckRadius(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	var re *RadiusError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, -1, re.Radius)
}

func TestPredicates(t *testing.T) {
	t.Run("RegionInclusive", func(t *testing.T) {
		assert.True(t, InRegion(1, 1, 1, 1, 5, 5))
		assert.True(t, InRegion(5, 5, 1, 1, 5, 5))
		assert.False(t, InRegion(0, 1, 1, 1, 5, 5))
		assert.False(t, InRegion(6, 5, 1, 1, 5, 5))
	})

	t.Run("OriginStrict", func(t *testing.T) {
		// (3,4) sits exactly on the radius-5 circle and is excluded.
		assert.False(t, WithinOrigin(3, 4, 5))
		assert.True(t, WithinOrigin(3, 4, 6))
	})

	t.Run("CenterInclusive", func(t *testing.T) {
		// The same boundary point is included by the centered form.
		assert.True(t, WithinCenter(3, 4, 0, 0, 5))
		assert.False(t, WithinCenter(3, 4, 0, 0, 4))
	})
}
