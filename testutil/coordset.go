package testutil

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/vmikhailov/spatialstore/storage"
)

// CoordSet is a set of coordinate pairs backed by a compressed bitmap.
// Each pair is packed into a single uint64 (x in the high half), so equality
// between two engines' result sets is one bitmap comparison regardless of
// result order.
type CoordSet struct {
	bm *roaring64.Bitmap
}

func packCoord(x, y int) uint64 {
	return uint64(uint32(x))<<32 | uint64(uint32(y))
}

// NewCoordSet builds a CoordSet from the coordinates of entries.
func NewCoordSet(entries []storage.Entry) *CoordSet {
	s := &CoordSet{bm: roaring64.New()}
	for _, e := range entries {
		s.bm.Add(packCoord(e.X, e.Y))
	}
	return s
}

// Add inserts a coordinate pair.
func (s *CoordSet) Add(x, y int) {
	s.bm.Add(packCoord(x, y))
}

// Contains reports whether the pair is in the set.
func (s *CoordSet) Contains(x, y int) bool {
	return s.bm.Contains(packCoord(x, y))
}

// Len returns the number of distinct pairs.
func (s *CoordSet) Len() int {
	return int(s.bm.GetCardinality())
}

// Equal reports whether both sets hold exactly the same pairs.
func (s *CoordSet) Equal(other *CoordSet) bool {
	return s.bm.Equals(other.bm)
}

// Diff returns the pairs present in s but not in other, as packed values.
// Handy for diagnosing which coordinates a failing engine dropped or
// invented.
func (s *CoordSet) Diff(other *CoordSet) []uint64 {
	d := roaring64.AndNot(s.bm, other.bm)
	return d.ToArray()
}

// Unpack splits a packed coordinate value back into (x, y).
func Unpack(packed uint64) (x, y int) {
	return int(uint32(packed >> 32)), int(uint32(packed))
}
