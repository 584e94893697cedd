// Package sortedarray provides a storage engine backed by a single slice of
// records kept sorted ascending by the derived key x² + y².
//
// Records with equal keys are grouped contiguously in insertion order.
// Point operations binary-search to the key's run and scan it; insertions
// and removals shift the tail, so mutation is O(n) worst case. The payoff is
// the origin radius query: one upper-bound search yields the qualifying
// prefix wholesale, with the cache locality a contiguous slice gives. It is
// the same pruning idea as the BST engine, without pointer chasing.
package sortedarray

import (
	"slices"

	"github.com/vmikhailov/spatialstore/storage"
)

var _ storage.Storage = (*Array)(nil)

func init() {
	storage.Register(storage.KindSortedArray, func(opts ...storage.Option) storage.Storage {
		return New(opts...)
	})
}

type record struct {
	key   int64
	entry storage.Entry
}

// Array is the sorted-slice engine.
type Array struct {
	opts storage.Options
	recs []record
}

// New creates an empty Array.
func New(opts ...storage.Option) *Array {
	return &Array{opts: storage.ApplyOptions(opts...)}
}

// Kind identifies the engine.
func (a *Array) Kind() storage.Kind { return storage.KindSortedArray }

// search returns the index of any record with the given key, or the bitwise
// complement of the insertion point when the key is absent (always
// negative). With duplicate keys the returned index may fall anywhere in
// the run.
func (a *Array) search(key int64) int {
	lo, hi := 0, len(a.recs)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case a.recs[mid].key < key:
			lo = mid + 1
		case a.recs[mid].key > key:
			hi = mid - 1
		default:
			return mid
		}
	}
	return ^lo
}

// searchFirst returns the leftmost index holding the key, or -1 when the key
// is absent.
func (a *Array) searchFirst(key int64) int {
	i := a.search(key)
	if i < 0 {
		return -1
	}
	for i > 0 && a.recs[i-1].key == key {
		i--
	}
	return i
}

// upperBound returns the first index whose key is >= key, which is len(recs)
// when every key is smaller.
func (a *Array) upperBound(key int64) int {
	lo, hi := 0, len(a.recs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if a.recs[mid].key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new. A new entry with an existing key is appended at the end of that
// key's run, preserving insertion order within the run.
func (a *Array) Add(e storage.Entry) (bool, error) {
	if err := a.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}

	key := e.Key()
	if i := a.searchFirst(key); i >= 0 {
		j := i
		for j < len(a.recs) && a.recs[j].key == key {
			if a.recs[j].entry.X == e.X && a.recs[j].entry.Y == e.Y {
				a.recs[j].entry = e
				return false, nil
			}
			j++
		}
		a.recs = slices.Insert(a.recs, j, record{key: key, entry: e})
		return true, nil
	}

	at := ^a.search(key)
	a.recs = slices.Insert(a.recs, at, record{key: key, entry: e})
	return true, nil
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (a *Array) Get(x, y int) (storage.Entry, error) {
	if err := a.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	if e, ok := a.lookup(x, y); ok {
		return e, nil
	}
	return storage.Entry{}, storage.ErrNotFound
}

// TryGet is the non-erroring form of Get.
func (a *Array) TryGet(x, y int) (storage.Entry, bool) {
	return a.lookup(x, y)
}

func (a *Array) lookup(x, y int) (storage.Entry, bool) {
	if i := a.indexOf(x, y); i >= 0 {
		return a.recs[i].entry, true
	}
	return storage.Entry{}, false
}

// indexOf returns the record index of the exact (x, y) entry, or -1.
func (a *Array) indexOf(x, y int) int {
	key := storage.Key(x, y)
	i := a.searchFirst(key)
	if i < 0 {
		return -1
	}
	for i < len(a.recs) && a.recs[i].key == key {
		if a.recs[i].entry.X == x && a.recs[i].entry.Y == y {
			return i
		}
		i++
	}
	return -1
}

// Remove deletes the entry at (x, y), reporting whether one existed.
func (a *Array) Remove(x, y int) (bool, error) {
	if err := a.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	i := a.indexOf(x, y)
	if i < 0 {
		return false, nil
	}
	a.recs = slices.Delete(a.recs, i, i+1)
	return true, nil
}

// Contains reports whether an entry is stored at (x, y).
func (a *Array) Contains(x, y int) (bool, error) {
	if err := a.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	return a.indexOf(x, y) >= 0, nil
}

// ListAll returns every entry in ascending key order, equal keys in
// insertion order.
func (a *Array) ListAll() []storage.Entry {
	out := make([]storage.Entry, len(a.recs))
	for i, r := range a.recs {
		out[i] = r.entry
	}
	return out
}

// InRegion scans all records against the inclusive rectangle; the key order
// offers no shortcut for a rectangle predicate.
func (a *Array) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
	if err := a.opts.CheckRegion(minX, minY, maxX, maxY); err != nil {
		return nil, err
	}
	var out []storage.Entry
	for _, r := range a.recs {
		if storage.InRegion(r.entry.X, r.entry.Y, minX, minY, maxX, maxY) {
			out = append(out, r.entry)
		}
	}
	return out, nil
}

// WithinRadius answers the origin radius query with a single upper-bound
// search: every record before the first key >= radius² qualifies, so the
// prefix is copied out in bulk. O(log n + k).
func (a *Array) WithinRadius(radius int) ([]storage.Entry, error) {
	if err := a.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	end := a.upperBound(int64(radius) * int64(radius))
	out := make([]storage.Entry, end)
	for i := range end {
		out[i] = a.recs[i].entry
	}
	return out, nil
}

// WithinRadiusOf scans all records against the inclusive centered circle;
// the centered distance is not monotonic in the key.
func (a *Array) WithinRadiusOf(centerX, centerY, radius int) ([]storage.Entry, error) {
	if err := a.opts.CheckCoordinate("centerX", centerX); err != nil {
		return nil, err
	}
	if err := a.opts.CheckCoordinate("centerY", centerY); err != nil {
		return nil, err
	}
	if err := a.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	var out []storage.Entry
	for _, r := range a.recs {
		if storage.WithinCenter(r.entry.X, r.entry.Y, centerX, centerY, radius) {
			out = append(out, r.entry)
		}
	}
	return out, nil
}

// Clear removes every entry.
func (a *Array) Clear() {
	a.recs = nil
}

// Count returns the number of stored entries.
func (a *Array) Count() int { return len(a.recs) }
