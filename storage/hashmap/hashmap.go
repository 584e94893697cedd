// Package hashmap provides the baseline storage engine: a flat hash map
// keyed by coordinate pair.
//
// Point operations are O(1) average; every spatial query is an unindexed
// O(n) scan. The engine is deliberately naive: it is the correctness oracle
// and the performance floor the indexed engines are measured against.
package hashmap

import (
	"github.com/vmikhailov/spatialstore/storage"
)

// Compile-time check that Map satisfies the storage contract.
var _ storage.Storage = (*Map)(nil)

func init() {
	storage.Register(storage.KindHashMap, func(opts ...storage.Option) storage.Storage {
		return New(opts...)
	})
}

type coord struct {
	x, y int
}

// Map stores entries in a single hash map keyed by (x, y).
type Map struct {
	opts    storage.Options
	entries map[coord]storage.Entry
}

// New creates an empty Map.
func New(opts ...storage.Option) *Map {
	return &Map{
		opts:    storage.ApplyOptions(opts...),
		entries: make(map[coord]storage.Entry),
	}
}

// Kind identifies the engine.
func (m *Map) Kind() storage.Kind { return storage.KindHashMap }

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new.
func (m *Map) Add(e storage.Entry) (bool, error) {
	if err := m.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}
	c := coord{e.X, e.Y}
	_, exists := m.entries[c]
	m.entries[c] = e
	return !exists, nil
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (m *Map) Get(x, y int) (storage.Entry, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	e, ok := m.entries[coord{x, y}]
	if !ok {
		return storage.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

// TryGet is the non-erroring form of Get.
func (m *Map) TryGet(x, y int) (storage.Entry, bool) {
	e, ok := m.entries[coord{x, y}]
	return e, ok
}

// Remove deletes the entry at (x, y), reporting whether one existed.
func (m *Map) Remove(x, y int) (bool, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	c := coord{x, y}
	if _, ok := m.entries[c]; !ok {
		return false, nil
	}
	delete(m.entries, c)
	return true, nil
}

// Contains reports whether an entry is stored at (x, y).
func (m *Map) Contains(x, y int) (bool, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	_, ok := m.entries[coord{x, y}]
	return ok, nil
}

// ListAll returns every entry in unspecified order.
func (m *Map) ListAll() []storage.Entry {
	out := make([]storage.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out
}

// InRegion scans all entries against the inclusive rectangle.
func (m *Map) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
	if err := m.opts.CheckRegion(minX, minY, maxX, maxY); err != nil {
		return nil, err
	}
	var out []storage.Entry
	for _, e := range m.entries {
		if storage.InRegion(e.X, e.Y, minX, minY, maxX, maxY) {
			out = append(out, e)
		}
	}
	return out, nil
}

// WithinRadius scans all entries against the origin circle (exclusive
// boundary).
func (m *Map) WithinRadius(radius int) ([]storage.Entry, error) {
	if err := m.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	var out []storage.Entry
	for _, e := range m.entries {
		if storage.WithinOrigin(e.X, e.Y, radius) {
			out = append(out, e)
		}
	}
	return out, nil
}

// WithinRadiusOf scans all entries against the centered circle (inclusive
// boundary).
func (m *Map) WithinRadiusOf(centerX, centerY, radius int) ([]storage.Entry, error) {
	if err := m.opts.CheckCoordinate("centerX", centerX); err != nil {
		return nil, err
	}
	if err := m.opts.CheckCoordinate("centerY", centerY); err != nil {
		return nil, err
	}
	if err := m.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	var out []storage.Entry
	for _, e := range m.entries {
		if storage.WithinCenter(e.X, e.Y, centerX, centerY, radius) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.entries = make(map[coord]storage.Entry)
}

// Count returns the number of stored entries.
func (m *Map) Count() int { return len(m.entries) }
