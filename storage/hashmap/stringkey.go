package hashmap

import (
	"strconv"

	"github.com/vmikhailov/spatialstore/storage"
)

var _ storage.Storage = (*StringMap)(nil)

func init() {
	storage.Register(storage.KindStringHashMap, func(opts ...storage.Option) storage.Storage {
		return NewStringMap(opts...)
	})
}

// StringMap is algorithmically identical to Map but keys its hash map by the
// string "x,y" instead of a coordinate struct. It exists only to quantify
// string-key overhead (formatting, hashing, retained key bytes) against the
// struct-key baseline.
type StringMap struct {
	opts    storage.Options
	entries map[string]storage.Entry
}

// NewStringMap creates an empty StringMap.
func NewStringMap(opts ...storage.Option) *StringMap {
	return &StringMap{
		opts:    storage.ApplyOptions(opts...),
		entries: make(map[string]storage.Entry),
	}
}

func stringKey(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

// Kind identifies the engine.
func (m *StringMap) Kind() storage.Kind { return storage.KindStringHashMap }

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new.
func (m *StringMap) Add(e storage.Entry) (bool, error) {
	if err := m.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}
	k := stringKey(e.X, e.Y)
	_, exists := m.entries[k]
	m.entries[k] = e
	return !exists, nil
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (m *StringMap) Get(x, y int) (storage.Entry, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	e, ok := m.entries[stringKey(x, y)]
	if !ok {
		return storage.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

// TryGet is the non-erroring form of Get.
func (m *StringMap) TryGet(x, y int) (storage.Entry, bool) {
	e, ok := m.entries[stringKey(x, y)]
	return e, ok
}

// Remove deletes the entry at (x, y), reporting whether one existed.
func (m *StringMap) Remove(x, y int) (bool, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	k := stringKey(x, y)
	if _, ok := m.entries[k]; !ok {
		return false, nil
	}
	delete(m.entries, k)
	return true, nil
}

// Contains reports whether an entry is stored at (x, y).
func (m *StringMap) Contains(x, y int) (bool, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	_, ok := m.entries[stringKey(x, y)]
	return ok, nil
}

// ListAll returns every entry in unspecified order.
func (m *StringMap) ListAll() []storage.Entry {
	out := make([]storage.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out
}

// InRegion scans all entries against the inclusive rectangle.
func (m *StringMap) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
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
func (m *StringMap) WithinRadius(radius int) ([]storage.Entry, error) {
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
func (m *StringMap) WithinRadiusOf(centerX, centerY, radius int) ([]storage.Entry, error) {
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
func (m *StringMap) Clear() {
	m.entries = make(map[string]storage.Entry)
}

// Count returns the number of stored entries.
func (m *StringMap) Count() int { return len(m.entries) }
