// Package orderedmap provides a storage engine backed by a balanced ordered
// map from the derived key x² + y² to a collision bucket of entries.
//
// Balance is delegated to a B-tree (github.com/google/btree) rather than
// hand-rolled, so key operations stay O(log n) regardless of insertion
// order, the balanced counterpart to the bst engine. Buckets are doubly
// linked lists, so once an exact coordinate match is located the unlink
// is O(1).
//
// Ordered iteration buys two query shortcuts the hash engines lack: the
// origin radius query ascends from the smallest key and stops at the first
// key reaching radius², and the region query ascends only the key range
// achievable inside the rectangle. The centered radius query has no
// key-range bound and scans everything.
package orderedmap

import (
	"container/list"

	"github.com/google/btree"

	"github.com/vmikhailov/spatialstore/storage"
)

var _ storage.Storage = (*Map)(nil)

func init() {
	storage.Register(storage.KindOrderedMap, func(opts ...storage.Option) storage.Storage {
		return New(opts...)
	})
}

// btreeDegree is the branching factor of the backing B-tree. 32 keeps the
// tree shallow for the entry counts the engine is exercised at.
const btreeDegree = 32

// bucket holds all entries sharing one derived key, in insertion order.
type bucket struct {
	key     int64
	entries *list.List // of storage.Entry
}

func bucketLess(a, b *bucket) bool { return a.key < b.key }

// Map is the balanced ordered-map engine.
type Map struct {
	opts storage.Options
	tree *btree.BTreeG[*bucket]
	size int
}

// New creates an empty Map.
func New(opts ...storage.Option) *Map {
	return &Map{
		opts: storage.ApplyOptions(opts...),
		tree: btree.NewG(btreeDegree, bucketLess),
	}
}

// Kind identifies the engine.
func (m *Map) Kind() storage.Kind { return storage.KindOrderedMap }

func (m *Map) bucketFor(key int64) (*bucket, bool) {
	return m.tree.Get(&bucket{key: key})
}

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new.
func (m *Map) Add(e storage.Entry) (bool, error) {
	if err := m.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}

	key := e.Key()
	b, ok := m.bucketFor(key)
	if !ok {
		b = &bucket{key: key, entries: list.New()}
		b.entries.PushBack(e)
		m.tree.ReplaceOrInsert(b)
		m.size++
		return true, nil
	}

	for el := b.entries.Front(); el != nil; el = el.Next() {
		stored := el.Value.(storage.Entry)
		if stored.X == e.X && stored.Y == e.Y {
			el.Value = e
			return false, nil
		}
	}
	b.entries.PushBack(e)
	m.size++
	return true, nil
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (m *Map) Get(x, y int) (storage.Entry, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	if e, ok := m.lookup(x, y); ok {
		return e, nil
	}
	return storage.Entry{}, storage.ErrNotFound
}

// TryGet is the non-erroring form of Get.
func (m *Map) TryGet(x, y int) (storage.Entry, bool) {
	return m.lookup(x, y)
}

func (m *Map) lookup(x, y int) (storage.Entry, bool) {
	b, ok := m.bucketFor(storage.Key(x, y))
	if !ok {
		return storage.Entry{}, false
	}
	for el := b.entries.Front(); el != nil; el = el.Next() {
		stored := el.Value.(storage.Entry)
		if stored.X == x && stored.Y == y {
			return stored, true
		}
	}
	return storage.Entry{}, false
}

// Remove deletes the entry at (x, y), reporting whether one existed. An
// emptied bucket is deleted from the tree.
func (m *Map) Remove(x, y int) (bool, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return false, err
	}

	key := storage.Key(x, y)
	b, ok := m.bucketFor(key)
	if !ok {
		return false, nil
	}
	for el := b.entries.Front(); el != nil; el = el.Next() {
		stored := el.Value.(storage.Entry)
		if stored.X == x && stored.Y == y {
			b.entries.Remove(el)
			m.size--
			if b.entries.Len() == 0 {
				m.tree.Delete(b)
			}
			return true, nil
		}
	}
	return false, nil
}

// Contains reports whether an entry is stored at (x, y).
func (m *Map) Contains(x, y int) (bool, error) {
	if err := m.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	_, ok := m.lookup(x, y)
	return ok, nil
}

// ListAll returns every entry in ascending key order, buckets flattened in
// insertion order.
func (m *Map) ListAll() []storage.Entry {
	out := make([]storage.Entry, 0, m.size)
	m.tree.Ascend(func(b *bucket) bool {
		for el := b.entries.Front(); el != nil; el = el.Next() {
			out = append(out, el.Value.(storage.Entry))
		}
		return true
	})
	return out
}

// InRegion ascends only the key range the rectangle can produce: no point in
// it has a key below key(minX, minY) or above key(maxX, maxY), so the scan
// is bounded to that contiguous tree range and each candidate is checked
// against the exact bounds.
func (m *Map) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
	if err := m.opts.CheckRegion(minX, minY, maxX, maxY); err != nil {
		return nil, err
	}

	minKey := storage.Key(minX, minY)
	maxKey := storage.Key(maxX, maxY)

	var out []storage.Entry
	m.tree.AscendRange(&bucket{key: minKey}, &bucket{key: maxKey + 1}, func(b *bucket) bool {
		for el := b.entries.Front(); el != nil; el = el.Next() {
			e := el.Value.(storage.Entry)
			if storage.InRegion(e.X, e.Y, minX, minY, maxX, maxY) {
				out = append(out, e)
			}
		}
		return true
	})
	return out, nil
}

// WithinRadius ascends from the smallest key and stops at the first bucket
// whose key reaches radius²; everything before it qualifies wholesale.
func (m *Map) WithinRadius(radius int) ([]storage.Entry, error) {
	if err := m.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	limit := int64(radius) * int64(radius)

	var out []storage.Entry
	m.tree.Ascend(func(b *bucket) bool {
		if b.key >= limit {
			return false
		}
		for el := b.entries.Front(); el != nil; el = el.Next() {
			out = append(out, el.Value.(storage.Entry))
		}
		return true
	})
	return out, nil
}

// WithinRadiusOf scans every bucket against the inclusive centered circle;
// an arbitrary center admits no key-range bound.
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
	m.tree.Ascend(func(b *bucket) bool {
		for el := b.entries.Front(); el != nil; el = el.Next() {
			e := el.Value.(storage.Entry)
			if storage.WithinCenter(e.X, e.Y, centerX, centerY, radius) {
				out = append(out, e)
			}
		}
		return true
	})
	return out, nil
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.tree.Clear(false)
	m.size = 0
}

// Count returns the number of stored entries.
func (m *Map) Count() int { return m.size }
