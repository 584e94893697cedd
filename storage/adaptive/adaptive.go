// Package adaptive provides a storage engine whose tiling adapts to the
// data: it starts as a single tile covering the whole coordinate space and
// recursively splits any tile whose entry count exceeds a capacity
// threshold.
//
// A split halves the tile along its longer axis and hands each entry to the
// child containing it, so dense areas end up covered by many small tiles
// while sparse areas keep a few large ones. Tiles never merge back after
// removals; the tile set only grows. Point operations find the owning tile
// by linear search over all tiles, which stays cheap because tile counts
// remain small under realistic loads.
//
// Spatial queries use the same corner-containment fast path and boundary
// filter as the fixed grid, iterating the explicit tile list with a
// bounding-box pre-filter instead of a sparse coordinate map.
package adaptive

import (
	"github.com/vmikhailov/spatialstore/storage"
)

var _ storage.Storage = (*Store)(nil)

func init() {
	storage.Register(storage.KindAdaptive, func(opts ...storage.Option) storage.Storage {
		return New(opts...)
	})
}

type coord struct {
	x, y int
}

// tile is an axis-aligned rectangle with inclusive bounds owning the
// entries inside it.
type tile struct {
	minX, minY, maxX, maxY int
	entries                map[coord]storage.Entry
}

func (t *tile) contains(x, y int) bool {
	return x >= t.minX && x <= t.maxX && y >= t.minY && y <= t.maxY
}

// Store is the adaptive tiled engine.
type Store struct {
	opts  storage.Options
	tiles []*tile
	size  int
}

// New creates a Store with a single root tile covering the full coordinate
// space.
func New(opts ...storage.Option) *Store {
	s := &Store{opts: storage.ApplyOptions(opts...)}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.tiles = []*tile{{
		minX:    0,
		minY:    0,
		maxX:    s.opts.MaxCoordinate - 1,
		maxY:    s.opts.MaxCoordinate - 1,
		entries: make(map[coord]storage.Entry),
	}}
	s.size = 0
}

// Kind identifies the engine.
func (s *Store) Kind() storage.Kind { return storage.KindAdaptive }

// TileCount returns the current number of tiles. Diagnostic only; tests use
// it to observe splitting.
func (s *Store) TileCount() int { return len(s.tiles) }

// tileFor returns the tile containing (x, y). The tiles exactly partition
// the coordinate space, so for valid coordinates one always matches.
func (s *Store) tileFor(x, y int) *tile {
	for _, t := range s.tiles {
		if t.contains(x, y) {
			return t
		}
	}
	return nil
}

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new. A tile pushed past capacity by the insert is split.
func (s *Store) Add(e storage.Entry) (bool, error) {
	if err := s.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}

	t := s.tileFor(e.X, e.Y)
	c := coord{e.X, e.Y}
	_, exists := t.entries[c]
	t.entries[c] = e
	if exists {
		return false, nil
	}
	s.size++
	if len(t.entries) > s.opts.TileCapacity {
		s.split(t)
	}
	return true, nil
}

// split replaces t with two children partitioning it along its longer axis
// at the midpoint, redistributing t's entries, and recurses into any child
// still over capacity. A 1×1 tile cannot split; capacity overflow is
// tolerated there.
func (s *Store) split(t *tile) {
	width := t.maxX - t.minX + 1
	height := t.maxY - t.minY + 1
	if width == 1 && height == 1 {
		return
	}

	var a, b *tile
	if width >= height {
		midX := t.minX + width/2
		a = &tile{minX: t.minX, minY: t.minY, maxX: midX - 1, maxY: t.maxY}
		b = &tile{minX: midX, minY: t.minY, maxX: t.maxX, maxY: t.maxY}
	} else {
		midY := t.minY + height/2
		a = &tile{minX: t.minX, minY: t.minY, maxX: t.maxX, maxY: midY - 1}
		b = &tile{minX: t.minX, minY: midY, maxX: t.maxX, maxY: t.maxY}
	}
	a.entries = make(map[coord]storage.Entry)
	b.entries = make(map[coord]storage.Entry)

	for c, e := range t.entries {
		if a.contains(c.x, c.y) {
			a.entries[c] = e
		} else {
			b.entries[c] = e
		}
	}

	for i, cur := range s.tiles {
		if cur == t {
			s.tiles[i] = a
			break
		}
	}
	s.tiles = append(s.tiles, b)

	if len(a.entries) > s.opts.TileCapacity {
		s.split(a)
	}
	if len(b.entries) > s.opts.TileCapacity {
		s.split(b)
	}
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (s *Store) Get(x, y int) (storage.Entry, error) {
	if err := s.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	if e, ok := s.lookup(x, y); ok {
		return e, nil
	}
	return storage.Entry{}, storage.ErrNotFound
}

// TryGet is the non-erroring form of Get.
func (s *Store) TryGet(x, y int) (storage.Entry, bool) {
	return s.lookup(x, y)
}

func (s *Store) lookup(x, y int) (storage.Entry, bool) {
	t := s.tileFor(x, y)
	if t == nil {
		return storage.Entry{}, false
	}
	e, ok := t.entries[coord{x, y}]
	return e, ok
}

// Remove deletes the entry at (x, y), reporting whether one existed. Tiles
// are never merged back after removals.
func (s *Store) Remove(x, y int) (bool, error) {
	if err := s.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	t := s.tileFor(x, y)
	c := coord{x, y}
	if _, ok := t.entries[c]; !ok {
		return false, nil
	}
	delete(t.entries, c)
	s.size--
	return true, nil
}

// Contains reports whether an entry is stored at (x, y).
func (s *Store) Contains(x, y int) (bool, error) {
	if err := s.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	_, ok := s.lookup(x, y)
	return ok, nil
}

// ListAll returns every entry in unspecified order.
func (s *Store) ListAll() []storage.Entry {
	out := make([]storage.Entry, 0, s.size)
	for _, t := range s.tiles {
		for _, e := range t.entries {
			out = append(out, e)
		}
	}
	return out
}

// collect gathers entries from every tile overlapping the query's bounding
// box. A tile whose four corners all satisfy pred contributes wholesale;
// boundary tiles are filtered entry by entry.
func (s *Store) collect(minX, minY, maxX, maxY int, pred func(x, y int) bool) []storage.Entry {
	var out []storage.Entry
	for _, t := range s.tiles {
		if t.maxX < minX || t.minX > maxX || t.maxY < minY || t.minY > maxY {
			continue
		}
		if pred(t.minX, t.minY) && pred(t.maxX, t.minY) && pred(t.minX, t.maxY) && pred(t.maxX, t.maxY) {
			for _, e := range t.entries {
				out = append(out, e)
			}
			continue
		}
		for _, e := range t.entries {
			if pred(e.X, e.Y) {
				out = append(out, e)
			}
		}
	}
	return out
}

// InRegion answers the rectangle query via tile culling.
func (s *Store) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
	if err := s.opts.CheckRegion(minX, minY, maxX, maxY); err != nil {
		return nil, err
	}
	out := s.collect(minX, minY, maxX, maxY,
		func(x, y int) bool { return storage.InRegion(x, y, minX, minY, maxX, maxY) },
	)
	return out, nil
}

// WithinRadius answers the origin radius query via tile culling over the
// [0, radius)² bounding box.
func (s *Store) WithinRadius(radius int) ([]storage.Entry, error) {
	if err := s.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	if radius == 0 {
		return nil, nil
	}
	out := s.collect(0, 0, radius-1, radius-1,
		func(x, y int) bool { return storage.WithinOrigin(x, y, radius) },
	)
	return out, nil
}

// WithinRadiusOf answers the centered radius query via tile culling over
// the circle's bounding box.
func (s *Store) WithinRadiusOf(centerX, centerY, radius int) ([]storage.Entry, error) {
	if err := s.opts.CheckCoordinate("centerX", centerX); err != nil {
		return nil, err
	}
	if err := s.opts.CheckCoordinate("centerY", centerY); err != nil {
		return nil, err
	}
	if err := s.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	out := s.collect(centerX-radius, centerY-radius, centerX+radius, centerY+radius,
		func(x, y int) bool { return storage.WithinCenter(x, y, centerX, centerY, radius) },
	)
	return out, nil
}

// Clear removes every entry and restores the single root tile.
func (s *Store) Clear() {
	s.reset()
}

// Count returns the number of stored entries.
func (s *Store) Count() int { return s.size }
