// Package grid provides a storage engine that partitions the coordinate
// space into fixed power-of-two tiles, each a small hash map of its entries.
//
// Tile coordinates come from shifting raw coordinates right by the
// configured tile shift, so routing a point to its tile is O(1) and point
// operations match the flat hash map up to a small constant. Tiles are
// created lazily and dropped when emptied, keeping the outer map sparse.
//
// Spatial queries clip to the tiles overlapping the query's bounding box.
// A tile whose four corners all satisfy the predicate contributes its whole
// contents without per-entry tests; a tile on the query boundary is scanned
// entry by entry. Candidate tiles are found by filtering the tiles that
// exist, never by enumerating every tile coordinate in the bounding box:
// over a sparse million-unit space the box can cover vastly more empty tile
// slots than populated ones.
package grid

import (
	"github.com/vmikhailov/spatialstore/storage"
)

var _ storage.Storage = (*Grid)(nil)

func init() {
	storage.Register(storage.KindGrid, func(opts ...storage.Option) storage.Storage {
		return New(opts...)
	})
}

type coord struct {
	x, y int
}

// Grid is the fixed-grid tiled engine.
type Grid struct {
	opts  storage.Options
	shift uint
	tiles map[coord]map[coord]storage.Entry
	size  int
}

// New creates an empty Grid. The tile edge is 2^TileShift coordinate units.
func New(opts ...storage.Option) *Grid {
	o := storage.ApplyOptions(opts...)
	return &Grid{
		opts:  o,
		shift: uint(o.TileShift),
		tiles: make(map[coord]map[coord]storage.Entry),
	}
}

// Kind identifies the engine.
func (g *Grid) Kind() storage.Kind { return storage.KindGrid }

// TileCount returns the number of populated tiles. Diagnostic only.
func (g *Grid) TileCount() int { return len(g.tiles) }

func (g *Grid) tileCoord(x, y int) coord {
	return coord{x >> g.shift, y >> g.shift}
}

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new. The owning tile is created on demand.
func (g *Grid) Add(e storage.Entry) (bool, error) {
	if err := g.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}

	tc := g.tileCoord(e.X, e.Y)
	tile, ok := g.tiles[tc]
	if !ok {
		tile = make(map[coord]storage.Entry)
		g.tiles[tc] = tile
	}

	c := coord{e.X, e.Y}
	_, exists := tile[c]
	tile[c] = e
	if !exists {
		g.size++
	}
	return !exists, nil
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (g *Grid) Get(x, y int) (storage.Entry, error) {
	if err := g.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	if e, ok := g.lookup(x, y); ok {
		return e, nil
	}
	return storage.Entry{}, storage.ErrNotFound
}

// TryGet is the non-erroring form of Get.
func (g *Grid) TryGet(x, y int) (storage.Entry, bool) {
	return g.lookup(x, y)
}

func (g *Grid) lookup(x, y int) (storage.Entry, bool) {
	tile, ok := g.tiles[g.tileCoord(x, y)]
	if !ok {
		return storage.Entry{}, false
	}
	e, ok := tile[coord{x, y}]
	return e, ok
}

// Remove deletes the entry at (x, y), reporting whether one existed. A tile
// emptied by the removal is dropped from the outer map.
func (g *Grid) Remove(x, y int) (bool, error) {
	if err := g.opts.CheckPoint(x, y); err != nil {
		return false, err
	}

	tc := g.tileCoord(x, y)
	tile, ok := g.tiles[tc]
	if !ok {
		return false, nil
	}
	c := coord{x, y}
	if _, ok := tile[c]; !ok {
		return false, nil
	}
	delete(tile, c)
	g.size--
	if len(tile) == 0 {
		delete(g.tiles, tc)
	}
	return true, nil
}

// Contains reports whether an entry is stored at (x, y).
func (g *Grid) Contains(x, y int) (bool, error) {
	if err := g.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	_, ok := g.lookup(x, y)
	return ok, nil
}

// ListAll returns every entry in unspecified order.
func (g *Grid) ListAll() []storage.Entry {
	out := make([]storage.Entry, 0, g.size)
	for _, tile := range g.tiles {
		for _, e := range tile {
			out = append(out, e)
		}
	}
	return out
}

// collect gathers entries from every populated tile overlapping the
// bounding tile range. A tile whose four corners all satisfy pred is
// appended wholesale; otherwise its entries are filtered individually.
func (g *Grid) collect(minTX, minTY, maxTX, maxTY int, pred func(x, y int) bool) []storage.Entry {
	var out []storage.Entry
	edge := 1 << g.shift
	for tc, tile := range g.tiles {
		if tc.x < minTX || tc.x > maxTX || tc.y < minTY || tc.y > maxTY {
			continue
		}
		x0 := tc.x << g.shift
		y0 := tc.y << g.shift
		x1 := x0 + edge - 1
		y1 := y0 + edge - 1
		if pred(x0, y0) && pred(x1, y0) && pred(x0, y1) && pred(x1, y1) {
			for _, e := range tile {
				out = append(out, e)
			}
			continue
		}
		for _, e := range tile {
			if pred(e.X, e.Y) {
				out = append(out, e)
			}
		}
	}
	return out
}

// InRegion answers the rectangle query via tile culling. The corner fast
// path accepts tiles fully inside the rectangle.
func (g *Grid) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
	if err := g.opts.CheckRegion(minX, minY, maxX, maxY); err != nil {
		return nil, err
	}
	out := g.collect(
		minX>>g.shift, minY>>g.shift, maxX>>g.shift, maxY>>g.shift,
		func(x, y int) bool { return storage.InRegion(x, y, minX, minY, maxX, maxY) },
	)
	return out, nil
}

// WithinRadius answers the origin radius query via tile culling. Only tiles
// touching the [0, radius)² bounding box can qualify; the corner fast path
// accepts tiles whose far corner is still strictly inside the circle.
func (g *Grid) WithinRadius(radius int) ([]storage.Entry, error) {
	if err := g.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	if radius == 0 {
		return nil, nil
	}
	maxT := (radius - 1) >> g.shift
	out := g.collect(0, 0, maxT, maxT,
		func(x, y int) bool { return storage.WithinOrigin(x, y, radius) },
	)
	return out, nil
}

// WithinRadiusOf answers the centered radius query via tile culling over the
// circle's bounding box. The inclusive predicate carries through both the
// corner fast path and the boundary filter.
func (g *Grid) WithinRadiusOf(centerX, centerY, radius int) ([]storage.Entry, error) {
	if err := g.opts.CheckCoordinate("centerX", centerX); err != nil {
		return nil, err
	}
	if err := g.opts.CheckCoordinate("centerY", centerY); err != nil {
		return nil, err
	}
	if err := g.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	out := g.collect(
		max(centerX-radius, 0)>>g.shift, max(centerY-radius, 0)>>g.shift,
		(centerX+radius)>>g.shift, (centerY+radius)>>g.shift,
		func(x, y int) bool { return storage.WithinCenter(x, y, centerX, centerY, radius) },
	)
	return out, nil
}

// Clear removes every entry.
func (g *Grid) Clear() {
	g.tiles = make(map[coord]map[coord]storage.Entry)
	g.size = 0
}

// Count returns the number of stored entries.
func (g *Grid) Count() int { return g.size }
