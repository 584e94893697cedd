// Package storage defines the common contract shared by all spatial
// label-storage engines, plus the options and registry used to construct them.
package storage

// DefaultMaxCoordinate bounds both axes of the coordinate space.
// Valid coordinates are in [0, DefaultMaxCoordinate).
const DefaultMaxCoordinate = 1_000_000

// Entry is a stored (x, y, label) record. Entries returned from a Storage
// are value copies; mutating the store never alters previously returned
// entries.
type Entry struct {
	X     int
	Y     int
	Label string
}

// Key returns the derived spatial key x² + y², computed in 64-bit arithmetic
// so coordinates up to 10⁶ cannot overflow.
//
// The key is not injective: distinct coordinates can share a key
// ((3,4), (4,3) and (5,0) all map to 25). Engines that sort or hash by this
// key keep a collision bucket per key value and disambiguate by exact (x, y)
// match.
func Key(x, y int) int64 {
	return int64(x)*int64(x) + int64(y)*int64(y)
}

// Key returns the derived spatial key of the entry's coordinates.
func (e Entry) Key() int64 {
	return Key(e.X, e.Y)
}

// Storage is the contract every engine implements. A caller picks one engine
// at construction time; all engines return the same logical results for the
// same operation sequence and differ only in cost profile.
//
// Implementations are single-threaded and synchronous: no operation blocks,
// and callers needing concurrent access must synchronize externally.
type Storage interface {
	// Add inserts e, or updates the label when (e.X, e.Y) is already present.
	// It reports true when the coordinate pair was not previously stored.
	Add(e Entry) (bool, error)

	// Get returns the entry stored at (x, y), or ErrNotFound.
	Get(x, y int) (Entry, error)

	// TryGet is the non-erroring form of Get. It reports false for absent
	// coordinates and for coordinates outside the valid range.
	TryGet(x, y int) (Entry, bool)

	// Remove deletes the entry at (x, y), reporting whether one existed.
	Remove(x, y int) (bool, error)

	// Contains reports whether an entry is stored at (x, y).
	Contains(x, y int) (bool, error)

	// ListAll returns every stored entry. Order is unspecified unless the
	// engine documents otherwise.
	ListAll() []Entry

	// InRegion returns all entries with minX ≤ x ≤ maxX and minY ≤ y ≤ maxY.
	// Both bounds are inclusive.
	InRegion(minX, minY, maxX, maxY int) ([]Entry, error)

	// WithinRadius returns all entries strictly inside the origin-centered
	// circle: x² + y² < radius². The boundary is exclusive.
	WithinRadius(radius int) ([]Entry, error)

	// WithinRadiusOf returns all entries inside or on the circle centered at
	// (centerX, centerY): (x-cx)² + (y-cy)² ≤ radius². Unlike WithinRadius,
	// the boundary is inclusive.
	WithinRadiusOf(centerX, centerY, radius int) ([]Entry, error)

	// Clear removes every entry, returning the engine to its initial state.
	Clear()

	// Count returns the number of distinct coordinate pairs stored.
	Count() int

	// Kind identifies the engine.
	Kind() Kind
}

// Options carries construction parameters shared across engines. Engines read
// only the fields they understand.
type Options struct {
	// MaxCoordinate bounds valid coordinates to [0, MaxCoordinate).
	MaxCoordinate int

	// TileShift sets the fixed-grid tile edge to 2^TileShift coordinate
	// units. Only the grid engine reads it.
	TileShift int

	// TileCapacity is the entry count above which an adaptive tile splits.
	// Only the adaptive engine reads it.
	TileCapacity int
}

// DefaultOptions are the construction parameters used when no Option
// overrides them. The default tile shift of 15 yields 32768-unit tiles,
// roughly 32K units square over the million-unit space.
var DefaultOptions = Options{
	MaxCoordinate: DefaultMaxCoordinate,
	TileShift:     15,
	TileCapacity:  64,
}

// Option configures engine construction.
type Option func(*Options)

// WithMaxCoordinate overrides the coordinate bound. Values below 1 are
// ignored.
func WithMaxCoordinate(max int) Option {
	return func(o *Options) {
		if max > 0 {
			o.MaxCoordinate = max
		}
	}
}

// WithTileShift overrides the fixed-grid tile size exponent. Values outside
// [0, 20] are ignored.
func WithTileShift(shift int) Option {
	return func(o *Options) {
		if shift >= 0 && shift <= 20 {
			o.TileShift = shift
		}
	}
}

// WithTileCapacity overrides the adaptive split threshold. Values below 1 are
// ignored.
func WithTileCapacity(capacity int) Option {
	return func(o *Options) {
		if capacity > 0 {
			o.TileCapacity = capacity
		}
	}
}

// ApplyOptions resolves opts on top of DefaultOptions. Engine constructors
// call this so every engine resolves parameters identically.
func ApplyOptions(opts ...Option) Options {
	o := DefaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// CheckCoordinate validates a single coordinate argument against
// [0, max). The arg name is carried into the error.
func (o Options) CheckCoordinate(arg string, v int) error {
	if v < 0 || v >= o.MaxCoordinate {
		return &CoordinateError{Arg: arg, Value: v, Max: o.MaxCoordinate}
	}
	return nil
}

// CheckPoint validates an (x, y) pair.
func (o Options) CheckPoint(x, y int) error {
	if err := o.CheckCoordinate("x", x); err != nil {
		return err
	}
	return o.CheckCoordinate("y", y)
}

// CheckRegion validates region bounds: each bound must be a valid coordinate
// and the minima must not exceed the maxima.
func (o Options) CheckRegion(minX, minY, maxX, maxY int) error {
	for _, c := range [...]struct {
		arg string
		v   int
	}{{"minX", minX}, {"minY", minY}, {"maxX", maxX}, {"maxY", maxY}} {
		if err := o.CheckCoordinate(c.arg, c.v); err != nil {
			return err
		}
	}
	if minX > maxX || minY > maxY {
		return &RegionError{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	}
	return nil
}

// CheckRadius validates a radius argument.
func (o Options) CheckRadius(radius int) error {
	if radius < 0 {
		return &RadiusError{Radius: radius}
	}
	return nil
}

// InRegion reports whether (x, y) lies inside the inclusive rectangle.
func InRegion(x, y, minX, minY, maxX, maxY int) bool {
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

// WithinOrigin reports whether (x, y) lies strictly inside the
// origin-centered circle of the given radius.
func WithinOrigin(x, y, radius int) bool {
	return Key(x, y) < int64(radius)*int64(radius)
}

// WithinCenter reports whether (x, y) lies inside or on the circle centered
// at (cx, cy). The boundary is inclusive, unlike the origin form.
func WithinCenter(x, y, cx, cy, radius int) bool {
	dx := int64(x - cx)
	dy := int64(y - cy)
	return dx*dx+dy*dy <= int64(radius)*int64(radius)
}
