// Package spatialstore maps sparse 2D integer coordinates to string labels
// and answers point, rectangular-region and circular-radius queries over
// them.
//
// Seven interchangeable engines implement one contract and differ only in
// cost profile; see the storage subpackages. This package wires every
// engine into the registry and re-exports the contract types, so most
// callers need only:
//
//	st, err := spatialstore.New(spatialstore.KindGrid)
//	st.Add(spatialstore.Entry{X: 1, Y: 1, Label: "label1"})
//	entries, err := st.InRegion(0, 0, 1000, 5000)
package spatialstore

import (
	"github.com/vmikhailov/spatialstore/storage"

	// Register every engine kind.
	_ "github.com/vmikhailov/spatialstore/storage/adaptive"
	_ "github.com/vmikhailov/spatialstore/storage/bst"
	_ "github.com/vmikhailov/spatialstore/storage/grid"
	_ "github.com/vmikhailov/spatialstore/storage/hashmap"
	_ "github.com/vmikhailov/spatialstore/storage/orderedmap"
	_ "github.com/vmikhailov/spatialstore/storage/sortedarray"
)

// Contract types, re-exported for convenience.
type (
	Entry   = storage.Entry
	Storage = storage.Storage
	Kind    = storage.Kind
	Option  = storage.Option
)

// Engine kinds.
const (
	KindHashMap       = storage.KindHashMap
	KindStringHashMap = storage.KindStringHashMap
	KindBST           = storage.KindBST
	KindSortedArray   = storage.KindSortedArray
	KindOrderedMap    = storage.KindOrderedMap
	KindGrid          = storage.KindGrid
	KindAdaptive      = storage.KindAdaptive
)

// Sentinel errors, re-exported for errors.Is checks.
var (
	ErrNotFound        = storage.ErrNotFound
	ErrOutOfRange      = storage.ErrOutOfRange
	ErrInvalidArgument = storage.ErrInvalidArgument
)

// Construction options, re-exported.
var (
	WithMaxCoordinate = storage.WithMaxCoordinate
	WithTileShift     = storage.WithTileShift
	WithTileCapacity  = storage.WithTileCapacity
)

// New constructs a storage engine of the given kind.
func New(kind Kind, opts ...Option) (Storage, error) {
	return storage.New(kind, opts...)
}

// Kinds returns every registered engine kind in lexical order.
func Kinds() []Kind {
	return storage.Kinds()
}
