package storage

import (
	"fmt"
	"slices"
	"sync"
)

// Kind identifies a storage engine.
type Kind string

// Registered engine kinds.
const (
	KindHashMap       Kind = "hashmap"
	KindStringHashMap Kind = "string-hashmap"
	KindBST           Kind = "bst"
	KindSortedArray   Kind = "sorted-array"
	KindOrderedMap    Kind = "ordered-map"
	KindGrid          Kind = "grid"
	KindAdaptive      Kind = "adaptive"
)

// Factory constructs an engine instance.
type Factory func(opts ...Option) Storage

var (
	registryMu sync.RWMutex
	registry   = map[Kind]Factory{}
)

// Register makes a factory available under the given kind.
//
// Engine packages should typically call this from an init() function; callers
// then select engines by kind through New.
func Register(kind Kind, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

// New constructs an engine of the given kind. It fails when no factory is
// registered for the kind, which usually means the engine package was not
// imported.
func New(kind Kind, opts ...Option) (Storage, error) {
	registryMu.RLock()
	factory, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown storage kind: %q", kind)
	}
	return factory(opts...), nil
}

// Kinds returns all registered kinds in lexical order.
func Kinds() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
