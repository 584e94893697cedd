// Package deepsize estimates the retained heap size of a value by walking
// it with reflection. The bench harness uses it to compare how much memory
// each storage engine keeps alive for the same dataset.
//
// Estimates are approximate: map bucket overhead is modeled with a flat
// per-pair constant, and shared backing arrays are counted once via pointer
// cycle detection.
package deepsize

import (
	"reflect"
)

// mapPairOverhead approximates the per-pair bookkeeping of a Go map
// (bucket slots, top-hash bytes, overflow pointers).
const mapPairOverhead = 16

// Of estimates the total bytes retained by v, including everything
// reachable through pointers, slices, maps, strings and interfaces.
func Of(v any) int64 {
	if v == nil {
		return 0
	}
	w := walker{visited: map[visit]struct{}{}}
	rv := reflect.ValueOf(v)
	return int64(rv.Type().Size()) + w.indirect(rv)
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

type walker struct {
	visited map[visit]struct{}
}

func (w *walker) seen(v reflect.Value) bool {
	k := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, ok := w.visited[k]; ok {
		return true
	}
	w.visited[k] = struct{}{}
	return false
}

// indirect returns the heap bytes reachable from v beyond its own inline
// representation (already counted by the caller).
func (w *walker) indirect(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || w.seen(v) {
			return 0
		}
		elem := v.Elem()
		return int64(elem.Type().Size()) + w.indirect(elem)

	case reflect.String:
		return int64(v.Len())

	case reflect.Slice:
		if v.IsNil() || w.seen(v) {
			return 0
		}
		elemType := v.Type().Elem()
		total := int64(v.Cap()) * int64(elemType.Size())
		if hasIndirection(elemType) {
			for i := 0; i < v.Len(); i++ {
				total += w.indirect(v.Index(i))
			}
		}
		return total

	case reflect.Array:
		var total int64
		if hasIndirection(v.Type().Elem()) {
			for i := 0; i < v.Len(); i++ {
				total += w.indirect(v.Index(i))
			}
		}
		return total

	case reflect.Struct:
		var total int64
		for i := 0; i < v.NumField(); i++ {
			total += w.indirect(v.Field(i))
		}
		return total

	case reflect.Map:
		if v.IsNil() || w.seen(v) {
			return 0
		}
		keySize := int64(v.Type().Key().Size())
		elemSize := int64(v.Type().Elem().Size())
		total := int64(v.Len()) * (keySize + elemSize + mapPairOverhead)
		if hasIndirection(v.Type().Key()) || hasIndirection(v.Type().Elem()) {
			iter := v.MapRange()
			for iter.Next() {
				total += w.indirect(iter.Key())
				total += w.indirect(iter.Value())
			}
		}
		return total

	case reflect.Interface:
		if v.IsNil() {
			return 0
		}
		elem := v.Elem()
		return int64(elem.Type().Size()) + w.indirect(elem)

	default:
		return 0
	}
}

// hasIndirection reports whether values of t can reference further heap
// memory, so flat element types skip the per-element walk.
func hasIndirection(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.String, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasIndirection(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Array:
		return hasIndirection(t.Elem())
	default:
		return false
	}
}
