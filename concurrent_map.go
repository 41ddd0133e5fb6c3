package autocleaner

import (
	"iter"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// ConcurrentMap is a sharded map that is safe to read from other goroutines
// while the cleaner owns it. Clean builds a new map, the receiver is left as is.
// The zero value is an empty map that can be read but not written,
// Store panics on it, use NewConcurrentMap.
type ConcurrentMap[K comparable, V any] struct {
	data *csmap.CsMap[K, V]
}

// NewConcurrentMap - creates an empty concurrent map
func NewConcurrentMap[K comparable, V any]() ConcurrentMap[K, V] {
	return ConcurrentMap[K, V]{data: csmap.Create[K, V]()}
}

func (m ConcurrentMap[K, V]) Store(key K, value V) {
	m.data.Store(key, value)
}

func (m ConcurrentMap[K, V]) Load(key K) (V, bool) {
	if m.data == nil {
		var zero V
		return zero, false
	}
	return m.data.Load(key)
}

func (m ConcurrentMap[K, V]) Delete(key K) bool {
	if m.data == nil {
		return false
	}
	return m.data.Delete(key)
}

func (m ConcurrentMap[K, V]) Len() int {
	if m.data == nil {
		return 0
	}
	return m.data.Count()
}

func (m ConcurrentMap[K, V]) All() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		if m.data == nil {
			return
		}
		m.data.Range(func(key K, value V) (stop bool) {
			return !yield(Entry[K, V]{Key: key, Value: value})
		})
	}
}

func (m ConcurrentMap[K, V]) Clean(condition func(Entry[K, V]) bool) ConcurrentMap[K, V] {
	out := NewConcurrentMap[K, V]()
	for e := range m.All() {
		if !condition(e) {
			out.data.Store(e.Key, e.Value)
		}
	}
	return out
}
