package autocleaner

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Cleanable is a collection that can be cleaned by a condition.
// Clean must not modify the receiver, it returns a new collection
// holding every element for which condition is false.
type Cleanable[E any, C any] interface {
	Len() int
	All() iter.Seq[E]
	Clean(condition func(E) bool) C
}

// Entry is the element type of the map based collections.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Slice keeps elements in insertion order.
// Order of the surviving elements is preserved by Clean.
type Slice[E any] []E

func (s Slice[E]) Len() int {
	return len(s)
}

func (s Slice[E]) All() iter.Seq[E] {
	return slices.Values(s)
}

func (s Slice[E]) Clean(condition func(E) bool) Slice[E] {
	out := make(Slice[E], 0, len(s))
	for _, e := range s {
		if !condition(e) {
			out = append(out, e)
		}
	}
	return out
}

// Set is an unordered collection of unique elements.
type Set[E comparable] map[E]struct{}

// NewSet - creates a set holding the given elements
func NewSet[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

func (s Set[E]) Add(e E) {
	s[e] = struct{}{}
}

func (s Set[E]) Remove(e E) {
	delete(s, e)
}

func (s Set[E]) Has(e E) bool {
	_, ok := s[e]
	return ok
}

func (s Set[E]) Len() int {
	return len(s)
}

func (s Set[E]) All() iter.Seq[E] {
	return maps.Keys(s)
}

func (s Set[E]) Clean(condition func(E) bool) Set[E] {
	out := make(Set[E], len(s))
	for e := range s {
		if !condition(e) {
			out[e] = struct{}{}
		}
	}
	return out
}

// Map is an unordered key value collection, its elements are entries.
type Map[K comparable, V any] map[K]V

func (m Map[K, V]) Len() int {
	return len(m)
}

func (m Map[K, V]) All() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for k, v := range m {
			if !yield(Entry[K, V]{Key: k, Value: v}) {
				return
			}
		}
	}
}

func (m Map[K, V]) Clean(condition func(Entry[K, V]) bool) Map[K, V] {
	out := make(Map[K, V], len(m))
	for k, v := range m {
		if !condition(Entry[K, V]{Key: k, Value: v}) {
			out[k] = v
		}
	}
	return out
}

// SortedMap is a key value collection that yields its entries
// in ascending key order, both from All and to the condition in Clean.
type SortedMap[K cmp.Ordered, V any] map[K]V

func (m SortedMap[K, V]) Len() int {
	return len(m)
}

func (m SortedMap[K, V]) All() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(Entry[K, V]{Key: k, Value: m[k]}) {
				return
			}
		}
	}
}

func (m SortedMap[K, V]) Clean(condition func(Entry[K, V]) bool) SortedMap[K, V] {
	out := make(SortedMap[K, V], len(m))
	for e := range m.All() {
		if !condition(e) {
			out[e.Key] = e.Value
		}
	}
	return out
}
