package autocleaner

import (
	"time"

	"github.com/juju/clock"
)

const (
	NoExpiration time.Duration = -1
)

// Item wraps a value with an optional expiration time in unix nanoseconds,
// a non-positive exp never expires.
type Item[T any] struct {
	Value T
	exp   int64
}

// NewItem - creates an item expiring ttl after now,
// zero or NoExpiration ttl creates an item that never expires
func NewItem[T any](value T, ttl time.Duration, now time.Time) Item[T] {
	exp := int64(NoExpiration)
	if ttl > 0 {
		exp = now.UnixNano() + ttl.Nanoseconds()
	}

	return Item[T]{Value: value, exp: exp}
}

func (i Item[T]) ExpiresAt() (time.Time, bool) {
	if i.exp <= 0 {
		return time.Time{}, false
	}
	return time.Unix(0, i.exp), true
}

func (i Item[T]) Expired(now time.Time) bool {
	return i.exp > 0 && i.exp < now.UnixNano()
}

// Expired is a condition removing expired items, as seen by clk.
func Expired[T any](clk clock.Clock) func(Item[T]) bool {
	return func(i Item[T]) bool {
		return i.Expired(clk.Now())
	}
}

// ExpiredEntry is Expired for map collections holding items.
func ExpiredEntry[K comparable, T any](clk clock.Clock) func(Entry[K, Item[T]]) bool {
	return func(e Entry[K, Item[T]]) bool {
		return e.Value.Expired(clk.Now())
	}
}
