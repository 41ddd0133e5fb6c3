package autocleaner

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
)

// AutoCleaner owns a collection and periodically removes the elements
// matching its condition. The interval between passes is derived from
// the collection size after every pass, and the timer stops by itself
// once a pass leaves the collection empty.
//
// Operations are serialized with the timer. The condition, frequency
// and Update mutator run with the internal lock held and must not call
// back into the cleaner. onCleaned runs without the lock.
type AutoCleaner[E any, C Cleanable[E, C]] struct {
	mu sync.Mutex

	collection C
	condition  func(E) bool
	frequency  Frequency
	onCleaned  func(removed int)

	clock           clock.Clock
	defaultInterval time.Duration
	minInterval     time.Duration

	timer      clock.Timer
	interval   time.Duration
	generation uint64
	closed     bool
	stopWatch  func() bool
}

// New - creates a cleaner owning a copy of collection, later writes to the
// caller's value are not seen by the cleaner. No timer is armed until Start is called.
// Cancelling ctx closes the cleaner.
func New[E any, C Cleanable[E, C]](
	ctx context.Context,
	collection C,
	condition func(E) bool,
	cfg Config,
) (*AutoCleaner[E, C], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if condition == nil {
		return nil, errors.Annotatef(ErrInvalidConfig, "condition is required")
	}

	c := &AutoCleaner[E, C]{
		collection:      collection.Clean(keepAll[E]),
		condition:       condition,
		onCleaned:       cfg.onCleaned,
		clock:           cfg.clock,
		defaultInterval: cfg.defaultInterval,
		minInterval:     cfg.minInterval,
	}

	// an already cancelled ctx runs Close right away, it waits for the lock
	c.mu.Lock()
	c.stopWatch = context.AfterFunc(ctx, func() {
		_ = c.Close()
	})
	c.mu.Unlock()

	return c, nil
}

// Collection returns a copy of the current collection.
func (c *AutoCleaner[E, C]) Collection() C {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collection.Clean(keepAll[E])
}

// Len returns the number of elements currently held.
func (c *AutoCleaner[E, C]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collection.Len()
}

// SetOnCleaned replaces the callback fired after every cleaning pass.
func (c *AutoCleaner[E, C]) SetOnCleaned(f func(removed int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCleaned = f
}

// Update applies mutator to the owned collection.
// It neither cleans nor touches the timer, even when the collection ends up empty.
func (c *AutoCleaner[E, C]) Update(mutator func(collection *C)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutator(&c.collection)
}

// Clean performs one cleaning pass with the given condition,
// or the default one when none is given, and returns the number of removed elements.
// onCleaned is notified even if nothing was removed. If the collection
// is empty afterwards the timer is stopped.
func (c *AutoCleaner[E, C]) Clean(override ...func(E) bool) int {
	condition := c.condition
	if len(override) > 0 && override[0] != nil {
		condition = override[0]
	}

	removed, notify := c.pass(condition)
	if notify != nil {
		notify(removed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.collection.Len() == 0 {
		c.stopLocked()
	}

	return removed
}

// Close stops the timer for good, Start returns ErrClosed afterwards.
// Close is safe to call multiple times.
func (c *AutoCleaner[E, C]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.stopLocked()
	stopWatch := c.stopWatch
	c.mu.Unlock()

	if stopWatch != nil {
		stopWatch()
	}

	logger.Debugf("cleaner closed")
	return nil
}

func (c *AutoCleaner[E, C]) pass(condition func(E) bool) (int, func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanLocked(condition), c.onCleaned
}

func (c *AutoCleaner[E, C]) cleanLocked(condition func(E) bool) int {
	before := c.collection.Len()
	c.collection = c.collection.Clean(condition)
	after := c.collection.Len()

	logger.Tracef("cleaning pass removed %d of %d elements", before-after, before)
	return before - after
}

func keepAll[E any](E) bool {
	return false
}
