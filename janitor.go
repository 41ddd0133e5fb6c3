package autocleaner

import "time"

// Start arms the timer using frequency to compute the interval from the
// current element count, a nil frequency means the default interval.
// Calling Start again replaces the frequency and reschedules.
// Nothing is armed when the collection is empty, and adding elements
// later with Update does not arm it either.
func (c *AutoCleaner[E, C]) Start(frequency Frequency) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.frequency = frequency
	c.scheduleLocked()
	return nil
}

// Stop cancels the pending pass if any. Once Stop returns no new pass is
// started by the timer, although a pass already past its cleaning step
// still notifies onCleaned. Stop is a no-op when not running.
func (c *AutoCleaner[E, C]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Running reports whether a pass is scheduled.
func (c *AutoCleaner[E, C]) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Interval returns the interval the timer was last armed with, zero when idle.
func (c *AutoCleaner[E, C]) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

func (c *AutoCleaner[E, C]) scheduleLocked() {
	count := c.collection.Len()
	if count == 0 {
		return
	}

	c.cancelLocked()

	interval := c.defaultInterval
	if c.frequency != nil {
		interval = c.frequency(count)
	}
	if interval < c.minInterval {
		interval = c.minInterval
	}

	// a firing only acts if no stop or re-arm happened since it was armed
	c.generation++
	gen := c.generation

	c.interval = interval
	c.timer = c.clock.AfterFunc(interval, func() {
		c.fire(gen)
	})

	logger.Debugf("next cleaning pass in %s for %d elements", interval, count)
}

func (c *AutoCleaner[E, C]) fire(gen uint64) {
	removed, notify, ok := c.timerPass(gen)
	if !ok {
		return
	}

	if notify != nil {
		notify(removed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return
	}

	if c.collection.Len() == 0 {
		c.stopLocked()
		return
	}

	c.scheduleLocked()
}

func (c *AutoCleaner[E, C]) timerPass(gen uint64) (int, func(int), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return 0, nil, false
	}

	return c.cleanLocked(c.condition), c.onCleaned, true
}

func (c *AutoCleaner[E, C]) stopLocked() {
	c.generation++
	if c.timer == nil {
		return
	}

	c.cancelLocked()
	logger.Debugf("cleaning stopped")
}

func (c *AutoCleaner[E, C]) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.interval = 0
}
