package autocleaner

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
)

const (
	DefaultInterval    = 60 * time.Second
	DefaultMinInterval = time.Millisecond
)

// Config holds the scheduling settings of a cleaner, build it with
// NewDefaultConfig and the With methods.
type Config struct {
	clock           clock.Clock
	defaultInterval time.Duration
	minInterval     time.Duration
	onCleaned       func(removed int)
}

// NewDefaultConfig uses the wall clock and a 60 second default interval.
func NewDefaultConfig() Config {
	return Config{
		clock:           clock.WallClock,
		defaultInterval: DefaultInterval,
		minInterval:     DefaultMinInterval,
	}
}

// WithClock replaces the wall clock, tests use it to drive the timer.
func (c Config) WithClock(clk clock.Clock) Config {
	c.clock = clk
	return c
}

// WithDefaultInterval is used when Start is given no frequency.
func (c Config) WithDefaultInterval(interval time.Duration) Config {
	c.defaultInterval = interval
	return c
}

// WithMinInterval is the floor applied to whatever a frequency returns.
func (c Config) WithMinInterval(interval time.Duration) Config {
	c.minInterval = interval
	return c
}

// WithOnCleaned sets the callback fired after every cleaning pass
// with the number of removed elements, zero included.
func (c Config) WithOnCleaned(f func(removed int)) Config {
	c.onCleaned = f
	return c
}

func (c Config) validate() error {
	if c.clock == nil {
		return errors.Annotatef(ErrInvalidConfig, "clock is required")
	}

	if c.defaultInterval <= 0 {
		return errors.Annotatef(ErrInvalidConfig, "default interval should be greater than 0, got %s", c.defaultInterval)
	}

	if c.minInterval <= 0 {
		return errors.Annotatef(ErrInvalidConfig, "min interval should be greater than 0, got %s", c.minInterval)
	}

	return nil
}
