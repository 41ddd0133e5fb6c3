package autocleaner

import "time"

// Frequency returns the time to wait before the next cleaning pass,
// given the number of elements currently held.
type Frequency func(count int) time.Duration

// Constant cleans every d regardless of the collection size.
func Constant(d time.Duration) Frequency {
	return func(int) time.Duration {
		return d
	}
}

// Threshold uses above while the collection holds more than limit
// elements and atOrBelow otherwise.
func Threshold(limit int, above, atOrBelow time.Duration) Frequency {
	return func(count int) time.Duration {
		if count > limit {
			return above
		}
		return atOrBelow
	}
}

// Linear grows the interval by perElement for every element held,
// starting from base and capped at max. A non-positive max disables the cap.
func Linear(base, perElement, max time.Duration) Frequency {
	return func(count int) time.Duration {
		d := base + time.Duration(count)*perElement
		if max > 0 && d > max {
			return max
		}
		return d
	}
}
