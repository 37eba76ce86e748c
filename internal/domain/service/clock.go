// Package service defines the interfaces for external collaborators consumed
// by the dispatch core.
package service

import "time"

// Clock abstracts wall-clock time so rush-hour and tenure calculations are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

// FixedClock is a Clock frozen at a single instant, for tests.
type FixedClock struct {
	At time.Time
}

// Now returns the frozen instant.
func (c FixedClock) Now() time.Time { return c.At }
