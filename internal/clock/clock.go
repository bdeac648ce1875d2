package clock

import (
	"sync"
	"time"
)

// Clock reports monotonically non-decreasing elapsed time since its epoch.
type Clock interface {
	Now() time.Duration
}

// System is a Clock backed by the process monotonic clock.
type System struct {
	// epoch is the instant the clock was created.
	epoch time.Time
}

// NewSystem creates a system clock whose epoch is the moment of the call.
func NewSystem() *System {
	return &System{
		epoch: time.Now(),
	}
}

// Now returns the time elapsed since the clock was created.
func (s *System) Now() time.Duration {
	return time.Since(s.epoch)
}

// Manual is a Clock that only moves when told to.
type Manual struct {
	// now is the current elapsed time.
	now time.Duration
	// mu protects now.
	mu sync.Mutex
}

// NewManual creates a manual clock positioned at start.
func NewManual(start time.Duration) *Manual {
	return &Manual{
		now: start,
	}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (m *Manual) Advance(d time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d > 0 {
		m.now += d
	}

	return m.now
}

// Set moves the clock to t if t is not in the past.
func (m *Manual) Set(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t > m.now {
		m.now = t
	}
}

// Elapsed returns now-since, clamped at zero.
func Elapsed(now, since time.Duration) time.Duration {
	if now < since {
		return 0
	}

	return now - since
}

// Reached reports whether at least period has elapsed between since and now.
func Reached(now, since, period time.Duration) bool {
	return Elapsed(now, since) >= period
}
