// Package clock abstracts wall time so time-dependent logic can be
// driven deterministically in tests.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewRealClock returns a Clock backed by time.Now.
func NewRealClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MockClock stands still until a test moves it with Set or Add.
type MockClock struct {
	now time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	return m.now
}

// Set jumps the clock to the given instant.
func (m *MockClock) Set(t time.Time) {
	m.now = t
}

// Add advances the clock by d.
func (m *MockClock) Add(d time.Duration) {
	m.now = m.now.Add(d)
}
