// Package timer provides named manual and cyclic timers advanced by the frame
// delta. Cyclic timers count how many whole periods elapsed since they were
// last queried, which lets callers catch up after slow frames.
package timer

import (
	"errors"
	"time"
)

var (
	ErrExists        = errors.New("timer: already exists")
	ErrNotFound      = errors.New("timer: not found")
	ErrInvalidPeriod = errors.New("timer: period must be positive")
)

// Kind selects how a timer behaves once its period elapses.
type Kind uint8

const (
	Manual Kind = iota // fires once, then waits for Reset
	Cyclic             // repeats until deleted, accumulating cycles
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Manual:
		return "manual"
	case Cyclic:
		return "cyclic"
	default:
		return "unknown"
	}
}

// Timer measures one period. Create timers through Timers.Add.
type Timer struct {
	kind    Kind
	running bool
	elapsed time.Duration
	period  time.Duration
	fired   bool
	cycles  int
}

func newTimer(kind Kind, period time.Duration) *Timer {
	return &Timer{kind: kind, running: true, period: period}
}

// AddDelta advances the timer. It reports whether a manual timer just ended
// or a cyclic timer completed at least one cycle.
func (t *Timer) AddDelta(delta time.Duration) bool {
	t.fired = false
	if !t.running || delta <= 0 {
		return false
	}

	switch t.kind {
	case Manual:
		t.elapsed += delta
		if t.elapsed >= t.period {
			t.running = false
			t.fired = true
		}
	case Cyclic:
		total := t.elapsed + delta
		n := int(total / t.period)
		if n > 0 {
			t.fired = true
		}
		t.cycles += n
		t.elapsed = total % t.period
	}
	return t.fired
}

// Kind returns the timer kind.
func (t *Timer) Kind() Kind { return t.kind }

// Period returns the timer period.
func (t *Timer) Period() time.Duration { return t.period }

// Elapsed returns the time spent in the current run or cycle.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Ended reports whether a manual timer has finished.
func (t *Timer) Ended() bool { return !t.running }

// Reset restarts the timer and drops any pending cycles.
func (t *Timer) Reset() {
	t.running = true
	t.elapsed = 0
	t.fired = false
	t.cycles = 0
}

// SetPeriod changes the period used from the next AddDelta on.
// Non-positive periods are ignored.
func (t *Timer) SetPeriod(period time.Duration) {
	if period > 0 {
		t.period = period
	}
}

// Cycle returns the number of whole cycles elapsed since the previous call
// and clears the counter.
func (t *Timer) Cycle() int {
	n := t.cycles
	t.cycles = 0
	return n
}
