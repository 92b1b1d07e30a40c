package timer

import (
	"fmt"
	"time"
)

// Timers is a set of timers keyed by any comparable identifier. Structured
// keys avoid the collisions that formatted string ids invite.
type Timers[K comparable] struct {
	timers map[K]*Timer
}

// New creates an empty timer set.
func New[K comparable]() *Timers[K] {
	return &Timers[K]{timers: make(map[K]*Timer)}
}

// Add creates a timer. It returns ErrExists if id is already in use.
func (s *Timers[K]) Add(id K, kind Kind, period time.Duration) (*Timer, error) {
	if period <= 0 {
		return nil, fmt.Errorf("add %v: %w", id, ErrInvalidPeriod)
	}
	if _, ok := s.timers[id]; ok {
		return nil, ErrExists
	}
	t := newTimer(kind, period)
	s.timers[id] = t
	return t, nil
}

// Get returns the timer registered under id.
func (s *Timers[K]) Get(id K) (*Timer, error) {
	t, ok := s.timers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// Delete removes the timer registered under id.
func (s *Timers[K]) Delete(id K) error {
	if _, ok := s.timers[id]; !ok {
		return ErrNotFound
	}
	delete(s.timers, id)
	return nil
}

// Exists reports whether a timer is registered under id.
func (s *Timers[K]) Exists(id K) bool {
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of registered timers.
func (s *Timers[K]) Len() int {
	return len(s.timers)
}

// Advance feeds delta to every timer.
func (s *Timers[K]) Advance(delta time.Duration) {
	for _, t := range s.timers {
		t.AddDelta(delta)
	}
}

// DeleteFunc removes every timer whose id satisfies del and returns how many
// were removed.
func (s *Timers[K]) DeleteFunc(del func(id K) bool) int {
	n := 0
	for id := range s.timers {
		if del(id) {
			delete(s.timers, id)
			n++
		}
	}
	return n
}
