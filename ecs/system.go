package ecs

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/thicket/timer"
)

// System is one step of the frame. Systems run strictly in sequence and own
// the world for the duration of Update.
type System interface {
	Update(w donburi.World, dt time.Duration) error
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(w donburi.World, dt time.Duration) error

// Update calls f(w, dt).
func (f SystemFunc) Update(w donburi.World, dt time.Duration) error { return f(w, dt) }

// TimerSystem feeds the frame delta to a timer set.
type TimerSystem[K comparable] struct {
	Timers *timer.Timers[K]
}

// Update advances every timer by dt.
func (s TimerSystem[K]) Update(_ donburi.World, dt time.Duration) error {
	s.Timers.Advance(dt)
	return nil
}
