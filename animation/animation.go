// Package animation is the keyframe animation model: named animations made of
// typed modifiers, their lifecycle status, and the per-keyframe update each
// modifier kind applies to its target components.
//
// Animations do not advance on their own. The ecs package's AnimationSystem
// converts elapsed time into keyframe counts and calls Modifier.Apply.
package animation

import (
	"maps"
	"slices"
	"time"
)

// Status is the lifecycle state of an Animation.
type Status uint8

const (
	Stopped      Status = iota // not advanced by the executor
	Running                    // plays one pass, then stops
	Looping                    // restarts after every pass
	Stopping                   // finishes the current pass, then stops
	ForceStopped               // applies its terminal update once, then stops
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Looping:
		return "looping"
	case Stopping:
		return "stopping"
	case ForceStopped:
		return "force-stopped"
	default:
		return "unknown"
	}
}

// Active reports whether the status counts as playing.
func (s Status) Active() bool {
	return s == Running || s == Looping || s == Stopping
}

// Animation is a timed sequence of modifiers applied to one entity.
type Animation struct {
	duration  time.Duration
	modifiers []*Modifier
	status    Status
}

// New creates a stopped animation. Each modifier's keyframe duration is
// duration divided by its keyframe count; a zero duration makes the
// modifiers apply a whole pass at once.
func New(duration time.Duration, modifiers ...*Modifier) *Animation {
	return newAnimation(duration, Stopped, modifiers)
}

// NewRunning creates an animation that starts playing one pass immediately.
func NewRunning(duration time.Duration, modifiers ...*Modifier) *Animation {
	return newAnimation(duration, Running, modifiers)
}

// NewLooping creates an animation that starts looping immediately.
func NewLooping(duration time.Duration, modifiers ...*Modifier) *Animation {
	return newAnimation(duration, Looping, modifiers)
}

func newAnimation(duration time.Duration, status Status, modifiers []*Modifier) *Animation {
	for _, m := range modifiers {
		if duration > 0 {
			m.keyframeDuration = duration / time.Duration(m.keyframes)
		}
		m.precompute()
	}
	return &Animation{duration: duration, modifiers: modifiers, status: status}
}

// Duration returns the length of one pass.
func (a *Animation) Duration() time.Duration { return a.duration }

// Modifiers returns the modifiers in application order. The returned slice
// MUST NOT be mutated.
func (a *Animation) Modifiers() []*Modifier { return a.modifiers }

// Status returns the current lifecycle status.
func (a *Animation) Status() Status { return a.status }

// TryUpdateStatus settles the status after the executor processed every
// modifier. A force-stopped animation always becomes Stopped. Otherwise, once
// every modifier completed its pass, all keyframe cursors go back to zero and
// a Running or Stopping animation becomes Stopped; a Looping one continues.
// It reports whether the animation just became Stopped.
func (a *Animation) TryUpdateStatus() bool {
	if a.status == ForceStopped {
		a.status = Stopped
		return true
	}
	for _, m := range a.modifiers {
		if !m.Complete() {
			return false
		}
	}
	for _, m := range a.modifiers {
		m.current = 0
	}
	if a.status == Running || a.status == Stopping {
		a.status = Stopped
		return true
	}
	return false
}

func (a *Animation) start(status Status) bool {
	if a.status != Stopped {
		return false
	}
	for _, m := range a.modifiers {
		m.baseline = nil
	}
	a.status = status
	return true
}

func (a *Animation) stop(force bool) bool {
	if a.status != Running && a.status != Looping {
		return false
	}
	if force {
		a.status = ForceStopped
	} else {
		a.status = Stopping
	}
	return true
}

// Animations is the per-entity collection of named animations.
type Animations struct {
	entries map[string]*Animation
}

// NewAnimations creates a collection from a name to animation map.
func NewAnimations(entries map[string]*Animation) *Animations {
	if entries == nil {
		entries = make(map[string]*Animation)
	}
	return &Animations{entries: entries}
}

// Single creates a collection holding one animation.
func Single(name string, a *Animation) *Animations {
	return NewAnimations(map[string]*Animation{name: a})
}

// Add registers or replaces the animation under name.
func (s *Animations) Add(name string, a *Animation) {
	s.entries[name] = a
}

// Get returns the animation registered under name.
func (s *Animations) Get(name string) (*Animation, bool) {
	a, ok := s.entries[name]
	return a, ok
}

// Len returns the number of animations.
func (s *Animations) Len() int { return len(s.entries) }

// Names returns the animation names in sorted order.
func (s *Animations) Names() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// RunAnimation plays one pass of a stopped animation. It returns false if the
// animation does not exist or is not stopped. Keyframe progress is kept, so
// a resumed animation continues where it left off.
func (s *Animations) RunAnimation(name string) bool {
	a, ok := s.entries[name]
	return ok && a.start(Running)
}

// LoopAnimation starts looping a stopped animation. It returns false if the
// animation does not exist or is not stopped.
func (s *Animations) LoopAnimation(name string) bool {
	a, ok := s.entries[name]
	return ok && a.start(Looping)
}

// StopAnimation stops a running or looping animation. With force the
// animation stops on the next executor pass; otherwise it finishes the
// current pass first. It reports whether a transition happened.
func (s *Animations) StopAnimation(name string, force bool) bool {
	a, ok := s.entries[name]
	return ok && a.stop(force)
}

// StopAllAnimations stops every running or looping animation.
func (s *Animations) StopAllAnimations(force bool) {
	for _, a := range s.entries {
		a.stop(force)
	}
}

// AnimationRunning reports whether the named animation is running, looping
// or stopping.
func (s *Animations) AnimationRunning(name string) bool {
	a, ok := s.entries[name]
	return ok && a.status.Active()
}

// AnyAnimationRunning reports whether any animation is running, looping or
// stopping.
func (s *Animations) AnyAnimationRunning() bool {
	for _, a := range s.entries {
		if a.status.Active() {
			return true
		}
	}
	return false
}
