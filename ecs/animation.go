package ecs

import (
	"fmt"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/timer"
)

// ModifierKey identifies the timer of one modifier of one animation on one
// entity.
type ModifierKey struct {
	Entity    donburi.Entity
	Animation string
	Index     int
	Kind      animation.Kind
}

// AnimationSystem advances every playing animation. Elapsed time reaches it
// through one cyclic timer per modifier; the timers must be advanced before
// Update runs.
type AnimationSystem struct {
	timers *timer.Timers[ModifierKey]
	query  *donburi.Query

	// per-frame scratch
	visibility map[donburi.Entity]bool
	stopped    []AnimationStopped
}

// NewAnimationSystem creates the system around the modifier timer set.
func NewAnimationSystem(timers *timer.Timers[ModifierKey]) *AnimationSystem {
	return &AnimationSystem{
		timers:     timers,
		query:      donburi.NewQuery(filter.Contains(AnimationsComponent)),
		visibility: make(map[donburi.Entity]bool),
	}
}

// Timers returns the modifier timer set.
func (s *AnimationSystem) Timers() *timer.Timers[ModifierKey] { return s.timers }

// Update runs one executor pass.
func (s *AnimationSystem) Update(w donburi.World, _ time.Duration) error {
	clear(s.visibility)
	s.stopped = s.stopped[:0]

	s.query.Each(w, func(entry *donburi.Entry) {
		s.updateEntity(entry)
	})

	// Timers of stopped animations are dropped so a restart begins with a
	// fresh first pass.
	s.query.Each(w, func(entry *donburi.Entry) {
		anims := AnimationsComponent.Get(entry)
		for _, name := range anims.Names() {
			a, _ := anims.Get(name)
			if a.Status() != animation.Stopped {
				continue
			}
			for i, m := range a.Modifiers() {
				key := ModifierKey{entry.Entity(), name, i, m.Kind()}
				if s.timers.Exists(key) {
					_ = s.timers.Delete(key)
				}
			}
		}
	})
	s.timers.DeleteFunc(func(k ModifierKey) bool { return !w.Valid(k.Entity) })

	// Hidden is a structural change, applied after iteration.
	for e, hidden := range s.visibility {
		if !w.Valid(e) {
			continue
		}
		entry := w.Entry(e)
		switch has := entry.HasComponent(HiddenComponent); {
		case hidden && !has:
			entry.AddComponent(HiddenComponent)
		case !hidden && has:
			entry.RemoveComponent(HiddenComponent)
		}
	}

	for _, ev := range s.stopped {
		AnimationStoppedEvent.Publish(w, ev)
	}
	return nil
}

func (s *AnimationSystem) updateEntity(entry *donburi.Entry) {
	anims := AnimationsComponent.Get(entry)
	e := entry.Entity()

	targets := animation.Targets{Hidden: entry.HasComponent(HiddenComponent)}
	if entry.HasComponent(TransformComponent) {
		targets.Transform = TransformComponent.Get(entry)
	}
	if entry.HasComponent(SpriteComponent) {
		targets.Sprite = SpriteComponent.Get(entry)
	}
	if entry.HasComponent(MaterialComponent) {
		targets.Color = MaterialComponent.Get(entry)
	}
	if entry.HasComponent(TextComponent) {
		targets.Text = TextComponent.Get(entry)
	}
	wasHidden := targets.Hidden

	for _, name := range anims.Names() {
		a, _ := anims.Get(name)
		status := a.Status()
		if status == animation.Stopped {
			continue
		}

		for i, m := range a.Modifiers() {
			key := ModifierKey{e, name, i, m.Kind()}
			if status == animation.ForceStopped {
				count := 0
				if t, err := s.timers.Get(key); err == nil {
					count = min(t.Cycle(), m.KeyframesLeft())
				}
				s.apply(m, status, count, key, &targets)
				continue
			}

			// Finished modifiers wait for their siblings.
			if m.Complete() {
				continue
			}
			count, first := s.cycles(key, m)
			if count > 0 || first {
				s.apply(m, status, count, key, &targets)
			}
		}

		if a.TryUpdateStatus() {
			s.stopped = append(s.stopped, AnimationStopped{
				Entity:    e,
				Animation: name,
				Forced:    status == animation.ForceStopped,
			})
		}
	}

	if targets.Hidden != wasHidden {
		s.visibility[e] = targets.Hidden
	}
}

// cycles returns the keyframes elapsed for the modifier, clamped to what is
// left of its pass, and whether this is the modifier's first pass. Modifiers
// without a keyframe duration complete their pass at once.
func (s *AnimationSystem) cycles(key ModifierKey, m *animation.Modifier) (count int, first bool) {
	period := m.KeyframeDuration()
	if period <= 0 {
		return m.KeyframesLeft(), true
	}
	if !s.timers.Exists(key) {
		t, err := s.timers.Add(key, timer.Cyclic, period)
		if err != nil {
			panic(fmt.Sprintf("ecs: create modifier timer %v: %v", key, err))
		}
		t.Reset()
		first = true
	}
	t, err := s.timers.Get(key)
	if err != nil {
		panic(fmt.Sprintf("ecs: modifier timer %v: %v", key, err))
	}
	return min(t.Cycle(), m.KeyframesLeft()), first
}

func (s *AnimationSystem) apply(m *animation.Modifier, status animation.Status, count int, key ModifierKey, targets *animation.Targets) {
	switch m.Apply(status, count, *targets) {
	case animation.VisibilityShow:
		targets.Hidden = false
	case animation.VisibilityHide:
		targets.Hidden = true
	}
	m.Advance(count)
	if m.Complete() && s.timers.Exists(key) {
		_ = s.timers.Delete(key)
	}
}
