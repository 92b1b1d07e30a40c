package ecs

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// HidePropagationSystem hides whole subtrees: every descendant of a Hidden
// entity carries HiddenPropagated, and loses it once no ancestor is hidden
// anymore. Run it after HierarchySystem.
type HidePropagationSystem struct {
	attached *donburi.Query
	marked   *donburi.Query

	// per-frame scratch
	hidden map[donburi.Entity]bool
	add    []donburi.Entity
	remove []donburi.Entity
}

// NewHidePropagationSystem creates the system.
func NewHidePropagationSystem() *HidePropagationSystem {
	return &HidePropagationSystem{
		attached: donburi.NewQuery(filter.Contains(ParentComponent)),
		marked:   donburi.NewQuery(filter.Contains(HiddenPropagatedComponent)),
		hidden:   make(map[donburi.Entity]bool),
	}
}

// Update adds and removes HiddenPropagated markers.
func (s *HidePropagationSystem) Update(w donburi.World, _ time.Duration) error {
	clear(s.hidden)
	s.add, s.remove = s.add[:0], s.remove[:0]
	limit := s.attached.Count(w)

	s.attached.Each(w, func(entry *donburi.Entry) {
		want := s.hiddenFromRoot(w, ParentComponent.Get(entry).Entity, limit)
		switch has := entry.HasComponent(HiddenPropagatedComponent); {
		case want && !has:
			s.add = append(s.add, entry.Entity())
		case !want && has:
			s.remove = append(s.remove, entry.Entity())
		}
	})
	// Detached entities have no ancestor left to hide them.
	s.marked.Each(w, func(entry *donburi.Entry) {
		if !entry.HasComponent(ParentComponent) {
			s.remove = append(s.remove, entry.Entity())
		}
	})

	for _, e := range s.add {
		w.Entry(e).AddComponent(HiddenPropagatedComponent)
	}
	for _, e := range s.remove {
		w.Entry(e).RemoveComponent(HiddenPropagatedComponent)
	}
	return nil
}

// hiddenFromRoot reports whether e or one of its ancestors is Hidden. The
// walk gives up after limit links, which only a Parent cycle reaches.
func (s *HidePropagationSystem) hiddenFromRoot(w donburi.World, e donburi.Entity, limit int) bool {
	var path []donburi.Entity
	result := false
	for steps := 0; steps <= limit; steps++ {
		if h, ok := s.hidden[e]; ok {
			result = h
			break
		}
		if !w.Valid(e) {
			break
		}
		path = append(path, e)
		entry := w.Entry(e)
		if entry.HasComponent(HiddenComponent) {
			result = true
			break
		}
		if !entry.HasComponent(ParentComponent) {
			break
		}
		e = ParentComponent.Get(entry).Entity
	}
	for _, p := range path {
		s.hidden[p] = result
	}
	return result
}
