package ecs

import (
	"slices"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"
)

// Spawn creates an entity with a Transform at t plus the given extra
// components.
func Spawn(w donburi.World, t Transform, extra ...component.IComponentType) donburi.Entity {
	cts := append([]component.IComponentType{TransformComponent}, extra...)
	e := w.Create(cts...)
	TransformComponent.SetValue(w.Entry(e), t)
	return e
}

// SpawnChild is like Spawn and attaches the new entity to parent.
func SpawnChild(w donburi.World, parent donburi.Entity, t Transform, extra ...component.IComponentType) donburi.Entity {
	e := Spawn(w, t, extra...)
	SetParent(w, e, parent)
	return e
}

// SetParent attaches child to parent. The child's global transform is
// recomputed by DirtyChildSystem on the next frame.
func SetParent(w donburi.World, child, parent donburi.Entity) {
	entry := w.Entry(child)
	if !entry.HasComponent(ParentComponent) {
		entry.AddComponent(ParentComponent)
	}
	ParentComponent.SetValue(entry, Parent{Entity: parent})
	if entry.HasComponent(TransformComponent) {
		TransformComponent.Get(entry).dirtyChild = true
	}
}

// RemoveParent detaches child from its parent. Its global transform falls
// back to its local transform.
func RemoveParent(w donburi.World, child donburi.Entity) {
	entry := w.Entry(child)
	if entry.HasComponent(ParentComponent) {
		entry.RemoveComponent(ParentComponent)
	}
	if entry.HasComponent(TransformComponent) {
		TransformComponent.Get(entry).detach()
	}
}

// HierarchySystem keeps Children components in sync with Parent links.
// Entities whose parent no longer exists are removed, together with their
// own descendants.
type HierarchySystem struct {
	parents  *donburi.Query
	children *donburi.Query
}

// NewHierarchySystem creates the system.
func NewHierarchySystem() *HierarchySystem {
	return &HierarchySystem{
		parents:  donburi.NewQuery(filter.Contains(ParentComponent)),
		children: donburi.NewQuery(filter.Contains(ChildrenComponent)),
	}
}

// Update rebuilds the Children lists.
func (s *HierarchySystem) Update(w donburi.World, _ time.Duration) error {
	for {
		if s.removeOrphans(w) == 0 {
			break
		}
	}

	byParent := make(map[donburi.Entity][]donburi.Entity)
	var order []donburi.Entity
	s.parents.Each(w, func(entry *donburi.Entry) {
		p := ParentComponent.Get(entry).Entity
		if _, ok := byParent[p]; !ok {
			order = append(order, p)
		}
		byParent[p] = append(byParent[p], entry.Entity())
	})

	var stale []donburi.Entity
	s.children.Each(w, func(entry *donburi.Entry) {
		kids, ok := byParent[entry.Entity()]
		if !ok {
			stale = append(stale, entry.Entity())
			return
		}
		c := ChildrenComponent.Get(entry)
		if !slices.Equal(c.Entities, kids) {
			c.Entities = kids
		}
	})
	for _, e := range stale {
		w.Entry(e).RemoveComponent(ChildrenComponent)
	}

	for _, p := range order {
		entry := w.Entry(p)
		if entry.HasComponent(ChildrenComponent) {
			continue
		}
		entry.AddComponent(ChildrenComponent)
		ChildrenComponent.SetValue(entry, Children{Entities: byParent[p]})
	}
	return nil
}

func (s *HierarchySystem) removeOrphans(w donburi.World) int {
	var orphans []donburi.Entity
	s.parents.Each(w, func(entry *donburi.Entry) {
		if !w.Valid(ParentComponent.Get(entry).Entity) {
			orphans = append(orphans, entry.Entity())
		}
	})
	for _, e := range orphans {
		w.Remove(e)
	}
	return len(orphans)
}
