package ecs

import (
	"errors"
	"fmt"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// ErrHierarchyCycle is returned by the propagation systems when Parent links
// form a cycle.
var ErrHierarchyCycle = errors.New("ecs: cycle in parent hierarchy")

// DirtyChildSystem derives the global transform of entities that were just
// attached to a parent. Parents settle before their children, so whole
// subtrees attached in one frame resolve in a single Update.
type DirtyChildSystem struct {
	query *donburi.Query
}

// NewDirtyChildSystem creates the system.
func NewDirtyChildSystem() *DirtyChildSystem {
	return &DirtyChildSystem{query: donburi.NewQuery(filter.Contains(TransformComponent))}
}

type attachment struct {
	child, parent *Transform
}

// Update settles every pending child.
func (s *DirtyChildSystem) Update(w donburi.World, _ time.Duration) error {
	var work []attachment
	s.query.Each(w, func(entry *donburi.Entry) {
		t := TransformComponent.Get(entry)
		if !t.dirtyChild {
			return
		}
		parent := parentTransform(w, entry)
		if parent == nil {
			t.dirtyChild = false
			return
		}
		work = append(work, attachment{child: t, parent: parent})
	})

	for len(work) > 0 {
		pending := work[:0:0]
		for _, a := range work {
			if a.parent.dirtyChild {
				pending = append(pending, a)
				continue
			}
			a.child.computeGlobalFromParent(a.parent)
			a.child.dirtyChild = false
		}
		if len(pending) == len(work) {
			return fmt.Errorf("%w: %d transforms never settled", ErrHierarchyCycle, len(pending))
		}
		work = pending
	}
	return nil
}

// parentTransform returns the Transform of entry's parent, or nil when the
// entity has no parent or the parent has no Transform.
func parentTransform(w donburi.World, entry *donburi.Entry) *Transform {
	if !entry.HasComponent(ParentComponent) {
		return nil
	}
	p := ParentComponent.Get(entry).Entity
	if !w.Valid(p) {
		return nil
	}
	pe := w.Entry(p)
	if !pe.HasComponent(TransformComponent) {
		return nil
	}
	return TransformComponent.Get(pe)
}

// DirtyTransformSystem pushes changes of dirty parents down to their
// children, one hierarchy level per round, until no dirty parent is left.
// Every transform is clean afterwards.
type DirtyTransformSystem struct {
	parents    *donburi.Query
	transforms *donburi.Query
}

// NewDirtyTransformSystem creates the system.
func NewDirtyTransformSystem() *DirtyTransformSystem {
	return &DirtyTransformSystem{
		parents:    donburi.NewQuery(filter.Contains(TransformComponent, ChildrenComponent)),
		transforms: donburi.NewQuery(filter.Contains(TransformComponent)),
	}
}

type dirtyParent struct {
	snapshot Transform
	children []donburi.Entity
}

// Update propagates every pending change.
func (s *DirtyTransformSystem) Update(w donburi.World, _ time.Duration) error {
	// A round moves changes one level down, so an acyclic hierarchy needs at
	// most one round per transform.
	limit := s.transforms.Count(w) + 1

	var work []dirtyParent
	for round := 0; ; round++ {
		work = work[:0]
		s.parents.Each(w, func(entry *donburi.Entry) {
			t := TransformComponent.Get(entry)
			if !t.dirty {
				return
			}
			t.dirty = false
			work = append(work, dirtyParent{
				snapshot: *t,
				children: ChildrenComponent.Get(entry).Entities,
			})
		})
		if len(work) == 0 {
			s.transforms.Each(w, func(entry *donburi.Entry) {
				TransformComponent.Get(entry).dirty = false
			})
			return nil
		}
		if round >= limit {
			return fmt.Errorf("%w: still propagating after %d rounds", ErrHierarchyCycle, round)
		}

		for _, p := range work {
			for _, c := range p.children {
				if !w.Valid(c) {
					continue
				}
				ce := w.Entry(c)
				if !ce.HasComponent(TransformComponent) {
					continue
				}
				TransformComponent.Get(ce).computeGlobalFromParent(&p.snapshot)
			}
		}
	}
}
