package thicket

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/thicket/ecs"
)

// debugStats holds per-frame timings and counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	animationTime time.Duration
	systemTime    time.Duration
	propagateTime time.Duration
	entityCount   int
	timerCount    int
}

// debugOut is where debug output goes. Tests swap it.
var debugOut io.Writer = os.Stderr

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.animationTime + stats.systemTime + stats.propagateTime
	_, _ = fmt.Fprintf(debugOut,
		"[thicket] frame %d | animations: %v | systems: %v | propagate: %v | total: %v\n",
		s.frame, stats.animationTime, stats.systemTime, stats.propagateTime, total)
	_, _ = fmt.Fprintf(debugOut,
		"[thicket] entities: %d | timers: %d\n",
		stats.entityCount, stats.timerCount)
}

// debugMaxHierarchyDepth is the depth above which a warning is printed.
const debugMaxHierarchyDepth = 32

// debugMaxChildCount is the child count above which a warning is printed.
const debugMaxChildCount = 1000

var parentQuery = donburi.NewQuery(filter.Contains(ecs.ParentComponent))
var childrenQuery = donburi.NewQuery(filter.Contains(ecs.ChildrenComponent))

// debugCheckHierarchy warns about deep hierarchies and crowded parents.
func (s *Scene) debugCheckHierarchy() {
	parentQuery.Each(s.world, func(entry *donburi.Entry) {
		if depth := hierarchyDepth(s.world, entry.Entity()); depth > debugMaxHierarchyDepth {
			_, _ = fmt.Fprintf(debugOut, "[thicket] warning: hierarchy depth %d exceeds %d (entity %v)\n",
				depth, debugMaxHierarchyDepth, entry.Entity())
		}
	})
	childrenQuery.Each(s.world, func(entry *donburi.Entry) {
		if n := len(ecs.ChildrenComponent.Get(entry).Entities); n > debugMaxChildCount {
			_, _ = fmt.Fprintf(debugOut, "[thicket] warning: entity %v has %d children (threshold %d)\n",
				entry.Entity(), n, debugMaxChildCount)
		}
	})
}

// hierarchyDepth counts e and its ancestors. Cycles stop the walk once the
// depth exceeds the warning threshold.
func hierarchyDepth(w donburi.World, e donburi.Entity) int {
	depth := 0
	for w.Valid(e) && depth <= debugMaxHierarchyDepth {
		depth++
		entry := w.Entry(e)
		if !entry.HasComponent(ecs.ParentComponent) {
			break
		}
		e = ecs.ParentComponent.Get(entry).Entity
	}
	return depth
}
