package ecs

import (
	"math"

	"github.com/phanxgames/thicket/gfx"
)

// Bounds clamps a transform's global translation to a rectangle.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (b Bounds) clamp(c gfx.Coordinates) gfx.Coordinates {
	c.X = math.Max(b.MinX, math.Min(c.X, b.MaxX))
	c.Y = math.Max(b.MinY, math.Min(c.Y, b.MaxY))
	return c
}

// Transform is an entity's local and derived global placement.
//
// The global fields are maintained by the propagation systems. Mutators
// shift global state along with local state so entities without a parent
// never need propagation, and they mark the transform dirty so its children
// follow on the next frame.
type Transform struct {
	local       gfx.Coordinates
	global      gfx.Coordinates
	scale       float64
	angle       float64
	globalAngle float64
	bounds      *Bounds

	// dirty: local state changed since the last propagation.
	dirty bool
	// dirtyChild: attached to a (possibly new) parent, global not yet derived.
	dirtyChild bool
}

// NewTransform creates a transform at c with scale 1. It starts out waiting
// for its parent, if any, to settle.
func NewTransform(c gfx.Coordinates) Transform {
	return Transform{
		local:      c,
		global:     c,
		scale:      1,
		dirtyChild: true,
	}
}

// TransformFromXY creates a transform at (x, y) on layer 0.
func TransformFromXY(x, y float64) Transform {
	return NewTransform(gfx.XY(x, y))
}

// --- Getters ---

// Translation returns the local translation.
func (t *Transform) Translation() gfx.Coordinates { return t.local }

// GlobalTranslation returns the world-space translation.
func (t *Transform) GlobalTranslation() gfx.Coordinates { return t.global }

// Scale returns the uniform scale.
func (t *Transform) Scale() float64 { return t.scale }

// Angle returns the local rotation in radians.
func (t *Transform) Angle() float64 { return t.angle }

// GlobalAngle returns the world-space rotation in radians.
func (t *Transform) GlobalAngle() float64 { return t.globalAngle }

// Dirty reports whether local state changed since the last propagation.
func (t *Transform) Dirty() bool { return t.dirty }

// DirtyChild reports whether the transform still waits for its parent.
func (t *Transform) DirtyChild() bool { return t.dirtyChild }

// Bounds returns the clamp rectangle, if any.
func (t *Transform) Bounds() (Bounds, bool) {
	if t.bounds == nil {
		return Bounds{}, false
	}
	return *t.bounds, true
}

// --- Mutators ---

// AppendTranslation moves the transform by (x, y).
func (t *Transform) AppendTranslation(x, y float64) {
	t.local.X += x
	t.local.Y += y
	t.global.X += x
	t.global.Y += y
	t.changed()
}

// SetTranslation moves the transform to the local position (x, y).
func (t *Transform) SetTranslation(x, y float64) {
	t.AppendTranslation(x-t.local.X, y-t.local.Y)
}

// SetLayer sets the render layer.
func (t *Transform) SetLayer(layer int) {
	t.local.Layer = layer
	t.global.Layer = layer
	t.changed()
}

// SetScale sets the uniform scale.
func (t *Transform) SetScale(s float64) {
	t.scale = s
	t.changed()
}

// AppendAngle rotates the transform by angle radians.
func (t *Transform) AppendAngle(angle float64) {
	t.angle += angle
	t.globalAngle += angle
	t.changed()
}

// SetAngle sets the local rotation in radians.
func (t *Transform) SetAngle(angle float64) {
	t.AppendAngle(angle - t.angle)
}

// SetBounds clamps the global translation to b from now on.
func (t *Transform) SetBounds(b Bounds) {
	t.bounds = &b
	t.changed()
}

// ClearBounds removes the clamp rectangle.
func (t *Transform) ClearBounds() {
	t.bounds = nil
}

// MarkDirty forces the transform's children to be refreshed next frame.
func (t *Transform) MarkDirty() {
	t.dirty = true
}

func (t *Transform) changed() {
	t.dirty = true
	t.applyBounds()
}

func (t *Transform) applyBounds() {
	if t.bounds != nil {
		t.global = t.bounds.clamp(t.global)
	}
}

// detach makes the transform a root: global state equals local state.
func (t *Transform) detach() {
	t.global = t.local
	t.globalAngle = t.angle
	t.dirtyChild = false
	t.changed()
}

// computeGlobalFromParent derives global state from the parent's global
// state. The transform is marked dirty so its own children follow.
func (t *Transform) computeGlobalFromParent(parent *Transform) {
	t.global = gfx.Coordinates{
		X:     parent.global.X + t.local.X,
		Y:     parent.global.Y + t.local.Y,
		Layer: t.local.Layer,
	}
	t.globalAngle = parent.globalAngle + t.angle
	t.changed()
}
