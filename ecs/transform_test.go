package ecs

import (
	"math"
	"testing"

	"github.com/phanxgames/thicket/gfx"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertXY(t *testing.T, name string, c gfx.Coordinates, x, y float64) {
	t.Helper()
	if math.Abs(c.X-x) > 1e-9 || math.Abs(c.Y-y) > 1e-9 {
		t.Errorf("%s = (%v, %v), want (%v, %v)", name, c.X, c.Y, x, y)
	}
}

func TestNewTransformDefaults(t *testing.T) {
	tr := NewTransform(gfx.Coordinates{X: 3, Y: 4, Layer: 2})
	if tr.Dirty() {
		t.Error("new transform should not be dirty")
	}
	if !tr.DirtyChild() {
		t.Error("new transform should wait for its parent")
	}
	if tr.Scale() != 1 {
		t.Errorf("Scale = %v, want 1", tr.Scale())
	}
	if tr.GlobalTranslation() != tr.Translation() {
		t.Errorf("global = %v, want local %v", tr.GlobalTranslation(), tr.Translation())
	}
}

func TestTransformMutatorsMoveGlobal(t *testing.T) {
	tr := TransformFromXY(1, 1)
	tr.global = gfx.XY(11, 21)

	tr.AppendTranslation(2, 3)
	assertXY(t, "local", tr.Translation(), 3, 4)
	assertXY(t, "global", tr.GlobalTranslation(), 13, 24)
	if !tr.Dirty() {
		t.Error("AppendTranslation should mark dirty")
	}

	tr.SetTranslation(0, 0)
	assertXY(t, "local", tr.Translation(), 0, 0)
	assertXY(t, "global", tr.GlobalTranslation(), 10, 20)

	tr.AppendAngle(0.5)
	tr.SetAngle(2)
	assertNear(t, "angle", tr.Angle(), 2)
	assertNear(t, "global angle", tr.GlobalAngle(), 2)

	tr.SetLayer(7)
	if tr.GlobalTranslation().Layer != 7 {
		t.Errorf("layer = %d, want 7", tr.GlobalTranslation().Layer)
	}
}

func TestTransformBoundsClamp(t *testing.T) {
	tr := TransformFromXY(0, 0)
	tr.SetBounds(Bounds{MinX: -10, MaxX: 10, MinY: 0, MaxY: 5})

	tr.AppendTranslation(50, -50)
	assertXY(t, "global", tr.GlobalTranslation(), 10, 0)
	assertXY(t, "local", tr.Translation(), 50, -50)

	if b, ok := tr.Bounds(); !ok || b.MaxY != 5 {
		t.Errorf("Bounds = %+v, %v", b, ok)
	}
	tr.ClearBounds()
	if _, ok := tr.Bounds(); ok {
		t.Error("bounds should be cleared")
	}
}

func TestComputeGlobalFromParent(t *testing.T) {
	parent := NewTransform(gfx.Coordinates{X: 10, Y: 20, Layer: 9})
	parent.globalAngle = 1
	child := NewTransform(gfx.Coordinates{X: 1, Y: 2, Layer: 3})
	child.angle = 0.5

	child.computeGlobalFromParent(&parent)
	if got := child.GlobalTranslation(); got != (gfx.Coordinates{X: 11, Y: 22, Layer: 3}) {
		t.Errorf("global = %+v", got)
	}
	assertNear(t, "global angle", child.GlobalAngle(), 1.5)
	if !child.Dirty() {
		t.Error("child should be dirty after recomputation")
	}
}
