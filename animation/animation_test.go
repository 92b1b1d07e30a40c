package animation

import (
	"testing"
	"time"

	"github.com/phanxgames/thicket/gfx"
)

func TestKeyframeDurationAndTransformStep(t *testing.T) {
	a := New(time.Second, Transform(2, &gfx.Vec2{X: 2, Y: 4}, Ptr(4.0), Ptr(1.0)))

	m := a.Modifiers()[0]
	if m.KeyframeDuration() != 500*time.Millisecond {
		t.Errorf("KeyframeDuration = %v, want 500ms", m.KeyframeDuration())
	}
	step := m.transform
	if step.vector == nil || step.vector.X != 1 || step.vector.Y != 2 {
		t.Errorf("vector step = %+v, want {1 2}", step.vector)
	}
	if step.scale == nil || *step.scale != 2 {
		t.Errorf("scale step = %v, want 2", step.scale)
	}
	if step.rotation == nil || *step.rotation != 0.5 {
		t.Errorf("rotation step = %v, want 0.5", step.rotation)
	}
}

func TestZeroDurationHasNoKeyframeDuration(t *testing.T) {
	a := New(0, Translate(4, 8, 0))
	m := a.Modifiers()[0]
	if m.KeyframeDuration() != 0 {
		t.Errorf("KeyframeDuration = %v, want 0", m.KeyframeDuration())
	}
	if m.transform.vector == nil || m.transform.vector.X != 2 {
		t.Errorf("transform step should still be computed, got %+v", m.transform.vector)
	}
}

func TestInitialStatus(t *testing.T) {
	if s := New(time.Second, Blink(1)).Status(); s != Stopped {
		t.Errorf("New status = %v, want stopped", s)
	}
	if s := NewRunning(time.Second, Blink(1)).Status(); s != Running {
		t.Errorf("NewRunning status = %v, want running", s)
	}
	if s := NewLooping(time.Second, Blink(1)).Status(); s != Looping {
		t.Errorf("NewLooping status = %v, want looping", s)
	}
}

func TestAnyAnimationRunning(t *testing.T) {
	running := NewAnimations(map[string]*Animation{"d": {status: Running}})
	if !running.AnyAnimationRunning() {
		t.Error("expected true with a running animation")
	}
	stopped := NewAnimations(map[string]*Animation{"d": {status: Stopped}})
	if stopped.AnyAnimationRunning() {
		t.Error("expected false with only stopped animations")
	}
	stopping := NewAnimations(map[string]*Animation{"d": {status: Stopping}})
	if !stopping.AnyAnimationRunning() {
		t.Error("stopping counts as running")
	}
}

func TestRunAnimationTwice(t *testing.T) {
	anims := Single("X", New(time.Second, Blink(2)))
	if !anims.RunAnimation("X") {
		t.Error("first RunAnimation should start the animation")
	}
	if anims.RunAnimation("X") {
		t.Error("second RunAnimation should be a no-op")
	}
	if !anims.AnimationRunning("X") {
		t.Error("X should be running")
	}
}

func TestRunUnknownAnimation(t *testing.T) {
	anims := NewAnimations(nil)
	if anims.RunAnimation("nope") || anims.LoopAnimation("nope") || anims.StopAnimation("nope", true) {
		t.Error("operations on unknown animations must return false")
	}
	if anims.AnimationRunning("nope") {
		t.Error("unknown animation is not running")
	}
}

func TestRunKeepsKeyframeProgress(t *testing.T) {
	m := Blink(2)
	anims := Single("b", New(time.Second, m))
	m.Advance(3)
	anims.RunAnimation("b")
	if m.CurrentKeyframe() != 3 {
		t.Errorf("CurrentKeyframe = %d, want 3", m.CurrentKeyframe())
	}
}

func TestStopAnimation(t *testing.T) {
	anims := NewAnimations(map[string]*Animation{
		"soft": NewRunning(time.Second, Blink(1)),
		"hard": NewLooping(time.Second, Blink(1)),
		"idle": New(time.Second, Blink(1)),
	})

	if !anims.StopAnimation("soft", false) {
		t.Error("stopping a running animation should succeed")
	}
	if a, _ := anims.Get("soft"); a.Status() != Stopping {
		t.Errorf("soft status = %v, want stopping", a.Status())
	}
	if !anims.StopAnimation("hard", true) {
		t.Error("force-stopping a looping animation should succeed")
	}
	if a, _ := anims.Get("hard"); a.Status() != ForceStopped {
		t.Errorf("hard status = %v, want force-stopped", a.Status())
	}
	if anims.StopAnimation("idle", true) {
		t.Error("stopping a stopped animation should fail")
	}
	if anims.StopAnimation("soft", true) {
		t.Error("stopping a stopping animation should fail")
	}
}

func TestStopAllAnimations(t *testing.T) {
	anims := NewAnimations(map[string]*Animation{
		"a": NewRunning(time.Second, Blink(1)),
		"b": NewLooping(time.Second, Blink(1)),
		"c": New(time.Second, Blink(1)),
	})
	anims.StopAllAnimations(true)
	for _, name := range anims.Names() {
		a, _ := anims.Get(name)
		want := ForceStopped
		if name == "c" {
			want = Stopped
		}
		if a.Status() != want {
			t.Errorf("%s status = %v, want %v", name, a.Status(), want)
		}
	}
}

func TestTryUpdateStatusForceStopped(t *testing.T) {
	a := NewRunning(time.Second, Blink(2))
	a.Modifiers()[0].Advance(1)
	a.stop(true)
	if !a.TryUpdateStatus() {
		t.Error("force-stopped animation should report stopping")
	}
	if a.Status() != Stopped {
		t.Errorf("status = %v, want stopped", a.Status())
	}
	if a.Modifiers()[0].CurrentKeyframe() != 1 {
		t.Error("force stop must not rewind keyframes")
	}
}

func TestTryUpdateStatusWaitsForAllModifiers(t *testing.T) {
	a := NewRunning(time.Second, Blink(1), Translate(4, 1, 1))
	a.Modifiers()[0].Advance(2)
	if a.TryUpdateStatus() {
		t.Error("should not stop while a modifier is incomplete")
	}
	a.Modifiers()[1].Advance(4)
	if !a.TryUpdateStatus() {
		t.Error("should stop once every modifier completed")
	}
	for i, m := range a.Modifiers() {
		if m.CurrentKeyframe() != 0 {
			t.Errorf("modifier %d keyframe = %d, want 0", i, m.CurrentKeyframe())
		}
	}
}

func TestTryUpdateStatusLoopingContinues(t *testing.T) {
	a := NewLooping(time.Second, Blink(1))
	a.Modifiers()[0].Advance(2)
	if a.TryUpdateStatus() {
		t.Error("looping animation should not stop")
	}
	if a.Status() != Looping {
		t.Errorf("status = %v, want looping", a.Status())
	}
	if a.Modifiers()[0].CurrentKeyframe() != 0 {
		t.Error("looping pass should rewind keyframes")
	}
}

func TestStoppingBecomesStopped(t *testing.T) {
	a := NewLooping(time.Second, Blink(1))
	a.stop(false)
	a.Modifiers()[0].Advance(2)
	if !a.TryUpdateStatus() || a.Status() != Stopped {
		t.Errorf("status = %v, want stopped", a.Status())
	}
}

func TestConstructorKeyframes(t *testing.T) {
	if n := Sprite([]int{0, 1, 2}, 9).Keyframes(); n != 2 {
		t.Errorf("sprite keyframes = %d, want 2", n)
	}
	if n := Blink(3).Keyframes(); n != 6 {
		t.Errorf("blink keyframes = %d, want 6", n)
	}
	if n := Text("héllo").Keyframes(); n != 5 {
		t.Errorf("text keyframes = %d, want 5", n)
	}
}

func TestConstructorPanics(t *testing.T) {
	cases := map[string]func(){
		"empty sprite":     func() { Sprite(nil, 0) },
		"single tile":      func() { Sprite([]int{1}, 0) },
		"zero keyframes":   func() { Translate(0, 1, 1) },
		"variant mismatch": func() { SpriteWithVariant([]int{1, 2}, []int{1}, 0) },
		"empty text":       func() { Text("") },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestAdvanceClampsToKeyframes(t *testing.T) {
	m := Translate(3, 1, 1)
	m.Advance(10)
	if m.CurrentKeyframe() != 3 || !m.Complete() || m.KeyframesLeft() != 0 {
		t.Errorf("keyframe = %d, want 3 and complete", m.CurrentKeyframe())
	}
}

func TestNamesSorted(t *testing.T) {
	anims := NewAnimations(nil)
	anims.Add("b", New(0, Blink(1)))
	anims.Add("a", New(0, Blink(1)))
	names := anims.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names = %v, want [a b]", names)
	}
}
