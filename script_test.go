package thicket

import (
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/ecs"
)

func TestLoadScriptValid(t *testing.T) {
	r, err := LoadScript([]byte(`
steps:
  - {action: run, entity: hero, animation: walk}
  - {action: wait, frames: 3}
  - {action: screenshot, label: walking}
  - {action: stop-all, entity: hero}
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 4 {
		t.Errorf("steps = %d, want 4", len(r.steps))
	}
	if r.Done() {
		t.Error("new runner should not be done")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "steps: []"},
		{"malformed", "steps: [{action: run"},
		{"unknown action", "steps:\n  - {action: jump}"},
		{"run without animation", "steps:\n  - {action: run, entity: hero}"},
		{"force-stop without entity", "steps:\n  - {action: force-stop, animation: walk}"},
		{"stop-all without entity", "steps:\n  - {action: stop-all}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.yaml))
			if !errors.Is(err, ErrScript) {
				t.Errorf("err = %v, want ErrScript", err)
			}
		})
	}
}

// scriptScene returns a scene with an entity named hero holding a stopped
// walk animation.
func scriptScene(t *testing.T, script string) (*Scene, *ScriptRunner, *animation.Animations) {
	t.Helper()
	r, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	w := s.World()
	e := ecs.Spawn(w, ecs.TransformFromXY(0, 0), ecs.SpriteComponent)
	anims := animation.Single("walk", animation.New(time.Second, animation.Sprite([]int{0, 1, 2, 3}, 0)))
	ecs.SetAnimations(w.Entry(e), anims)
	s.SetName("hero", e)
	s.SetScriptRunner(r)
	return s, r, anims
}

func TestScriptRunnerAnimates(t *testing.T) {
	s, r, anims := scriptScene(t, `
steps:
  - {action: loop, entity: hero, animation: walk}
  - {action: stop, entity: hero, animation: walk}
`)
	if err := r.step(s); err != nil {
		t.Fatal(err)
	}
	if a, _ := anims.Get("walk"); a.Status() != animation.Looping {
		t.Errorf("status = %v, want looping", a.Status())
	}
	if err := r.step(s); err != nil {
		t.Fatal(err)
	}
	if a, _ := anims.Get("walk"); a.Status() != animation.Stopping {
		t.Errorf("status = %v, want stopping", a.Status())
	}
	if !r.Done() {
		t.Error("runner should be done after the last step")
	}
}

func TestScriptRunnerForceStop(t *testing.T) {
	s, r, anims := scriptScene(t, `
steps:
  - {action: run, entity: hero, animation: walk}
  - {action: force-stop, entity: hero, animation: walk}
`)
	for i := 0; i < 2; i++ {
		if err := r.step(s); err != nil {
			t.Fatal(err)
		}
	}
	if a, _ := anims.Get("walk"); a.Status() != animation.ForceStopped {
		t.Errorf("status = %v, want force-stopped", a.Status())
	}
}

func TestScriptRunnerWaitAndScreenshot(t *testing.T) {
	s, r, _ := scriptScene(t, `
steps:
  - {action: wait, frames: 3}
  - {action: screenshot, label: idle}
`)
	for i := 0; i < 3; i++ {
		if err := r.step(s); err != nil {
			t.Fatal(err)
		}
		if len(s.screenshotQueue) != 0 {
			t.Fatalf("screenshot queued during wait frame %d", i)
		}
	}
	if err := r.step(s); err != nil {
		t.Fatal(err)
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "idle" {
		t.Errorf("queue = %v, want [idle]", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("runner should be done")
	}
	if err := r.step(s); err != nil {
		t.Errorf("step after done = %v", err)
	}
}

func TestScriptRunnerUnknownTargets(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"entity", "steps:\n  - {action: run, entity: villain, animation: walk}"},
		{"animation", "steps:\n  - {action: run, entity: hero, animation: jump}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r, _ := scriptScene(t, tt.script)
			if err := r.step(s); !errors.Is(err, ErrScript) {
				t.Errorf("err = %v, want ErrScript", err)
			}
		})
	}
}

func TestScriptRunnerEntityWithoutAnimations(t *testing.T) {
	s, r, _ := scriptScene(t, "steps:\n  - {action: stop-all, entity: prop}")
	s.SetName("prop", ecs.Spawn(s.World(), ecs.TransformFromXY(0, 0)))
	if err := r.step(s); !errors.Is(err, ErrScript) {
		t.Errorf("err = %v, want ErrScript", err)
	}
}

func TestSceneUpdateRunsScript(t *testing.T) {
	s, r, anims := scriptScene(t, "steps:\n  - {action: run, entity: hero, animation: walk}")
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if !anims.AnimationRunning("walk") {
		t.Error("walk should be running after Update")
	}
	if !r.Done() {
		t.Error("runner should be done")
	}
}
