package thicket

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/thicket/ecs"
)

// ErrScript is wrapped by every script loading and execution error.
var ErrScript = errors.New("thicket: script")

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action    string `yaml:"action"`
	Entity    string `yaml:"entity,omitempty"`
	Animation string `yaml:"animation,omitempty"`
	Label     string `yaml:"label,omitempty"`
	Frames    int    `yaml:"frames,omitempty"`
}

// scriptFile is the top-level YAML structure of a script.
type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner plays a scripted sequence of animation commands, waits and
// screenshots across frames, for demos and automated visual checks.
// Attach it to a Scene via SetScriptRunner.
//
//	steps:
//	  - {action: run, entity: hero, animation: walk}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: walking}
//	  - {action: force-stop, entity: hero, animation: walk}
//
// Entities are looked up by the names registered with Scene.SetName. The
// stop-all action takes no animation.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script scriptFile
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrScript, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrScript)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "run", "loop", "stop", "force-stop":
			if st.Entity == "" || st.Animation == "" {
				return nil, fmt.Errorf("%w: step %d: %s needs entity and animation", ErrScript, i, st.Action)
			}
		case "stop-all":
			if st.Entity == "" {
				return nil, fmt.Errorf("%w: step %d: stop-all needs entity", ErrScript, i)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrScript, i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the scene. The runner's step
// method is called from Scene.Update before the frame is simulated.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.runner = runner
}

// Done reports whether all steps of the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *ScriptRunner) step(s *Scene) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		err = r.animate(s, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return err
}

func (r *ScriptRunner) animate(s *Scene, st scriptStep) error {
	e, ok := s.Lookup(st.Entity)
	if !ok {
		return fmt.Errorf("%w: step %d: no entity %q", ErrScript, r.cursor-1, st.Entity)
	}
	anims := ecs.Animations(s.world.Entry(e))
	if anims == nil {
		return fmt.Errorf("%w: step %d: entity %q has no animations", ErrScript, r.cursor-1, st.Entity)
	}
	if st.Action != "stop-all" {
		if _, ok := anims.Get(st.Animation); !ok {
			return fmt.Errorf("%w: step %d: entity %q has no animation %q", ErrScript, r.cursor-1, st.Entity, st.Animation)
		}
	}

	switch st.Action {
	case "run":
		anims.RunAnimation(st.Animation)
	case "loop":
		anims.LoopAnimation(st.Animation)
	case "stop":
		anims.StopAnimation(st.Animation, false)
	case "force-stop":
		anims.StopAnimation(st.Animation, true)
	case "stop-all":
		anims.StopAllAnimations(true)
	}
	return nil
}
