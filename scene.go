package thicket

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/thicket/ecs"
	"github.com/phanxgames/thicket/gfx"
	"github.com/phanxgames/thicket/timer"
)

// Scene is the top-level object that owns the ECS world, the timer sets and
// the ordered list of systems run once per frame.
type Scene struct {
	world donburi.World
	debug bool

	// ClearColor fills the screen before drawing. Zero alpha leaves the
	// screen untouched.
	ClearColor gfx.Color

	timers         *timer.Timers[string]
	modifierTimers *timer.Timers[ecs.ModifierKey]

	clocks     []ecs.System
	animations *ecs.AnimationSystem
	systems    []ecs.System
	hierarchy  *ecs.HierarchySystem
	hide       *ecs.HidePropagationSystem
	dirtyChild *ecs.DirtyChildSystem
	dirty      *ecs.DirtyTransformSystem
	cameras    *ecs.CameraSystem

	names map[string]donburi.Entity

	updateFunc func() error
	drawFunc   func(screen *ebiten.Image)
	renderer   *Renderer
	runner     *ScriptRunner
	frame      uint64

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates a scene with an empty world.
func NewScene() *Scene {
	timers := timer.New[string]()
	modifierTimers := timer.New[ecs.ModifierKey]()
	s := &Scene{
		world:          donburi.NewWorld(),
		timers:         timers,
		modifierTimers: modifierTimers,
		animations:     ecs.NewAnimationSystem(modifierTimers),
		hierarchy:      ecs.NewHierarchySystem(),
		hide:           ecs.NewHidePropagationSystem(),
		dirtyChild:     ecs.NewDirtyChildSystem(),
		dirty:          ecs.NewDirtyTransformSystem(),
		cameras:        ecs.NewCameraSystem(),
		names:          make(map[string]donburi.Entity),
		ScreenshotDir:  "screenshots",
	}
	s.clocks = []ecs.System{
		ecs.TimerSystem[string]{Timers: timers},
		ecs.TimerSystem[ecs.ModifierKey]{Timers: modifierTimers},
	}
	s.renderer = NewRenderer(s)
	return s
}

// World returns the scene's ECS world.
func (s *Scene) World() donburi.World {
	return s.world
}

// Timers returns the string-keyed timers available to gameplay code. They
// advance at the start of every Step.
func (s *Scene) Timers() *timer.Timers[string] {
	return s.timers
}

// ModifierTimers returns the per-modifier timers driving animations.
func (s *Scene) ModifierTimers() *timer.Timers[ecs.ModifierKey] {
	return s.modifierTimers
}

// Renderer returns the scene's default renderer.
func (s *Scene) Renderer() *Renderer {
	return s.renderer
}

// AddSystem appends a gameplay system. Gameplay systems run after
// animations and before transform propagation, in the order added.
func (s *Scene) AddSystem(sys ecs.System) {
	s.systems = append(s.systems, sys)
}

// SetUpdateFunc sets a callback run once per Update before Step.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDrawFunc replaces the default renderer. The callback receives the
// screen after it was cleared with ClearColor.
func (s *Scene) SetDrawFunc(fn func(screen *ebiten.Image)) {
	s.drawFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// system timings and hierarchy warnings are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetName registers e under name so scripts and gameplay code can find it.
func (s *Scene) SetName(name string, e donburi.Entity) {
	s.names[name] = e
}

// Lookup returns the entity registered under name, if it still exists.
func (s *Scene) Lookup(name string) (donburi.Entity, bool) {
	e, ok := s.names[name]
	if !ok || !s.world.Valid(e) {
		return e, false
	}
	return e, true
}

// Frame returns the number of completed Steps.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Step advances the simulation by dt. Timers advance first, then animations,
// gameplay systems, hierarchy sync, hidden subtrees, transform propagation
// and cameras.
// Queued events are dispatched last.
func (s *Scene) Step(dt time.Duration) error {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	for _, sys := range s.clocks {
		if err := sys.Update(s.world, dt); err != nil {
			return fmt.Errorf("timers: %w", err)
		}
	}
	if err := s.animations.Update(s.world, dt); err != nil {
		return fmt.Errorf("animations: %w", err)
	}

	if s.debug {
		stats.animationTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, sys := range s.systems {
		if err := sys.Update(s.world, dt); err != nil {
			return err
		}
	}

	if s.debug {
		stats.systemTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, sys := range []ecs.System{s.hierarchy, s.hide, s.dirtyChild, s.dirty} {
		if err := sys.Update(s.world, dt); err != nil {
			return fmt.Errorf("transforms: %w", err)
		}
	}

	if s.debug {
		stats.propagateTime = time.Since(t0)
	}

	if err := s.cameras.Update(s.world, dt); err != nil {
		return fmt.Errorf("cameras: %w", err)
	}
	events.ProcessAllEvents(s.world)
	s.frame++

	if s.debug {
		stats.entityCount = s.world.Len()
		stats.timerCount = s.timers.Len() + s.modifierTimers.Len()
		s.debugLog(stats)
		s.debugCheckHierarchy()
	}
	return nil
}

// Update runs the script runner, then the update callback, then one Step of
// 1/TPS seconds. Call it from ebiten.Game.Update.
func (s *Scene) Update() error {
	if s.runner != nil {
		if err := s.runner.step(s); err != nil {
			return err
		}
	}
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	return s.Step(time.Second / time.Duration(ebiten.TPS()))
}

// Draw clears the screen and renders the world, then captures queued
// screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor)
	}
	if s.drawFunc != nil {
		s.drawFunc(screen)
	} else {
		s.renderer.Draw(screen)
	}
	s.flushScreenshots(screen)
}
