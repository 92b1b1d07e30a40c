// Package thicket is a keyframe animation and transform hierarchy runtime for
// 2D games built on [Ebitengine] and [Donburi].
//
// Entities carry plain components (see package ecs) and a collection of
// named animations (see package animation). Every frame a [Scene] advances
// its timers, plays animations, runs gameplay systems, then settles the
// transform hierarchy so children follow their parents.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := thicket.NewScene()
//	hero := ecs.Spawn(scene.World(), ecs.TransformFromXY(100, 100), ecs.AnimationsComponent)
//	ecs.SetAnimations(scene.World().Entry(hero), animation.Single("hop",
//		animation.NewLooping(500*time.Millisecond, animation.Translate(10, 0, -20))))
//	thicket.Run(scene, thicket.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *thicket.Scene }
//
//	func (g *Game) Update() error         { return g.scene.Update() }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// Headless code and tests drive the scene with [Scene.Step] and an explicit
// frame delta.
//
// # Hierarchies
//
// Attach an entity to a parent with ecs.SpawnChild or ecs.SetParent. A
// child's global translation is its parent's global translation plus its
// own local translation, and its global angle is the sum of the angles up
// the chain. Removing a parent removes its children on the next frame.
//
// # Animations
//
// Animations are defined in code or loaded from YAML with
// animation.LoadFile, and can be hot reloaded through animation.Watcher.
// Play them with RunAnimation or LoopAnimation and stop them with
// StopAnimation. A forced stop jumps every modifier to its final state.
//
// For continuous gameplay motion that is not keyframed, use the [gween]
// based [TweenPosition], [TweenScale], [TweenRotation], [TweenColor] and
// [TweenAlpha].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package thicket
