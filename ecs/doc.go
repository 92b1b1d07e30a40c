// Package ecs binds thicket's animation and transform model to a [Donburi]
// world.
//
// Entities carry plain components ([Transform], [Parent], [Sprite],
// [Material], [Text], [Hidden], [HiddenPropagated], [Camera] and an animation collection) and
// are driven by systems that run once per frame in this order:
//
//	TimerSystem            advance the game and modifier timers
//	AnimationSystem        apply elapsed keyframes of every playing animation
//	(gameplay systems)
//	HierarchySystem        rebuild Children from Parent links
//	HidePropagationSystem  hide the subtrees of Hidden entities
//	DirtyChildSystem       settle entities attached to a new parent
//	DirtyTransformSystem   push parent changes down the hierarchy
//	CameraSystem           follow, scroll and clamp cameras
//
// The root thicket package wires this order up in its Scene. Use the
// helpers [Spawn], [SpawnChild], [SetParent] and [RemoveParent] to build
// hierarchies, and subscribe to [AnimationStoppedEvent] to react to
// animations ending:
//
//	ecs.AnimationStoppedEvent.Subscribe(world, func(w donburi.World, e ecs.AnimationStopped) {
//		log.Printf("%s finished", e.Animation)
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
