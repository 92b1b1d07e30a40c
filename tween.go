package thicket

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/thicket/ecs"
	"github.com/phanxgames/thicket/gfx"
)

// TweenGroup animates up to 4 values of an entity's components at once.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenColor, TweenAlpha) and call Update(dt) each frame.
// Values are written through the component setters, so transforms are
// marked dirty and their children follow. If the entity is removed, the
// group stops immediately.
//
// Tweens are for continuous gameplay motion; keyframed effects belong in
// animations.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	world  donburi.World
	entity donburi.Entity
	apply  func(entry *donburi.Entry, vals [4]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// entity.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.world.Valid(g.entity) {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.world.Entry(g.entity), vals)
}

func transformOf(w donburi.World, e donburi.Entity) *ecs.Transform {
	if !w.Valid(e) {
		return nil
	}
	entry := w.Entry(e)
	if !entry.HasComponent(ecs.TransformComponent) {
		return nil
	}
	return ecs.TransformComponent.Get(entry)
}

func materialOf(w donburi.World, e donburi.Entity) *ecs.Material {
	if !w.Valid(e) {
		return nil
	}
	entry := w.Entry(e)
	if !entry.HasComponent(ecs.MaterialComponent) {
		return nil
	}
	return ecs.MaterialComponent.Get(entry)
}

func withTransform(fn func(t *ecs.Transform, vals [4]float64)) func(*donburi.Entry, [4]float64) {
	return func(entry *donburi.Entry, vals [4]float64) {
		if entry.HasComponent(ecs.TransformComponent) {
			fn(ecs.TransformComponent.Get(entry), vals)
		}
	}
}

func withMaterial(fn func(m *ecs.Material, vals [4]float64)) func(*donburi.Entry, [4]float64) {
	return func(entry *donburi.Entry, vals [4]float64) {
		if entry.HasComponent(ecs.MaterialComponent) {
			fn(ecs.MaterialComponent.Get(entry), vals)
		}
	}
}

// TweenPosition creates a TweenGroup that moves the entity's local
// translation to (toX, toY) over duration seconds.
func TweenPosition(w donburi.World, e donburi.Entity, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	var from gfx.Coordinates
	if t := transformOf(w, e); t != nil {
		from = t.Translation()
	}
	g := &TweenGroup{count: 2, world: w, entity: e}
	g.tweens[0] = gween.New(float32(from.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(toY), duration, fn)
	g.apply = withTransform(func(t *ecs.Transform, v [4]float64) { t.SetTranslation(v[0], v[1]) })
	return g
}

// TweenScale creates a TweenGroup that animates the entity's scale.
func TweenScale(w donburi.World, e donburi.Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := 1.0
	if t := transformOf(w, e); t != nil {
		from = t.Scale()
	}
	g := &TweenGroup{count: 1, world: w, entity: e}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.apply = withTransform(func(t *ecs.Transform, v [4]float64) { t.SetScale(v[0]) })
	return g
}

// TweenRotation creates a TweenGroup that animates the entity's local angle
// in radians.
func TweenRotation(w donburi.World, e donburi.Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	var from float64
	if t := transformOf(w, e); t != nil {
		from = t.Angle()
	}
	g := &TweenGroup{count: 1, world: w, entity: e}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.apply = withTransform(func(t *ecs.Transform, v [4]float64) { t.SetAngle(v[0]) })
	return g
}

// TweenColor creates a TweenGroup that animates all four channels of the
// entity's material color.
func TweenColor(w donburi.World, e donburi.Entity, to gfx.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := gfx.ColorWhite
	if m := materialOf(w, e); m != nil {
		from = m.Color()
	}
	g := &TweenGroup{count: 4, world: w, entity: e}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = withMaterial(func(m *ecs.Material, v [4]float64) {
		m.SetColor(gfx.Color{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: clamp01(v[3])})
	})
	return g
}

// TweenAlpha creates a TweenGroup that animates the alpha of the entity's
// material color.
func TweenAlpha(w donburi.World, e donburi.Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := 1.0
	if m := materialOf(w, e); m != nil {
		from = m.Color().A
	}
	g := &TweenGroup{count: 1, world: w, entity: e}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.apply = withMaterial(func(m *ecs.Material, v [4]float64) {
		c := m.Color()
		c.A = clamp01(v[0])
		m.SetColor(c)
	})
	return g
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
