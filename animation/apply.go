package animation

import (
	"math"

	"github.com/phanxgames/thicket/gfx"
)

// TransformTarget is the component a transform modifier drives.
type TransformTarget interface {
	AppendTranslation(x, y float64)
	Scale() float64
	SetScale(s float64)
	AppendAngle(angle float64)
}

// SpriteTarget is the component a sprite modifier drives.
type SpriteTarget interface {
	SetTile(n int)
}

// ColorTarget is the component a color modifier drives.
type ColorTarget interface {
	Color() gfx.Color
	SetColor(c gfx.Color)
}

// TextTarget is the component a text modifier drives.
type TextTarget interface {
	SetText(s string)
}

// Targets carries the components co-located with an animated entity. Nil
// targets make the matching modifiers no-ops.
type Targets struct {
	Transform TransformTarget
	Sprite    SpriteTarget
	Color     ColorTarget
	Text      TextTarget
	// Hidden reports whether the entity currently carries the hidden marker.
	Hidden bool
}

// Visibility is the hidden-marker change requested by a blink modifier.
// The marker is a structural change, so the caller applies it.
type Visibility uint8

const (
	VisibilityUnchanged Visibility = iota
	VisibilityShow                 // remove the hidden marker
	VisibilityHide                 // add the hidden marker
)

// Apply performs the modifier's typed update for count elapsed keyframes.
// It does not move the keyframe cursor; call Advance afterwards. A
// ForceStopped status applies the modifier's terminal update instead.
func (m *Modifier) Apply(status Status, count int, t Targets) Visibility {
	switch typ := m.typ.(type) {
	case TransformModifier:
		m.applyTransform(count, t.Transform)
	case SpriteModifier:
		m.applySprite(status, count, typ, t.Sprite)
	case ColorModifier:
		m.applyColor(status, count, typ, t.Color)
	case BlinkModifier:
		return m.applyBlink(status, count, t.Hidden)
	case TextModifier:
		m.applyText(status, count, t.Text)
	}
	return VisibilityUnchanged
}

func (m *Modifier) applyTransform(count int, t TransformTarget) {
	if t == nil {
		return
	}
	step := m.transform
	for i := 0; i < count; i++ {
		if step.vector != nil {
			t.AppendTranslation(step.vector.X, step.vector.Y)
		}
		if step.scale != nil {
			t.SetScale(t.Scale() + *step.scale)
		}
		if step.rotation != nil {
			t.AppendAngle(*step.rotation)
		}
	}
}

// applySprite shows one tile per elapsed keyframe (at least one per call).
// Outside of a loop the last keyframe snaps to the end tile.
func (m *Modifier) applySprite(status Status, count int, typ SpriteModifier, t SpriteTarget) {
	if t == nil {
		return
	}
	if status == ForceStopped {
		t.SetTile(typ.EndTile)
		m.nextTile = -1
		return
	}

	steps := max(count, 1)
	for i := 0; i < steps; i++ {
		if m.nextTile < 0 {
			m.nextTile = 0
		}
		if m.current+i >= m.keyframes-1 && status != Looping {
			t.SetTile(typ.EndTile)
			m.nextTile = -1
			m.variant = !m.variant
			return
		}

		tiles := typ.Tiles
		if m.variant && len(typ.Variant) > 0 {
			tiles = typ.Variant
		}
		t.SetTile(tiles[min(m.nextTile, len(tiles)-1)])

		if m.nextTile >= m.keyframes {
			m.nextTile = 0
			m.variant = !m.variant
		} else {
			m.nextTile++
		}
	}
}

// applyColor steps from the baseline captured when the pass started toward
// the target. The keyframe that completes the pass lands exactly on target.
func (m *Modifier) applyColor(status Status, count int, typ ColorModifier, t ColorTarget) {
	if t == nil {
		return
	}
	if status == ForceStopped {
		t.SetColor(typ.Target)
		return
	}

	if m.current == 0 {
		if m.baseline == nil {
			base := t.Color()
			m.baseline = &base
			m.computeColorStep(base, typ.Target)
		}
		t.SetColor(*m.baseline)
	}

	c := t.Color()
	for i := 0; i < count; i++ {
		if m.willBeLastKeyframe(i + 1) {
			c = typ.Target
			continue
		}
		c = gfx.Color{
			R: clampChannel(int(c.R) + m.color.r),
			G: clampChannel(int(c.G) + m.color.g),
			B: clampChannel(int(c.B) + m.color.b),
			A: math.Max(0, math.Min(1, c.A+m.color.a)),
		}
	}
	t.SetColor(c)
}

func clampChannel(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

func (m *Modifier) applyBlink(status Status, count int, hidden bool) Visibility {
	if status == ForceStopped {
		if hidden {
			return VisibilityShow
		}
		return VisibilityUnchanged
	}
	if count <= 0 {
		return VisibilityUnchanged
	}
	if m.willBeLastKeyframe(count) || hidden {
		return VisibilityShow
	}
	return VisibilityHide
}

// applyText reveals one rune per elapsed keyframe.
func (m *Modifier) applyText(status Status, count int, t TextTarget) {
	if t == nil {
		return
	}
	if status == ForceStopped {
		t.SetText(string(m.text))
		return
	}
	cursor := min(m.current+count, len(m.text))
	t.SetText(string(m.text[:cursor]))
}
