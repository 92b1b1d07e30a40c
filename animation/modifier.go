package animation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/phanxgames/thicket/gfx"
)

// Kind identifies a modifier's payload type.
type Kind uint8

const (
	KindTransform Kind = iota
	KindSprite
	KindColor
	KindBlink
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindSprite:
		return "sprite"
	case KindColor:
		return "color"
	case KindBlink:
		return "blink"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ModifierType is the typed payload of a Modifier. It is implemented by
// TransformModifier, SpriteModifier, ColorModifier, BlinkModifier and
// TextModifier.
type ModifierType interface {
	Kind() Kind
}

// TransformModifier moves, scales and rotates over one pass. Nil fields are
// left untouched.
type TransformModifier struct {
	Vector   *gfx.Vec2
	Scale    *float64
	Rotation *float64
}

// SpriteModifier steps through tile numbers. A non-looping pass ends on
// EndTile. When Variant is set it alternates with Tiles every pass.
type SpriteModifier struct {
	Tiles   []int
	Variant []int
	EndTile int
}

// ColorModifier interpolates the material color toward Target.
type ColorModifier struct {
	Target gfx.Color
}

// BlinkModifier toggles visibility every keyframe and ends visible.
type BlinkModifier struct{}

// TextModifier reveals Content one character per keyframe.
type TextModifier struct {
	Content string
}

func (TransformModifier) Kind() Kind { return KindTransform }
func (SpriteModifier) Kind() Kind    { return KindSprite }
func (ColorModifier) Kind() Kind     { return KindColor }
func (BlinkModifier) Kind() Kind     { return KindBlink }
func (TextModifier) Kind() Kind      { return KindText }

// transformStep is the per-keyframe share of a TransformModifier.
type transformStep struct {
	vector   *gfx.Vec2
	scale    *float64
	rotation *float64
}

// colorStep is the per-keyframe share of a ColorModifier, computed from the
// baseline color once it is known.
type colorStep struct {
	r, g, b int
	a       float64
}

// Modifier is one typed, keyframe-driven change inside an Animation.
type Modifier struct {
	keyframes        int
	current          int
	typ              ModifierType
	keyframeDuration time.Duration

	transform transformStep
	color     colorStep
	baseline  *gfx.Color
	text      []rune

	// sprite cursor; -1 when idle
	nextTile int
	variant  bool
}

func newModifier(keyframes int, typ ModifierType) *Modifier {
	if keyframes <= 0 {
		panic(fmt.Sprintf("animation: %s modifier needs at least one keyframe, got %d", typ.Kind(), keyframes))
	}
	return &Modifier{keyframes: keyframes, typ: typ, nextTile: -1}
}

// Ptr returns a pointer to v. Handy for the optional TransformModifier fields.
func Ptr[T any](v T) *T { return &v }

// Transform creates a transform modifier. It panics if keyframes is not
// positive.
func Transform(keyframes int, vector *gfx.Vec2, scale, rotation *float64) *Modifier {
	return newModifier(keyframes, TransformModifier{Vector: vector, Scale: scale, Rotation: rotation})
}

// Translate creates a transform modifier that only moves by (x, y).
func Translate(keyframes int, x, y float64) *Modifier {
	return Transform(keyframes, &gfx.Vec2{X: x, Y: y}, nil, nil)
}

// Sprite creates a sprite modifier. The last tile is the rest frame, so the
// keyframe count is len(tiles)-1. It panics if tiles has fewer than two
// entries.
func Sprite(tiles []int, endTile int) *Modifier {
	if len(tiles) == 0 {
		panic("animation: sprite modifier needs tile numbers")
	}
	return newModifier(len(tiles)-1, SpriteModifier{Tiles: tiles, EndTile: endTile})
}

// SpriteWithVariant creates a sprite modifier alternating between tiles and
// variant on every pass. It panics if the two sequences differ in length.
func SpriteWithVariant(tiles, variant []int, endTile int) *Modifier {
	if len(tiles) == 0 {
		panic("animation: sprite modifier needs tile numbers")
	}
	if len(variant) != len(tiles) {
		panic(fmt.Sprintf("animation: sprite variant has %d tiles, want %d", len(variant), len(tiles)))
	}
	return newModifier(len(tiles)-1, SpriteModifier{Tiles: tiles, Variant: variant, EndTile: endTile})
}

// Color creates a color modifier reaching target after keyframes steps.
func Color(keyframes int, target gfx.Color) *Modifier {
	return newModifier(keyframes, ColorModifier{Target: target})
}

// Blink creates a modifier toggling visibility 2*blinks times.
func Blink(blinks int) *Modifier {
	return newModifier(blinks*2, BlinkModifier{})
}

// Text creates a modifier revealing content one character per keyframe.
func Text(content string) *Modifier {
	return newModifier(utf8.RuneCountInString(content), TextModifier{Content: content})
}

// Kind returns the payload kind.
func (m *Modifier) Kind() Kind { return m.typ.Kind() }

// Type returns the typed payload.
func (m *Modifier) Type() ModifierType { return m.typ }

// Keyframes returns the number of keyframes in one pass.
func (m *Modifier) Keyframes() int { return m.keyframes }

// CurrentKeyframe returns the keyframes already applied in this pass.
func (m *Modifier) CurrentKeyframe() int { return m.current }

// KeyframesLeft returns the keyframes remaining in this pass.
func (m *Modifier) KeyframesLeft() int { return m.keyframes - m.current }

// Complete reports whether this pass reached its last keyframe.
func (m *Modifier) Complete() bool { return m.current >= m.keyframes }

// KeyframeDuration returns the duration of a single keyframe, or zero when
// the owning animation has no duration.
func (m *Modifier) KeyframeDuration() time.Duration { return m.keyframeDuration }

// Advance moves the keyframe cursor by n, never past the end of the pass.
// Completing the pass clears the sprite cursor.
func (m *Modifier) Advance(n int) {
	m.current = min(m.current+max(n, 0), m.keyframes)
	if m.Complete() {
		m.nextTile = -1
	}
}

// Reset rewinds the modifier to the start of a pass.
func (m *Modifier) Reset() {
	m.current = 0
	m.nextTile = -1
}

// willBeLastKeyframe reports whether advancing by added reaches the end.
func (m *Modifier) willBeLastKeyframe(added int) bool {
	return m.current+added >= m.keyframes
}

func (m *Modifier) precompute() {
	switch typ := m.typ.(type) {
	case TransformModifier:
		n := float64(m.keyframes)
		m.transform = transformStep{}
		if typ.Vector != nil {
			m.transform.vector = &gfx.Vec2{X: typ.Vector.X / n, Y: typ.Vector.Y / n}
		}
		if typ.Scale != nil {
			m.transform.scale = Ptr(*typ.Scale / n)
		}
		if typ.Rotation != nil {
			m.transform.rotation = Ptr(*typ.Rotation / n)
		}
	case TextModifier:
		m.text = []rune(typ.Content)
	}
}

// computeColorStep derives the per-keyframe color delta from the baseline.
// RGB steps use integer division; the final keyframe snaps to the target.
func (m *Modifier) computeColorStep(from, target gfx.Color) {
	n := m.keyframes
	m.color = colorStep{
		r: (int(target.R) - int(from.R)) / n,
		g: (int(target.G) - int(from.G)) / n,
		b: (int(target.B) - int(from.B)) / n,
		a: (target.A - from.A) / float64(n),
	}
}
