package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/gfx"
)

// Parent links a child entity to its parent. It is a back-reference, not
// ownership.
type Parent struct {
	Entity donburi.Entity
}

// Children lists a parent's children. HierarchySystem keeps it in sync with
// the Parent components; do not edit it directly.
type Children struct {
	Entities []donburi.Entity
}

// Sprite selects a tile of the entity's tileset.
type Sprite struct {
	Tile int
}

// SetTile shows tile n.
func (s *Sprite) SetTile(n int) { s.Tile = n }

// Material is the tint an entity is drawn with.
type Material struct {
	color gfx.Color
}

// NewMaterial creates a material with color c.
func NewMaterial(c gfx.Color) Material { return Material{color: c} }

// Color returns the material color.
func (m *Material) Color() gfx.Color { return m.color }

// SetColor sets the material color.
func (m *Material) SetColor(c gfx.Color) { m.color = c }

// Text is a string drawn at the entity's position.
type Text struct {
	Content string
}

// SetText replaces the displayed text.
func (t *Text) SetText(s string) { t.Content = s }

// Hidden marks an entity the renderer must skip.
type Hidden struct{}

// HiddenPropagated marks an entity skipped because an ancestor is Hidden.
// HidePropagationSystem maintains it.
type HiddenPropagated struct{}

var (
	TransformComponent        = donburi.NewComponentType[Transform]()
	ParentComponent           = donburi.NewComponentType[Parent]()
	ChildrenComponent         = donburi.NewComponentType[Children]()
	SpriteComponent           = donburi.NewComponentType[Sprite]()
	MaterialComponent         = donburi.NewComponentType[Material]()
	TextComponent             = donburi.NewComponentType[Text]()
	HiddenComponent           = donburi.NewComponentType[Hidden]()
	HiddenPropagatedComponent = donburi.NewComponentType[HiddenPropagated]()
	CameraComponent           = donburi.NewComponentType[Camera]()
	AnimationsComponent       = donburi.NewComponentType[animation.Animations]()
)

// Animations returns the entity's animation collection, or nil if it has
// none.
func Animations(entry *donburi.Entry) *animation.Animations {
	if !entry.HasComponent(AnimationsComponent) {
		return nil
	}
	return AnimationsComponent.Get(entry)
}

// SetAnimations attaches anims to the entity, replacing any previous
// collection.
func SetAnimations(entry *donburi.Entry, anims *animation.Animations) {
	if !entry.HasComponent(AnimationsComponent) {
		entry.AddComponent(AnimationsComponent)
	}
	AnimationsComponent.SetValue(entry, *anims)
}

// IsHidden reports whether the entity carries the Hidden marker.
func IsHidden(entry *donburi.Entry) bool {
	return entry.HasComponent(HiddenComponent)
}

// IsVisible reports whether neither the entity nor any of its ancestors is
// hidden, as of the last HidePropagationSystem run.
func IsVisible(entry *donburi.Entry) bool {
	return !entry.HasComponent(HiddenComponent) && !entry.HasComponent(HiddenPropagatedComponent)
}
