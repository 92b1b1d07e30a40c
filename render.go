package thicket

import (
	"cmp"
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/thicket/ecs"
	"github.com/phanxgames/thicket/gfx"
)

// WhitePixel is a 1x1 white image used for untextured entities.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(gfx.ColorWhite)
}

// Tileset is a grid of square tiles in one image, numbered row by row.
type Tileset struct {
	Image    *ebiten.Image
	TileSize int
}

// Tile returns the sub-image of tile n. Out of range tiles return nil.
func (t *Tileset) Tile(n int) *ebiten.Image {
	if t == nil || t.Image == nil || t.TileSize <= 0 || n < 0 {
		return nil
	}
	perRow := t.Image.Bounds().Dx() / t.TileSize
	rows := t.Image.Bounds().Dy() / t.TileSize
	if perRow == 0 || n >= perRow*rows {
		return nil
	}
	x := (n % perRow) * t.TileSize
	y := (n / perRow) * t.TileSize
	return t.Image.SubImage(image.Rect(x, y, x+t.TileSize, y+t.TileSize)).(*ebiten.Image)
}

// drawCommand is one entity to draw, sorted by layer then spawn order.
type drawCommand struct {
	entity donburi.Entity
	layer  int
	order  int
}

// Renderer draws every entity with a Transform that is neither Hidden nor
// under a Hidden ancestor: text for Text entities, a tile for Sprite
// entities when a Tileset is set, and a tinted square otherwise. Entities
// are drawn through the first Camera, if any.
type Renderer struct {
	scene *Scene

	Tileset *Tileset
	// Face is the font for Text components. Defaults to a 7x13 bitmap face.
	Face text.Face
	// RectSize is the side of the square drawn for untextured entities.
	RectSize float64

	query    *donburi.Query
	cameras  *donburi.Query
	commands []drawCommand
}

// NewRenderer creates the default renderer of s.
func NewRenderer(s *Scene) *Renderer {
	visible := filter.And(
		filter.Contains(ecs.TransformComponent),
		filter.Not(filter.Contains(ecs.HiddenComponent)),
		filter.Not(filter.Contains(ecs.HiddenPropagatedComponent)),
	)
	return &Renderer{
		scene:    s,
		Face:     text.NewGoXFace(basicfont.Face7x13),
		RectSize: 16,
		query:    donburi.NewQuery(visible),
		cameras:  donburi.NewQuery(filter.Contains(ecs.CameraComponent)),
	}
}

// Draw renders the world onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	w := r.scene.world

	var cam *ecs.Camera
	if entry, ok := r.cameras.First(w); ok {
		cam = ecs.CameraComponent.Get(entry)
	}

	r.commands = r.commands[:0]
	r.query.Each(w, func(entry *donburi.Entry) {
		t := ecs.TransformComponent.Get(entry)
		r.commands = append(r.commands, drawCommand{
			entity: entry.Entity(),
			layer:  t.GlobalTranslation().Layer,
			order:  len(r.commands),
		})
	})
	slices.SortStableFunc(r.commands, func(a, b drawCommand) int {
		return cmp.Compare(a.layer, b.layer)
	})

	for _, c := range r.commands {
		r.drawEntity(screen, w.Entry(c.entity), cam)
	}
}

func (r *Renderer) drawEntity(screen *ebiten.Image, entry *donburi.Entry, cam *ecs.Camera) {
	t := ecs.TransformComponent.Get(entry)
	pos := t.GlobalTranslation()
	sx, sy, zoom := pos.X, pos.Y, 1.0
	if cam != nil {
		sx, sy = cam.WorldToScreen(pos.X, pos.Y)
		zoom = cam.Zoom
	}

	tint := gfx.ColorWhite
	if entry.HasComponent(ecs.MaterialComponent) {
		tint = ecs.MaterialComponent.Get(entry).Color()
	}

	if entry.HasComponent(ecs.TextComponent) {
		op := &text.DrawOptions{}
		op.GeoM.Scale(t.Scale()*zoom, t.Scale()*zoom)
		op.GeoM.Rotate(t.GlobalAngle())
		op.GeoM.Translate(sx, sy)
		op.ColorScale.ScaleWithColor(tint)
		text.Draw(screen, ecs.TextComponent.Get(entry).Content, r.Face, op)
		return
	}

	img := WhitePixel
	size := r.RectSize
	if entry.HasComponent(ecs.SpriteComponent) {
		if tile := r.Tileset.Tile(ecs.SpriteComponent.Get(entry).Tile); tile != nil {
			img = tile
			size = float64(r.Tileset.TileSize)
		}
	}
	bw := float64(img.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-bw/2, -bw/2)
	op.GeoM.Scale(size/bw*t.Scale()*zoom, size/bw*t.Scale()*zoom)
	op.GeoM.Rotate(t.GlobalAngle())
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(tint)
	screen.DrawImage(img, op)
}
