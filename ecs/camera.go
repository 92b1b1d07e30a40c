package ecs

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/thicket/gfx"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the view into the world: the world position it centers on, zoom
// and the screen rectangle it renders into.
type Camera struct {
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom     float64
	Viewport gfx.Rect

	following     bool
	followTarget  donburi.Entity
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	bounds *gfx.Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera centered on the origin.
func NewCamera(viewport gfx.Rect) Camera {
	return Camera{Zoom: 1, Viewport: viewport}
}

// Follow makes the camera track the global translation of target. A lerp of
// 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(target donburi.Entity, offsetX, offsetY, lerp float64) {
	c.following = true
	c.followTarget = target
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.following = false
}

// ScrollTo animates the camera to the given world position.
func (c *Camera) ScrollTo(x, y float64, d time.Duration, easeFn ease.TweenFunc) {
	secs := float32(d.Seconds())
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), secs, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), secs, easeFn),
	}
}

// Scrolling reports whether a ScrollTo is in progress.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// SetBounds keeps the visible area inside bounds.
func (c *Camera) SetBounds(bounds gfx.Rect) {
	c.bounds = &bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.bounds = nil
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return cx + (wx-c.X)*c.Zoom, cy + (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return c.X + (sx-cx)/c.Zoom, c.Y + (sy-cy)/c.Zoom
}

// VisibleBounds returns the world-space rectangle the camera shows.
func (c *Camera) VisibleBounds() gfx.Rect {
	w := c.Viewport.Width / c.Zoom
	h := c.Viewport.Height / c.Zoom
	return gfx.Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func (c *Camera) update(w donburi.World, dt time.Duration) {
	if c.following {
		if target, ok := globalTranslation(w, c.followTarget); ok {
			targetX := target.X + c.followOffsetX
			targetY := target.Y + c.followOffsetY
			c.X += (targetX - c.X) * c.followLerp
			c.Y += (targetY - c.Y) * c.followLerp
		} else {
			c.following = false
		}
	}

	if c.scrollTween != nil {
		secs := float32(dt.Seconds())
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(secs)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(secs)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.bounds != nil {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within
// the bounds. Bounds smaller than the view center the camera.
func (c *Camera) clampToBounds() {
	b := c.bounds
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := b.X + halfW
	maxX := b.X + b.Width - halfW
	minY := b.Y + halfH
	maxY := b.Y + b.Height - halfH

	if minX > maxX {
		c.X = b.X + b.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = b.Y + b.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

func globalTranslation(w donburi.World, e donburi.Entity) (gfx.Coordinates, bool) {
	if !w.Valid(e) {
		return gfx.Coordinates{}, false
	}
	entry := w.Entry(e)
	if !entry.HasComponent(TransformComponent) {
		return gfx.Coordinates{}, false
	}
	return TransformComponent.Get(entry).GlobalTranslation(), true
}

// CameraSystem moves every camera after transforms were propagated.
type CameraSystem struct {
	query *donburi.Query
}

// NewCameraSystem creates the system.
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{query: donburi.NewQuery(filter.Contains(CameraComponent))}
}

// Update advances follow, scroll and bounds clamping of every camera.
func (s *CameraSystem) Update(w donburi.World, dt time.Duration) error {
	s.query.Each(w, func(entry *donburi.Entry) {
		CameraComponent.Get(entry).update(w, dt)
	})
	return nil
}
