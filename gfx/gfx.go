// Package gfx holds the small value types shared by every thicket package:
// colors, vectors, layered coordinates and rectangles.
package gfx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidHex is returned by ParseHex for malformed color codes.
var ErrInvalidHex = errors.New("gfx: invalid hex color")

// Color is an RGB color with 8-bit channels and a floating alpha in [0, 1].
// Not premultiplied.
type Color struct {
	R, G, B uint8
	A       float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{255, 255, 255, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// NewColor creates a color. It panics if a is outside [0, 1].
func NewColor(r, g, b uint8, a float64) Color {
	if a < 0 || a > 1 || math.IsNaN(a) {
		panic(fmt.Sprintf("gfx: alpha %v must be between 0.0 and 1.0", a))
	}
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHex(code string) (Color, error) {
	if len(code) > 0 && code[0] == '#' {
		code = code[1:]
	}
	if len(code) != 6 && len(code) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, code)
	}
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, code)
	}
	if len(code) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: float64(uint8(v)) / 255,
	}, nil
}

// MustHex is like ParseHex but panics on error.
func MustHex(code string) Color {
	c, err := ParseHex(code)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA implements image/color.Color. The returned values are premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := math.Max(0, math.Min(1, c.A))
	a = uint32(alpha*0xffff + 0.5)
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return r, g, b, a
}

// String returns the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(math.Round(c.A*255)))
}

// Vec2 is a 2D vector used for offsets, sizes and directions.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Coordinates is a position with a render layer. Higher layers draw on top.
type Coordinates struct {
	X, Y  float64
	Layer int
}

// XY creates coordinates on layer 0.
func XY(x, y float64) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Vec returns the planar part of c.
func (c Coordinates) Vec() Vec2 {
	return Vec2{c.X, c.Y}
}

// Rect is an axis-aligned rectangle. Origin is top-left, Y grows downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
