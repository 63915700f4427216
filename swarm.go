package swarm

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// whitePixel is a 1x1 white image used to draw solid particle squares.
var whitePixel *ebiten.Image

// ensureWhitePixel lazily initializes the shared pixel. Only called from
// the draw path, which runs on the render goroutine.
func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// toRGBA converts to a color.RGBA with premultiplied components.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Rect is an axis-aligned rectangle in viewport coordinates. The origin is
// at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no positive area. A slot with an
// empty rect is not measurable and cannot sample particles or transition.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range is a general-purpose min/max range used for randomized motion
// seeding.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// SlotID names an animatable region. Callers declare their closed set of
// slot identifiers as typed constants:
//
//	const (
//		SlotHero swarm.SlotID = "hero"
//		SlotMenu swarm.SlotID = "menu"
//	)
type SlotID string

// SlotStatus is the lifecycle state of a slot.
type SlotStatus uint8

const (
	StatusHidden        SlotStatus = iota // no particles visible
	StatusAssembling                      // particles traveling toward the image shape
	StatusAssembled                       // particles resting at their sampled positions
	StatusDisassembling                   // particles dispersing off-screen
)

// String returns the lowercase status name.
func (s SlotStatus) String() string {
	switch s {
	case StatusHidden:
		return "hidden"
	case StatusAssembling:
		return "assembling"
	case StatusAssembled:
		return "assembled"
	case StatusDisassembling:
		return "disassembling"
	default:
		return "unknown"
	}
}

// Edge selects the screen edge particles travel from when a slot assembles
// and toward when it disassembles.
type Edge uint8

const (
	EdgeTop    Edge = iota // particles originate above the viewport
	EdgeBottom             // particles originate below the viewport
	EdgeLeft               // particles originate left of the viewport
	EdgeRight              // particles originate right of the viewport
)

// String returns the lowercase edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
