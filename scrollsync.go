package scrollsync

import (
	"image/color"
	"time"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is the zero color.
var ColorTransparent = Color{}

// RGBA converts the color to a premultiplied color.RGBA for the render surface.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// AnchorPoint is a point in page coordinates the connector curve passes through.
type AnchorPoint struct {
	X, Y float64
}

// LayoutMetrics is the read-only host state every layout query needs.
type LayoutMetrics struct {
	ViewportW      float64
	ViewportH      float64
	ScrollY        float64
	DocumentHeight float64
}

// MaxScroll returns the largest reachable scroll offset.
func (m LayoutMetrics) MaxScroll() float64 {
	return max(m.DocumentHeight-m.ViewportH, 0)
}

// FrameContext is the immutable per-tick input. It replaces shared mutable
// pointer and scroll globals: every tick function receives its own copy.
type FrameContext struct {
	Now       time.Duration // time since the host started
	Dt        float64       // seconds since the previous tick
	ScrollY   float64
	MouseX    float64
	MouseY    float64
	ViewportW float64
	ViewportH float64
}

// Direction is a timeline playback direction.
type Direction int8

const (
	Forward Direction = 1
	Reverse Direction = -1
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
