// Package core holds the value types shared by the raster packages: a
// three-channel floating-point color and a 2D integer coordinate.
package core

import "fmt"

// Color is an RGB sample with channels conventionally in [0, 1].
//
// The type never clamps. Working colors routinely leave the unit range while
// diffused quantization error accumulates in them.
type Color struct {
	R, G, B float64
}

// Gray returns a color with all three channels set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Add returns c + o, component-wise.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Sub returns c - o, component-wise.
func (c Color) Sub(o Color) Color {
	return Color{R: c.R - o.R, G: c.G - o.G, B: c.B - o.B}
}

// Scale returns c * s, component-wise.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Clamped returns c with every channel limited to [0, 1].
func (c Color) Clamped() Color {
	return Color{R: Clamp(c.R, 0, 1), G: Clamp(c.G, 0, 1), B: Clamp(c.B, 0, 1)}
}

// NearlyEqual reports whether every channel of c and o agrees within eps.
func (c Color) NearlyEqual(o Color, eps float64) bool {
	return NearlyEqual(c.R, o.R, eps) && NearlyEqual(c.G, o.G, eps) && NearlyEqual(c.B, o.B, eps)
}

// String formats c with fixed precision.
func (c Color) String() string {
	return fmt.Sprintf("{%.4f %.4f %.4f}", c.R, c.G, c.B)
}

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Before reports whether p is visited strictly earlier than o in row-major
// scan order.
func (p Point) Before(o Point) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}

	return p.X < o.X
}
