// Package core provides fundamental types and utilities shared by the
// simulation engines and the terminal host. It has no Bubble Tea dependency
// so game logic stays pure and testable.
package core

import "cmp"

// Rect is an axis-aligned box in canvas units used for collision tests.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect creates a square of half-size r around (cx, cy).
// Balls are stored by centre and tested as boxes.
func CenteredRect(cx, cy, r float64) Rect {
	return Rect{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether the two boxes overlap. Touching edges do not count.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Scale multiplies position and size by k.
func (r Rect) Scale(k float64) Rect {
	return Rect{X: r.X * k, Y: r.Y * k, W: r.W * k, H: r.H * k}
}

// Face identifies the side of a box that was hit.
type Face int

const (
	FaceLeft Face = iota
	FaceRight
	FaceTop
	FaceBottom
)

// String returns a human-readable name for the face.
func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Penetration describes how deeply a moving box sits inside a target box.
type Penetration struct {
	Left, Right, Top, Bottom float64
}

// PenetrationOf computes the four overlap distances of mover into target:
// Left is how far mover's right edge passed target's left edge, and so on.
func PenetrationOf(mover, target Rect) Penetration {
	return Penetration{
		Left:   mover.Right() - target.X,
		Right:  target.Right() - mover.X,
		Top:    mover.Bottom() - target.Y,
		Bottom: target.Bottom() - mover.Y,
	}
}

// Shallowest returns the face with the minimum overlap.
// Ties resolve in the order top, bottom, left, right so corner hits bounce vertically.
func (p Penetration) Shallowest() Face {
	face, depth := FaceTop, p.Top
	if p.Bottom < depth {
		face, depth = FaceBottom, p.Bottom
	}
	if p.Left < depth {
		face, depth = FaceLeft, p.Left
	}
	if p.Right < depth {
		face = FaceRight
	}
	return face
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
