// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// AspectRatio returns width/height, or 0 for a degenerate rectangle.
func (r Rect) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return r.Width / r.Height
}

// ToInt converts to RectInt, rounding each edge to the nearest pixel.
func (r Rect) ToInt() RectInt {
	return RectInt{
		X:      int(math.Round(r.X)),
		Y:      int(math.Round(r.Y)),
		Width:  int(math.Round(r.Width)),
		Height: int(math.Round(r.Height)),
	}
}

// RectInt represents a rectangle with integer pixel coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ToFloat converts to Rect.
func (r RectInt) ToFloat() Rect {
	return Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ClampTo shifts and, if necessary, shrinks the rectangle so it lies fully
// inside the bounds (0,0,w,h).
func (r RectInt) ClampTo(w, h int) RectInt {
	out := r
	if out.Width > w {
		out.Width = w
	}
	if out.Height > h {
		out.Height = h
	}
	if out.X < 0 {
		out.X = 0
	}
	if out.Y < 0 {
		out.Y = 0
	}
	if out.X+out.Width > w {
		out.X = w - out.Width
	}
	if out.Y+out.Height > h {
		out.Y = h - out.Height
	}
	return out
}

// LargestInscribed returns the largest rectangle with the given aspect ratio
// (width/height) that fits inside a w x h area, centered.
func LargestInscribed(w, h int, aspect float64) Rect {
	if w <= 0 || h <= 0 || aspect <= 0 {
		return Rect{}
	}
	fw := float64(w)
	fh := float64(h)
	rw := fw
	rh := rw / aspect
	if rh > fh {
		rh = fh
		rw = rh * aspect
	}
	return Rect{
		X:      (fw - rw) / 2,
		Y:      (fh - rh) / 2,
		Width:  rw,
		Height: rh,
	}
}

// Clamp restricts v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
