package labels

import "math"

// Point represents a 2D point or vector in screen units.
// It also carries label footprints, where X is the width and Y the height.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Scale returns the component-wise product of two points.
// Used to stretch a unit anchor direction over a footprint.
func (p Point) Scale(q Point) Point {
	return Point{X: p.X * q.X, Y: p.Y * q.Y}
}

// IsFinite reports whether both components are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned rectangle in screen space.
// Min is the top-left corner, Max the bottom-right.
type Rect struct {
	Min, Max Point
}

// RectFromCenter builds a rectangle of the given size centered on c.
func RectFromCenter(c, size Point) Rect {
	half := size.Mul(0.5)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// Overlaps reports whether r and o share a region of non-zero area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Size returns the width and height of r.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}
