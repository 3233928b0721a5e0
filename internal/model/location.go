package model

import "fmt"

// Point: клетка карты. Карты 256x256, поэтому координаты помещаются в байт.
// Value type, передаётся по значению (immutable).
type Point struct {
	X uint8
	Y uint8
}

// Rectangle is an inclusive coordinate range on a map. X1=X2 and Y1=Y2
// together denote a fixed point.
type Rectangle struct {
	X1 uint8
	X2 uint8
	Y1 uint8
	Y2 uint8
}

// NewRectangle creates a Rectangle from its corners.
func NewRectangle(x1, x2, y1, y2 uint8) Rectangle {
	return Rectangle{X1: x1, X2: x2, Y1: y1, Y2: y2}
}

// PointRectangle returns the degenerate rectangle covering exactly p.
func PointRectangle(p Point) Rectangle {
	return Rectangle{X1: p.X, X2: p.X, Y1: p.Y, Y2: p.Y}
}

// Validate checks X1<=X2 and Y1<=Y2.
func (r Rectangle) Validate() error {
	if r.X1 > r.X2 {
		return fmt.Errorf("%w: x1 %d > x2 %d", ErrMalformedSpawn, r.X1, r.X2)
	}
	if r.Y1 > r.Y2 {
		return fmt.Errorf("%w: y1 %d > y2 %d", ErrMalformedSpawn, r.Y1, r.Y2)
	}
	return nil
}

// IsPoint reports whether the rectangle is a single fixed point.
func (r Rectangle) IsPoint() bool {
	return r.X1 == r.X2 && r.Y1 == r.Y2
}

// Contains reports whether p lies inside the rectangle (inclusive).
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Area returns the number of cells covered. Zero for a malformed rectangle.
func (r Rectangle) Area() int {
	if r.Validate() != nil {
		return 0
	}
	return (int(r.X2) - int(r.X1) + 1) * (int(r.Y2) - int(r.Y1) + 1)
}

func (r Rectangle) String() string {
	if r.IsPoint() {
		return fmt.Sprintf("(%d,%d)", r.X1, r.Y1)
	}
	return fmt.Sprintf("(%d..%d,%d..%d)", r.X1, r.X2, r.Y1, r.Y2)
}
