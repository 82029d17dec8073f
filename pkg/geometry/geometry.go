// Package geometry provides integer rectangle math on the terminal cell
// grid. Rectangles use exclusive right/bottom edges so a 1×1 rect covers
// exactly one cell.
package geometry

// Point is a position on the cell grid.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in cells.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle. X,Y is the top-left corner; Right and
// Bottom are exclusive.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect builds a rect from a top-left corner and a size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Center returns the rect's center point, rounded toward the top-left.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rect. The right and
// bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether the two rects share at least one cell.
// Rects that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Intersect returns the overlapping region of two rects. The result is
// empty when they are disjoint or merely edge-tangent.
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Translate returns the rect shifted by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Clamp constrains v to the closed interval [lo, hi]. When the interval is
// inverted (hi < lo) the lower bound wins.
func Clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
