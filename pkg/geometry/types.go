// Package geometry provides basic integer geometric types used throughout the application.
package geometry

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// RectInt represents an axis-aligned rectangle with integer pixel coordinates.
type RectInt struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// TopLeft returns the top-left corner.
func (r RectInt) TopLeft() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// Right returns the x coordinate one past the rightmost column.
func (r RectInt) Right() int {
	return r.X + r.Width
}

// Bottom returns the y coordinate one past the bottommost row.
func (r RectInt) Bottom() int {
	return r.Y + r.Height
}

// Area returns the number of pixels covered by the rectangle.
func (r RectInt) Area() int {
	return r.Width * r.Height
}

// Empty returns true if the rectangle covers no pixels.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// In returns true if r lies entirely within the given bounds.
func (r RectInt) In(bounds RectInt) bool {
	return r.X >= bounds.X && r.Y >= bounds.Y &&
		r.Right() <= bounds.Right() && r.Bottom() <= bounds.Bottom()
}

// Offset returns the rectangle translated by (dx, dy).
func (r RectInt) Offset(dx, dy int) RectInt {
	return RectInt{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}
