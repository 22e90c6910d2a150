package entity

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Dimensions
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects returns true if the two rectangles share a positive area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}
