// Package physics provides projection, overlap tests and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Rect is an axis-aligned box in screen space.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectAround returns the box centred on (cx, cy) extending halfW and halfH each way.
func RectAround(cx, cy, halfW, halfH float64) Rect {
	return Rect{
		Left:   cx - halfW,
		Top:    cy - halfH,
		Right:  cx + halfW,
		Bottom: cy + halfH,
	}
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && r.Right > o.Left && r.Top < o.Bottom && r.Bottom > o.Top
}
