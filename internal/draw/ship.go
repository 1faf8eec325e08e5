package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Part is one filled polygon of a sprite, in logical coordinates.
type Part struct {
	Points []Point
	Color  colorful.Color
	Alpha  float64
}

// shipPart is a polygon in craft-relative units: (0, 0) is the top-left of the
// bounding box and (1, 1) the bottom-right.
type shipPart struct {
	points []Point
	color  colorful.Color
	alpha  float64
}

const ellipseSegments = 16

func ellipse(cx, cy, rx, ry float64) []Point {
	pts := make([]Point, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return pts
}

// Drawn back to front: engine glow, hull, wings, nose, cockpit.
var shipParts = []shipPart{
	{ellipse(0.5, 0.9, 0.35, 0.10), colorful.Color{R: 100.0 / 255, G: 180.0 / 255, B: 1}, 0.7},
	{ellipse(0.5, 0.9, 0.20, 0.07), colorful.Color{R: 200.0 / 255, G: 220.0 / 255, B: 1}, 0.9},
	{ellipse(0.5, 0.9, 0.10, 0.05), colorful.Color{R: 1, G: 1, B: 1}, 1},
	{[]Point{{0.3, 0.2}, {0.7, 0.2}, {0.9, 0.8}, {0.1, 0.8}}, MustHex("#555565"), 1},
	{[]Point{{0.3, 0.3}, {0.1, 0.85}, {-0.2, 0.75}, {-0.1, 0.25}}, MustHex("#888898"), 1},
	{[]Point{{0.7, 0.3}, {0.9, 0.85}, {1.2, 0.75}, {1.1, 0.25}}, MustHex("#888898"), 1},
	{[]Point{{0.5, 0.15}, {0.5, -0.1}, {0.55, 0.2}, {0.45, 0.2}}, MustHex("#707080"), 1},
	{ellipse(0.5, 0.25, 0.10, 0.05), MustHex("#333340"), 1},
}

// Ship lays out the player craft centred on (x, y) with bounding size w by h.
func Ship(x, y, w, h float64) []Part {
	left, top := x-w/2, y-h/2
	parts := make([]Part, len(shipParts))
	for i, sp := range shipParts {
		pts := make([]Point, len(sp.points))
		for j, p := range sp.points {
			pts[j] = Point{X: left + p.X*w, Y: top + p.Y*h}
		}
		parts[i] = Part{Points: pts, Color: sp.color, Alpha: sp.alpha}
	}
	return parts
}
