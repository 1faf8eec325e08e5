package object

import (
	"math"

	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Line is a decorative streak rushing from a screen edge toward the centre.
type Line struct {
	X, Y   float64 // Head position
	VX, VY float64 // Velocity, aimed at the centre
}

// SpawnLine starts a streak just outside a random screen edge.
func SpawnLine(ctx UpdateContext) *Line {
	s := ctx.Screen
	r := ctx.Rand
	var x, y float64
	switch r.Intn(4) {
	case edgeTop:
		x, y = r.Float64()*s.Width, -config.LineLength
	case edgeRight:
		x, y = s.Width+config.LineLength, r.Float64()*s.Height
	case edgeBottom:
		x, y = r.Float64()*s.Width, s.Height+config.LineLength
	case edgeLeft:
		x, y = -config.LineLength, r.Float64()*s.Height
	}

	cx, cy := s.Center()
	dist := physics.Distance(x, y, cx, cy)
	return &Line{
		X:  x,
		Y:  y,
		VX: (cx - x) / dist * config.LineSpeed,
		VY: (cy - y) / dist * config.LineSpeed,
	}
}

// Update moves the streak. Returns true once it has reached the centre.
func (l *Line) Update(ctx UpdateContext) bool {
	l.X += l.VX
	l.Y += l.VY
	cx, cy := ctx.Screen.Center()
	return physics.DistanceSquared(l.X, l.Y, cx, cy) < config.LineRemovalRadius*config.LineRemovalRadius
}

// Tail returns the back end of the streak.
func (l *Line) Tail() (float64, float64) {
	speed := math.Hypot(l.VX, l.VY)
	if speed == 0 {
		return l.X, l.Y
	}
	k := config.LineLength / speed
	return l.X - l.VX*k, l.Y - l.VY*k
}
