// Package object holds the entities of the star field and how each one moves.
package object

import (
	"github.com/tomz197/spacedodge/internal/physics"
)

// Rand is the random source entities draw from. *math/rand.Rand satisfies it;
// tests pass a seeded or scripted one.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Rand      Rand
	Screen    Screen
	Projector physics.Projector
}

// Screen represents the logical playfield.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the playfield, which is also the vanishing point.
func (s Screen) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// Clamp moves a box of the given half extents centred on (x, y) back inside the screen.
func (s Screen) Clamp(x, y, halfW, halfH float64) (float64, float64) {
	if x-halfW < 0 {
		x = halfW
	}
	if x+halfW > s.Width {
		x = s.Width - halfW
	}
	if y-halfH < 0 {
		y = halfH
	}
	if y+halfH > s.Height {
		y = s.Height - halfH
	}
	return x, y
}

// randRange returns a value in [min, min+span).
func randRange(r Rand, min, span float64) float64 {
	return min + r.Float64()*span
}
