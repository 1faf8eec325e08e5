// Package draw renders frames onto a terminal using half-block characters.
package draw

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

var black = colorful.Color{}

// Dim fades c toward black. alpha 1 keeps the colour, 0 turns it black.
// The terminal has no transparency, so opacity is approximated by brightness.
func Dim(c colorful.Color, alpha float64) colorful.Color {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return black
	}
	return black.BlendRgb(c, alpha).Clamped()
}

// MustHex parses a #rrggbb colour, panicking on malformed input.
// Only used for the fixed palette.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
