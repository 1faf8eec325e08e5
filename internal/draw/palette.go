package draw

import "github.com/lucasb-eyer/go-colorful"

// Fixed colours shared by the terminal and window renderers.
var (
	White         = colorful.Color{R: 1, G: 1, B: 1}
	LineColor     = colorful.Color{R: 200.0 / 255, G: 200.0 / 255, B: 1}
	LineAlpha     = 0.5
	GameOverColor = colorful.Color{R: 1}
)

var exhaustColors = [...]colorful.Color{
	White,
	MustHex("#ccddff"),
	MustHex("#88bbff"),
}

// ExhaustColor picks a colour for the i-th trail particle, cycling through the
// exhaust palette so neighbouring puffs differ.
func ExhaustColor(i int) colorful.Color {
	return exhaustColors[i%len(exhaustColors)]
}
