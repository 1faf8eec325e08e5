package object

// Star is a fixed point of the backdrop.
type Star struct {
	X, Y    float64
	Size    float64
	Opacity float64
}

// NewStarField scatters n stars over the screen.
func NewStarField(ctx UpdateContext, n int) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:       ctx.Rand.Float64() * ctx.Screen.Width,
			Y:       ctx.Rand.Float64() * ctx.Screen.Height,
			Size:    ctx.Rand.Float64() * 1.8,
			Opacity: randRange(ctx.Rand, 0.1, 0.4),
		}
	}
	return stars
}
