package object

import (
	"math"

	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Player is the craft steered with the keyboard. It moves in screen space only;
// depth does not apply to it.
type Player struct {
	X, Y   float64 // Position (centre of craft)
	DX, DY float64 // Velocity in units per frame

	Width          float64 // Visual bounding box
	Height         float64
	Speed          float64 // Magnitude of any non-zero velocity
	CollisionScale float64 // Shrinks the hitbox relative to the visual size

	Trail          []TrailParticle // Oldest first
	TrailMax       int
	TrailFade      float64 // Alpha lost per frame
	TrailSpawnRate float64 // Chance per frame of a new particle
}

// NewPlayer creates a craft at rest near the bottom of the screen.
func NewPlayer(screen Screen, trailSpawnRate float64) *Player {
	p := &Player{
		Width:          config.PlayerWidth,
		Height:         config.PlayerHeight,
		Speed:          config.PlayerSpeed,
		CollisionScale: config.PlayerCollisionScale,
		TrailMax:       config.PlayerTrailLength,
		TrailFade:      config.PlayerTrailFade,
		TrailSpawnRate: trailSpawnRate,
	}
	p.Reset(screen)
	return p
}

// Reset puts the craft back at its start position with no velocity and no trail.
func (p *Player) Reset(screen Screen) {
	p.X = screen.Width / 2
	p.Y = screen.Height * config.PlayerStartY
	p.DX = 0
	p.DY = 0
	p.Trail = p.Trail[:0]
}

// Steer sets the velocity from an input direction. h and v are -1, 0 or 1.
// Diagonals are normalised so they are no faster than a single axis.
func (p *Player) Steer(h, v int) {
	p.DX = float64(h) * p.Speed
	p.DY = float64(v) * p.Speed
	if p.DX != 0 && p.DY != 0 {
		factor := p.Speed / math.Sqrt(p.DX*p.DX+p.DY*p.DY)
		p.DX *= factor
		p.DY *= factor
	}
}

// Update integrates velocity, keeps the craft on screen and runs the exhaust trail.
func (p *Player) Update(ctx UpdateContext) {
	p.X += p.DX
	p.Y += p.DY

	// Clamp position only; velocity is left as the keys set it
	p.X, p.Y = ctx.Screen.Clamp(p.X, p.Y, p.Width/2, p.Height/2)

	if ctx.Rand.Float64() < p.TrailSpawnRate {
		puff := SpawnExhaust(ctx.Rand, p.X, p.Y, p.Width, p.Height)
		p.Trail = pushTrail(p.Trail, puff, p.TrailMax)
	}
	p.Trail = fadeTrail(p.Trail, p.TrailFade)
}

// Hitbox returns the collision box: the visual size scaled by CollisionScale,
// then shrunk by divisor on each side of the centre.
func (p *Player) Hitbox(divisor float64) physics.Rect {
	w := p.Width * p.CollisionScale
	h := p.Height * p.CollisionScale
	return physics.RectAround(p.X, p.Y, w/divisor, h/divisor)
}
