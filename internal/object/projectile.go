package object

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Projectile is a shooting star flying out of the vanishing point toward the player.
// Its world X/Y never change; only the depth does.
type Projectile struct {
	WorldX, WorldY float64
	Z              float64 // Depth, decreases by Speed every frame
	Speed          float64
	Color          colorful.Color

	Collided  bool // The player-plane test already ran
	HitPlayer bool // ...and it hit
}

// Edges of the screen a projectile can be aimed through.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// SpawnProjectile aims a new projectile through a random band along one of the
// four screen edges and starts it at maximum depth.
func SpawnProjectile(ctx UpdateContext, baseSpeed float64) *Projectile {
	tx, ty := edgeTarget(ctx.Rand, ctx.Screen)
	wx, wy := ctx.Projector.Unproject(tx, ty, config.PlayerDepth)
	return &Projectile{
		WorldX: wx,
		WorldY: wy,
		Z:      config.MaxDepth,
		Speed:  baseSpeed * randRange(ctx.Rand, config.ProjectileJitterMin, config.ProjectileJitterSpan),
		Color:  colorful.Hsl(randRange(ctx.Rand, config.ProjectileHueMin, config.ProjectileHueSpan), 1.0, 0.75),
	}
}

// edgeTarget picks the screen point a projectile will cross the player plane at.
// The band along each edge reaches a quarter of the way in and stays clear of
// the corners by the edge buffer.
func edgeTarget(r Rand, s Screen) (x, y float64) {
	vpX, vpY := s.Center()
	buf := config.ProjectileEdgeBuffer
	switch r.Intn(4) {
	case edgeTop:
		y = r.Float64() * (vpY * 0.5)
		x = buf + r.Float64()*(s.Width-2*buf)
	case edgeRight:
		x = s.Width - r.Float64()*(vpX*0.5)
		y = buf + r.Float64()*(s.Height-2*buf)
	case edgeBottom:
		y = s.Height - r.Float64()*(vpY*0.5)
		x = buf + r.Float64()*(s.Width-2*buf)
	case edgeLeft:
		x = r.Float64() * (vpX * 0.5)
		y = buf + r.Float64()*(s.Height-2*buf)
	}
	return x, y
}

// Advance moves the projectile one frame closer. Returns true once it has
// passed the camera and should be removed.
func (p *Projectile) Advance() bool {
	p.Z -= p.Speed
	return p.Z <= 0
}

// CrossedPlane reports whether the last Advance took the projectile from in
// front of the plane at depth z to at or behind it.
func (p *Projectile) CrossedPlane(z float64) bool {
	return p.Z <= z && p.Z+p.Speed > z
}

// Hitbox returns the collision box around a projection of the projectile.
func (p *Projectile) Hitbox(proj physics.Projection, divisor float64) physics.Rect {
	size := math.Max(config.ProjectileMinHitSize, proj.Size)
	return physics.RectAround(proj.X, proj.Y, size/divisor, size/divisor)
}

// DepthTrail projects the fading samples left behind the projectile. Samples
// sit progressively deeper; the trail stops at the first one that cannot be
// projected.
func (p *Projectile) DepthTrail(pr physics.Projector) []TrailSample {
	samples := make([]TrailSample, 0, config.ProjectileTrailLength)
	z := p.Z
	alpha := config.ProjectileTrailFade
	for t := 0; t < config.ProjectileTrailLength; t++ {
		z += p.Speed * (config.ProjectileTrailFade / float64(t+1))
		proj, ok := pr.Project(p.WorldX, p.WorldY, z)
		if !ok {
			break
		}
		samples = append(samples, TrailSample{
			X:      proj.X,
			Y:      proj.Y,
			Radius: math.Max(0.3, proj.Size*(0.7-float64(t)*0.12)),
			Alpha:  alpha * (1 - float64(t)/config.ProjectileTrailLength),
		})
		alpha *= config.ProjectileTrailFade
	}
	return samples
}
