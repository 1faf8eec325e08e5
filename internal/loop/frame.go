package loop

import (
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/session"
)

// Frame is everything a renderer needs to draw one tick. It shares no mutable
// state with the game and stays valid after the next Tick.
type Frame struct {
	Width, Height float64

	Player      PlayerView
	Trail       []object.TrailParticle
	Projectiles []ProjectileView
	Lines       []LineView
	Stars       []object.Star

	Score    int
	GameOver bool
	Stats    session.Stats
}

// PlayerView is the craft's pose.
type PlayerView struct {
	X, Y          float64 // Centre
	Width, Height float64
}

// ProjectileView is a projectile projected onto the screen.
type ProjectileView struct {
	X, Y       float64
	Radius     float64 // Coloured disc
	CoreRadius float64 // White centre, 0 when not drawn
	Color      colorful.Color
	Trail      []object.TrailSample // Oldest position last
}

// LineView is an ambient streak, tail to head.
type LineView struct {
	X1, Y1, X2, Y2 float64
}

// buildFrame snapshots the game. In GameOver the projectiles are drawn frozen:
// no depth trails and no white core.
func (g *Game) buildFrame() Frame {
	over := g.state == StateGameOver
	f := Frame{
		Width:  g.ctx.Screen.Width,
		Height: g.ctx.Screen.Height,
		Player: PlayerView{
			X:      g.player.X,
			Y:      g.player.Y,
			Width:  g.player.Width,
			Height: g.player.Height,
		},
		Trail:    slices.Clone(g.player.Trail),
		Stars:    g.stars,
		Score:    g.score,
		GameOver: over,
	}
	if g.stats != nil {
		f.Stats = g.stats()
	}

	f.Lines = make([]LineView, 0, len(g.lines))
	for _, l := range g.lines {
		tx, ty := l.Tail()
		f.Lines = append(f.Lines, LineView{X1: tx, Y1: ty, X2: l.X, Y2: l.Y})
	}

	f.Projectiles = make([]ProjectileView, 0, len(g.projectiles))
	for _, p := range g.projectiles {
		proj, ok := g.ctx.Projector.Project(p.WorldX, p.WorldY, p.Z)
		if !ok {
			continue
		}
		v := ProjectileView{
			X:      proj.X,
			Y:      proj.Y,
			Radius: math.Max(0.8, proj.Size/2),
			Color:  p.Color,
		}
		if !over {
			v.CoreRadius = math.Max(0.4, proj.Size/4)
			v.Trail = p.DepthTrail(g.ctx.Projector)
		}
		f.Projectiles = append(f.Projectiles, v)
	}
	return f
}
