package loop

import (
	"slices"

	"github.com/tomz197/spacedodge/internal/object"
)

// updatePlaying advances one Running frame: ambient lines, then projectiles
// (scoring and collision against the player's previous position), then the player.
func (g *Game) updatePlaying() {
	g.spawnLine()
	g.updateLines()

	g.spawnProjectile()
	g.updateProjectiles()

	g.player.Update(g.ctx)
}

func (g *Game) spawnLine() {
	if g.state != StateRunning || g.ctx.Rand.Float64() >= g.settings.LineSpawnRate {
		return
	}
	g.lines = append(g.lines, object.SpawnLine(g.ctx))
}

func (g *Game) updateLines() {
	g.lines = slices.DeleteFunc(g.lines, func(l *object.Line) bool {
		return l.Update(g.ctx)
	})
}

func (g *Game) spawnProjectile() {
	if g.state != StateRunning || g.ctx.Rand.Float64() >= g.spawnRate {
		return
	}
	g.projectiles = append(g.projectiles, object.SpawnProjectile(g.ctx, g.speed))
}

// updateProjectiles moves every projectile one step closer, newest first.
// A projectile passing the camera scores unless it hit the player or the game
// already ended.
func (g *Game) updateProjectiles() {
	removed := false
	for i := len(g.projectiles) - 1; i >= 0; i-- {
		p := g.projectiles[i]
		if p.Advance() {
			if !p.HitPlayer && g.state == StateRunning {
				g.score++
			}
			g.projectiles[i] = nil
			removed = true
			continue
		}
		g.checkPlaneCrossing(p)
	}
	if removed {
		g.projectiles = slices.DeleteFunc(g.projectiles, func(p *object.Projectile) bool {
			return p == nil
		})
	}
}
