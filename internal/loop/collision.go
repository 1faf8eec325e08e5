package loop

import (
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// checkPlaneCrossing runs the player-plane test for p. The test fires at most
// once per projectile, on the frame its depth passes the player plane, and is
// made against the projection at exactly that depth.
func (g *Game) checkPlaneCrossing(p *object.Projectile) {
	if p.Collided || !p.CrossedPlane(config.PlayerDepth) {
		return
	}
	p.Collided = true

	proj, ok := g.ctx.Projector.Project(p.WorldX, p.WorldY, config.PlayerDepth)
	if !ok {
		return
	}
	div := g.settings.HitboxDivisor
	if p.Hitbox(proj, div).Overlaps(g.player.Hitbox(div)) {
		p.HitPlayer = true
		g.transition(StateGameOver)
	}
}
