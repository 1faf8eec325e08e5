// Package loop runs the simulation tick by tick and hosts it on a terminal.
package loop

import (
	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/physics"
	"github.com/tomz197/spacedodge/internal/session"
)

// Options configures a Game.
type Options struct {
	Settings config.Settings // Zero fields take their config.Default() values
	Rand     object.Rand     // nil means Settings.NewRand()

	// OnGameOver is called once each time the game enters GameOver, with the final score.
	OnGameOver func(score int)
	// Stats supplies the session aggregate shown in the HUD.
	Stats func() session.Stats
}

// Game is one single-player session. It is not safe for concurrent use;
// hosts call Tick from a single goroutine.
type Game struct {
	settings config.Settings
	ctx      object.UpdateContext

	state       GameState
	player      *object.Player
	projectiles []*object.Projectile // Oldest first
	lines       []*object.Line
	stars       []object.Star
	score       int
	keys        input.State

	// Tuning that restart returns to the configured values
	spawnRate float64
	speed     float64

	onGameOver func(int)
	stats      func() session.Stats
}

// New creates a game in the Running state.
func New(opts Options) *Game {
	s := opts.Settings.WithDefaults()
	r := opts.Rand
	if r == nil {
		r = s.NewRand()
	}

	screen := object.Screen{Width: s.Width, Height: s.Height}
	cx, cy := screen.Center()
	g := &Game{
		settings: s,
		ctx: object.UpdateContext{
			Rand:   r,
			Screen: screen,
			Projector: physics.Projector{
				VanishingX: cx,
				VanishingY: cy,
				Factor:     config.PerspectiveFactor,
				BaseSize:   config.ProjectileBaseSize,
				MaxScale:   config.MaxProjectionScale,
			},
		},
		onGameOver: opts.OnGameOver,
		stats:      opts.Stats,
	}
	g.player = object.NewPlayer(screen, s.TrailSpawnRate)
	g.stars = object.NewStarField(g.ctx, s.Stars)
	g.reset()
	return g
}

// Tick applies the key events in order, advances one frame while Running and
// returns what to draw. In GameOver nothing moves; Enter restarts.
func (g *Game) Tick(events []input.Event) Frame {
	for _, e := range events {
		if e.Key == input.KeyEnter && e.Pressed && g.state == StateGameOver {
			g.Restart()
			continue
		}
		g.keys.Apply(e)
	}

	if g.state == StateRunning {
		g.player.Steer(g.keys.Axis())
		g.updatePlaying()
	}
	return g.buildFrame()
}

// Restart leaves GameOver with a fresh player, an empty field and score 0.
// The background and the session aggregate are kept. Returns false when the
// game is not over.
func (g *Game) Restart() bool {
	if !g.transition(StateRunning) {
		return false
	}
	g.reset()
	return true
}

func (g *Game) reset() {
	g.state = StateRunning
	g.score = 0
	g.projectiles = g.projectiles[:0]
	g.lines = g.lines[:0]
	g.keys.Reset()
	g.player.Reset(g.ctx.Screen)
	g.spawnRate = g.settings.SpawnRate
	g.speed = g.settings.Speed
}

// transition moves to next if the state machine allows it.
func (g *Game) transition(next GameState) bool {
	if !g.state.CanTransition(next) {
		return false
	}
	g.state = next
	if next == StateGameOver && g.onGameOver != nil {
		g.onGameOver(g.score)
	}
	return true
}

// Score returns the number of projectiles dodged this game.
func (g *Game) Score() int {
	return g.score
}

// State returns the current phase.
func (g *Game) State() GameState {
	return g.state
}
