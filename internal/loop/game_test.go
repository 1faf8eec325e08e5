package loop

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/session"
)

// constRand always draws the same value; 0.99 spawns nothing, 0 spawns everything.
type constRand struct{ f float64 }

func (r constRand) Float64() float64 { return r.f }
func (r constRand) Intn(int) int     { return 0 }

func quietGame(opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = constRand{0.99}
	}
	return New(opts)
}

// aimAt returns a projectile that will reach the player plane at screen point
// (sx, sy) after the given number of ticks.
func aimAt(g *Game, sx, sy float64, ticks int) *object.Projectile {
	wx, wy := g.ctx.Projector.Unproject(sx, sy, config.PlayerDepth)
	return &object.Projectile{
		WorldX: wx,
		WorldY: wy,
		Z:      config.PlayerDepth + float64(ticks) - 0.5,
		Speed:  1,
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to GameState
		want     bool
	}{
		{StateRunning, StateGameOver, true},
		{StateGameOver, StateRunning, true},
		{StateRunning, StateRunning, false},
		{StateGameOver, StateGameOver, false},
		{GameState(7), StateRunning, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%v -> %v = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCentredProjectileEndsGame(t *testing.T) {
	calls := 0
	var final int
	g := quietGame(Options{OnGameOver: func(score int) { calls++; final = score }})
	g.score = 3
	g.player.X, g.player.Y = 400, 300
	p := aimAt(g, 400, 300, 1)
	g.projectiles = append(g.projectiles, p)

	f := g.Tick(nil)

	if !p.Collided || !p.HitPlayer {
		t.Fatalf("projectile flags collided=%v hit=%v, want both set", p.Collided, p.HitPlayer)
	}
	if g.State() != StateGameOver || !f.GameOver {
		t.Fatalf("state = %v, frame.GameOver = %v, want GameOver", g.State(), f.GameOver)
	}
	if calls != 1 || final != 3 {
		t.Fatalf("OnGameOver called %d times with %d, want once with 3", calls, final)
	}

	for i := 0; i < 10; i++ {
		g.Tick(nil)
	}
	if calls != 1 {
		t.Fatalf("OnGameOver called %d times, want 1", calls)
	}
	if g.Score() != 3 {
		t.Fatalf("score changed after game over: %d", g.Score())
	}
}

func TestMissScoresOnceOnRemoval(t *testing.T) {
	g := quietGame(Options{})
	p := aimAt(g, 100, 100, 2) // far from the player at (400, 480)
	g.projectiles = append(g.projectiles, p)

	g.Tick(nil)
	if p.Collided {
		t.Fatal("collision test ran before the plane was reached")
	}
	g.Tick(nil)
	if !p.Collided || p.HitPlayer {
		t.Fatalf("after crossing: collided=%v hit=%v, want true/false", p.Collided, p.HitPlayer)
	}
	if g.Score() != 0 {
		t.Fatalf("scored before removal: %d", g.Score())
	}

	g.Tick(nil)
	if g.Score() != 1 || len(g.projectiles) != 0 {
		t.Fatalf("after removal: score=%d live=%d, want 1 and 0", g.Score(), len(g.projectiles))
	}
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want Running", g.State())
	}
}

func TestUnprojectableProjectileKeptButNotDrawn(t *testing.T) {
	g := quietGame(Options{})
	p := &object.Projectile{Z: 0.4, Speed: 0.1, Collided: true}
	g.projectiles = append(g.projectiles, p)

	// z 0.3 gives scale 350/0.3 > MaxProjectionScale
	f := g.Tick(nil)
	if len(g.projectiles) != 1 {
		t.Fatalf("live projectiles = %d, want 1", len(g.projectiles))
	}
	if len(f.Projectiles) != 0 {
		t.Fatalf("frame projectiles = %d, want 0", len(f.Projectiles))
	}

	for i := 0; i < 10 && len(g.projectiles) > 0; i++ {
		f = g.Tick(nil)
		if len(g.projectiles) > 0 && len(f.Projectiles) != 0 {
			t.Fatalf("z=%v drawn, want skipped", p.Z)
		}
	}
	if len(g.projectiles) != 0 {
		t.Fatalf("projectile not removed, z=%v", p.Z)
	}
	if f.Score != 1 {
		t.Fatalf("score = %d, want 1", f.Score)
	}
}

func TestPartialSettingsTakeDefaults(t *testing.T) {
	g := quietGame(Options{Settings: config.Settings{Seed: 5}})
	if g.settings.HitboxDivisor != config.HitboxDivisor {
		t.Fatalf("HitboxDivisor = %v, want %v", g.settings.HitboxDivisor, config.HitboxDivisor)
	}

	p := aimAt(g, 100, 100, 1) // far from the player at (400, 480)
	g.projectiles = append(g.projectiles, p)
	g.Tick(nil)
	if p.HitPlayer || g.State() != StateRunning {
		t.Fatal("distant projectile hit the player")
	}
}

func TestCollisionTestRunsOnce(t *testing.T) {
	g := quietGame(Options{})
	p := aimAt(g, 100, 100, 1)
	g.projectiles = append(g.projectiles, p)
	g.Tick(nil)
	if !p.Collided || p.HitPlayer {
		t.Fatalf("first crossing: collided=%v hit=%v", p.Collided, p.HitPlayer)
	}

	// Cross the plane again, this time right on the player
	g.player.X, g.player.Y = 100, 100
	p.Z = config.PlayerDepth + 0.5
	g.Tick(nil)
	if p.HitPlayer || g.State() != StateRunning {
		t.Fatal("collision test ran a second time")
	}
}

func TestProjectileJumpingPastCameraIsNotTested(t *testing.T) {
	g := quietGame(Options{})
	g.player.X, g.player.Y = 400, 300
	p := aimAt(g, 400, 300, 1)
	p.Z, p.Speed = 1.5, 2 // skips straight from 1.5 to -0.5
	g.projectiles = append(g.projectiles, p)

	g.Tick(nil)
	if g.State() != StateRunning || g.Score() != 1 {
		t.Fatalf("state=%v score=%d, want Running and 1", g.State(), g.Score())
	}
}

func TestHitboxDivisorShrinksPlayer(t *testing.T) {
	// Player half-width is 90*0.6/3 = 18. At the plane the projectile is
	// 1.5*350 = 525 across, so its half-extent is 525/3 = 175: boxes overlap
	// while the centres are less than 193 apart.
	tests := []struct {
		name    string
		dx      float64
		wantHit bool
	}{
		{"centred", 0, true},
		{"just inside", 192, true},
		{"just outside", 194, false},
		{"far", 300, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := quietGame(Options{})
			g.player.X, g.player.Y = 400, 300
			p := aimAt(g, 400+tt.dx, 300, 1)
			g.projectiles = append(g.projectiles, p)
			g.Tick(nil)
			if p.HitPlayer != tt.wantHit {
				t.Fatalf("hit = %v, want %v", p.HitPlayer, tt.wantHit)
			}
		})
	}
}

func TestDepthDecreasesAndScoreCountsMisses(t *testing.T) {
	s := config.Default()
	s.SpawnRate = 1
	s.HitboxDivisor = 1e9 // nothing can hit
	g := New(Options{Settings: s, Rand: rand.New(rand.NewSource(42))})

	prev := map[*object.Projectile]float64{}
	spawned := 0
	for tick := 0; tick < 400; tick++ {
		g.Tick(nil)
		next := map[*object.Projectile]float64{}
		for _, p := range g.projectiles {
			if p.Z <= 0 {
				t.Fatalf("tick %d: projectile kept at z=%v", tick, p.Z)
			}
			if z, ok := prev[p]; ok && p.Z >= z {
				t.Fatalf("tick %d: depth went from %v to %v", tick, z, p.Z)
			}
			if _, ok := prev[p]; !ok {
				spawned++
			}
			next[p] = p.Z
		}
		prev = next
	}
	if spawned != 400 {
		t.Fatalf("spawned %d projectiles, want one per tick", spawned)
	}
	if want := spawned - len(g.projectiles); g.Score() != want {
		t.Fatalf("score = %d, want %d (one per removed projectile)", g.Score(), want)
	}
	if g.Score() == 0 {
		t.Fatal("no projectile ever passed the camera")
	}
}

func TestSteering(t *testing.T) {
	tests := []struct {
		name   string
		events []input.Event
		wantDX float64
		wantDY float64
	}{
		{"left", []input.Event{input.Press(input.KeyArrowLeft)}, -4, 0},
		{"right wins", []input.Event{input.Press(input.KeyA), input.Press(input.KeyArrowRight)}, 4, 0},
		{"released", []input.Event{input.Press(input.KeyW), input.Release(input.KeyW)}, 0, 0},
		{"diagonal", []input.Event{input.Press(input.KeyD), input.Press(input.KeyW)}, 4 / math.Sqrt2, -4 / math.Sqrt2},
		{"unknown ignored", []input.Event{input.Press(input.KeyUnknown)}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := quietGame(Options{})
			x0, y0 := g.player.X, g.player.Y
			f := g.Tick(tt.events)
			dx, dy := f.Player.X-x0, f.Player.Y-y0
			if math.Abs(dx-tt.wantDX) > 1e-9 || math.Abs(dy-tt.wantDY) > 1e-9 {
				t.Fatalf("moved (%v, %v), want (%v, %v)", dx, dy, tt.wantDX, tt.wantDY)
			}
			if speed := math.Hypot(dx, dy); speed > config.PlayerSpeed+1e-9 {
				t.Fatalf("speed %v exceeds %v", speed, config.PlayerSpeed)
			}
		})
	}
}

func TestHeldKeysPersistAcrossTicks(t *testing.T) {
	g := quietGame(Options{})
	x0 := g.player.X
	g.Tick([]input.Event{input.Press(input.KeyArrowRight)})
	g.Tick(nil)
	f := g.Tick(nil)
	if f.Player.X != x0+12 {
		t.Fatalf("x = %v, want %v after three ticks held", f.Player.X, x0+12)
	}
}

func TestGameOverFreezesFrame(t *testing.T) {
	g := quietGame(Options{})
	g.player.X, g.player.Y = 400, 300
	g.projectiles = append(g.projectiles, aimAt(g, 400, 300, 1))
	far := aimAt(g, 100, 100, 40)
	g.projectiles = append(g.projectiles, far)
	g.Tick(nil)

	z := far.Z
	f := g.Tick([]input.Event{input.Press(input.KeyArrowLeft)})
	if f.Player.X != 400 || f.Player.Y != 300 {
		t.Fatalf("player moved during game over: (%v, %v)", f.Player.X, f.Player.Y)
	}
	if far.Z != z {
		t.Fatalf("projectile moved during game over: %v -> %v", z, far.Z)
	}
	if len(f.Projectiles) != 2 {
		t.Fatalf("frozen frame has %d projectiles, want 2", len(f.Projectiles))
	}
	for _, pv := range f.Projectiles {
		if len(pv.Trail) != 0 || pv.CoreRadius != 0 {
			t.Fatalf("frozen projectile drawn with trail/core: %+v", pv)
		}
	}
}

func TestEnterOnlyRestartsAfterGameOver(t *testing.T) {
	g := quietGame(Options{})
	g.score = 5
	g.Tick([]input.Event{input.Press(input.KeyEnter)})
	if g.Score() != 5 || g.State() != StateRunning {
		t.Fatalf("Enter while running changed the game: score=%d state=%v", g.Score(), g.State())
	}
	if g.Restart() {
		t.Fatal("Restart succeeded while running")
	}
}

func TestRestartResetsGameButKeepsStats(t *testing.T) {
	store := session.NewMemoryStore(log.New(io.Discard))
	g := New(Options{
		Rand:       constRand{0},
		OnGameOver: func(score int) { store.Record("me", score) },
		Stats:      func() session.Stats { return store.Get("me") },
	})
	stars := g.stars

	// Play a while so lines, trail and score exist, holding a key
	g.Tick([]input.Event{input.Press(input.KeyArrowLeft)})
	for i := 0; i < 5; i++ {
		g.Tick(nil)
	}
	g.score = 7
	g.player.X, g.player.Y = 400, 300
	g.projectiles = append(g.projectiles, aimAt(g, 400, 300, 1))
	f := g.Tick(nil)
	if !f.GameOver {
		t.Fatal("expected game over")
	}
	if want := (session.Stats{HighScore: 7, GamesPlayed: 1}); f.Stats != want {
		t.Fatalf("stats after game over = %+v, want %+v", f.Stats, want)
	}

	// Restart without spawning anything this tick
	g.ctx.Rand = constRand{0.99}
	f = g.Tick([]input.Event{input.Press(input.KeyEnter)})

	if g.State() != StateRunning || f.GameOver {
		t.Fatalf("state = %v after Enter, want Running", g.State())
	}
	if f.Score != 0 || len(f.Projectiles) != 0 || len(f.Lines) != 0 || len(f.Trail) != 0 {
		t.Fatalf("restart left score=%d projectiles=%d lines=%d trail=%d",
			f.Score, len(f.Projectiles), len(f.Lines), len(f.Trail))
	}
	if f.Player.X != 400 || f.Player.Y != 480 {
		t.Fatalf("player at (%v, %v), want start (400, 480) with keys released", f.Player.X, f.Player.Y)
	}
	if want := (session.Stats{HighScore: 7, GamesPlayed: 1}); f.Stats != want {
		t.Fatalf("stats after restart = %+v, want %+v", f.Stats, want)
	}
	if &g.stars[0] != &stars[0] {
		t.Fatal("background regenerated on restart")
	}
	if g.spawnRate != config.ProjectileSpawnRate || g.speed != config.ProjectileSpeed {
		t.Fatalf("tuning not restored: rate=%v speed=%v", g.spawnRate, g.speed)
	}
}

func TestTrailBoundedDuringPlay(t *testing.T) {
	g := quietGame(Options{Rand: constRand{0}})
	for i := 0; i < 120; i++ {
		f := g.Tick(nil)
		if len(f.Trail) > config.PlayerTrailLength {
			t.Fatalf("tick %d: trail length %d", i, len(f.Trail))
		}
		for _, p := range f.Trail {
			if p.Alpha <= 0 {
				t.Fatalf("tick %d: dead particle in frame", i)
			}
		}
	}
}

func TestFrameIsACopy(t *testing.T) {
	g := quietGame(Options{Rand: constRand{0}})
	for i := 0; i < 5; i++ {
		g.Tick(nil)
	}
	f := g.Tick(nil)
	f.Trail[0].Alpha = 42
	if g.player.Trail[0].Alpha == 42 {
		t.Fatal("frame trail aliases the game's trail")
	}
}
