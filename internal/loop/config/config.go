// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - logical resolution all game objects use.
// Renderers scale it to whatever surface they draw on.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// Perspective
const (
	PerspectiveFactor  = 350.0
	MaxProjectionScale = 1000.0 // Projections closer than Factor/MaxScale are not drawn
	MaxDepth           = 150.0  // Spawn depth of every projectile
	PlayerDepth        = 1.0    // Depth of the player plane
)

// Projectiles
const (
	ProjectileBaseSize    = 1.5
	ProjectileMinHitSize  = 1.5
	ProjectileSpeed       = 1.5   // Depth units per frame before jitter
	ProjectileSpawnRate   = 0.018 // Chance per frame
	ProjectileJitterMin   = 0.9   // Speed multiplier range [min, min+span)
	ProjectileJitterSpan  = 0.4
	ProjectileEdgeBuffer  = 50.0
	ProjectileHueMin      = 180.0
	ProjectileHueSpan     = 60.0
	ProjectileTrailLength = 4
	ProjectileTrailFade   = 0.6
	HitboxDivisor         = 3.0 // Both hitboxes are shrunk by this divisor
)

// Player
const (
	PlayerWidth          = 90.0
	PlayerHeight         = 110.0
	PlayerSpeed          = 4.0
	PlayerCollisionScale = 0.6
	PlayerStartY         = 0.8 // Fraction of screen height
	PlayerTrailLength    = 25
	PlayerTrailFade      = 0.035
	PlayerTrailSpawnRate = 0.7
)

// Ambient lines
const (
	LineSpawnRate     = 0.15
	LineSpeed         = 8.0
	LineLength        = 15.0
	LineRemovalRadius = 20.0
)

// Background
const (
	BackgroundStars = 150
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 200  // Columns; larger terminals get a centred, bordered canvas
	MaxTermHeight         = 60   // Rows
	GameOverFade          = 0.25 // Brightness of the scene behind the game over text
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show the shutdown message before disconnecting
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
