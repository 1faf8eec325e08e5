package config

import (
	"errors"
	"math/rand"
	"time"

	"github.com/tomz197/spacedodge/internal/config"
)

// Env variable names read by FromEnv.
const (
	EnvSeed          = "SPACEDODGE_SEED"
	EnvSpawnRate     = "SPACEDODGE_SPAWN_RATE"
	EnvSpeed         = "SPACEDODGE_SPEED"
	EnvHitboxDivisor = "SPACEDODGE_HITBOX_DIVISOR"
)

// Settings carries the tunables a game instance is built from.
// Restart returns the mutable ones (spawn rate, speed) to these values.
type Settings struct {
	Width, Height float64

	Seed int64 // 0 means seed from the clock

	SpawnRate     float64
	Speed         float64
	HitboxDivisor float64

	TrailSpawnRate float64
	LineSpawnRate  float64
	Stars          int
}

// Default returns the stock tuning.
func Default() Settings {
	return Settings{
		Width:          ScreenWidth,
		Height:         ScreenHeight,
		SpawnRate:      ProjectileSpawnRate,
		Speed:          ProjectileSpeed,
		HitboxDivisor:  HitboxDivisor,
		TrailSpawnRate: PlayerTrailSpawnRate,
		LineSpawnRate:  LineSpawnRate,
		Stars:          BackgroundStars,
	}
}

// WithDefaults returns s with every zero field taken from Default.
// Seed stays zero, which already means a clock seed.
func (s Settings) WithDefaults() Settings {
	d := Default()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&s.Width, d.Width)
	fill(&s.Height, d.Height)
	fill(&s.SpawnRate, d.SpawnRate)
	fill(&s.Speed, d.Speed)
	fill(&s.HitboxDivisor, d.HitboxDivisor)
	fill(&s.TrailSpawnRate, d.TrailSpawnRate)
	fill(&s.LineSpawnRate, d.LineSpawnRate)
	if s.Stars == 0 {
		s.Stars = d.Stars
	}
	return s
}

// FromEnv returns Default overridden by SPACEDODGE_* variables.
// Unparsable values keep their default; the returned error lists them.
func FromEnv() (Settings, error) {
	s := Default()
	var errs []error

	seed, err := config.GetEnvInt(EnvSeed, 0)
	errs = append(errs, err)
	s.Seed = int64(seed)

	s.SpawnRate, err = config.GetEnvFloat(EnvSpawnRate, s.SpawnRate)
	errs = append(errs, err)
	s.Speed, err = config.GetEnvFloat(EnvSpeed, s.Speed)
	errs = append(errs, err)
	s.HitboxDivisor, err = config.GetEnvFloat(EnvHitboxDivisor, s.HitboxDivisor)
	errs = append(errs, err)

	if s.HitboxDivisor <= 0 {
		errs = append(errs, errors.New(EnvHitboxDivisor+" must be positive"))
		s.HitboxDivisor = HitboxDivisor
	}
	return s, errors.Join(errs...)
}

// NewRand returns the random source for a game built from these settings.
func (s Settings) NewRand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
