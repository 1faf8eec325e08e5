package object

// TrailParticle is one puff of engine exhaust.
type TrailParticle struct {
	X, Y  float64 // Screen position
	Alpha float64 // Opacity, decays every frame; removed at <= 0
	Size  float64
}

// TrailSample is one point of a projectile's depth trail, already projected.
type TrailSample struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// SpawnExhaust creates a particle at the engine nozzle of a craft centred on
// (x, y), jittered horizontally across 30% of its width.
func SpawnExhaust(r Rand, x, y, width, height float64) TrailParticle {
	return TrailParticle{
		X:     x + (r.Float64()-0.5)*width*0.3,
		Y:     y + height*0.45,
		Alpha: 1.0,
		Size:  randRange(r, 2.5, 3.5),
	}
}

// pushTrail appends p and evicts the oldest particle once the trail exceeds max.
func pushTrail(trail []TrailParticle, p TrailParticle, max int) []TrailParticle {
	trail = append(trail, p)
	if len(trail) > max {
		n := copy(trail, trail[1:])
		trail = trail[:n]
	}
	return trail
}

// fadeTrail decays every particle by fade and drops the ones that went dark.
func fadeTrail(trail []TrailParticle, fade float64) []TrailParticle {
	kept := trail[:0]
	for _, p := range trail {
		p.Alpha -= fade
		if p.Alpha > 0 {
			kept = append(kept, p)
		}
	}
	return kept
}
