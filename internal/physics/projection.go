package physics

// Projector maps points in the pseudo-3D star field onto the screen.
// The camera looks down +Z; depth shrinks as a point approaches the viewer.
type Projector struct {
	VanishingX float64 // Screen point where depth converges
	VanishingY float64
	Factor     float64 // Perspective factor: scale = Factor / z
	BaseSize   float64 // Size of an object at scale 1
	MaxScale   float64 // Projections with a larger scale are rejected
}

// Projection is a projected point.
type Projection struct {
	X, Y  float64 // Screen position
	Size  float64 // BaseSize * Scale
	Scale float64
}

// Project maps a world point at depth z onto the screen.
// Returns false when z <= 0 (at or behind the camera) or the scale exceeds MaxScale.
func (p Projector) Project(worldX, worldY, z float64) (Projection, bool) {
	if z <= 0 {
		return Projection{}, false
	}
	scale := p.Factor / z
	if p.MaxScale > 0 && scale > p.MaxScale {
		return Projection{}, false
	}
	return Projection{
		X:     p.VanishingX + worldX*scale,
		Y:     p.VanishingY + worldY*scale,
		Size:  p.BaseSize * scale,
		Scale: scale,
	}, true
}

// Unproject is the inverse of Project at depth z: it returns the world point
// that projects onto (screenX, screenY). z must be positive.
func (p Projector) Unproject(screenX, screenY, z float64) (worldX, worldY float64) {
	inv := z / p.Factor
	return (screenX - p.VanishingX) * inv, (screenY - p.VanishingY) * inv
}
