package physics

import "github.com/lixenwraith/ringfall/core"

// WallProfile is the ring contact tuning. Typically built once per
// simulation from the active preset.
type WallProfile struct {
	Restitution    float64 // normal velocity retained after a bounce, >1 allowed
	Damping        float64 // uniform velocity factor applied after an impact
	Separation     float64 // resting clearance below the wall, keeps contacts from re-penetrating
	MinImpactSpeed float64 // normal speeds at or below this are micro-contact, not reflected
}

// ResolveRing resolves one particle against the solid ring from the
// inside. Returns the normal approach speed when a reflection occurred
// so callers can scale impact effects. The caller is responsible for
// skipping escaped, in-gap and grace-window particles.
func ResolveRing(p *core.Particle, ring *core.Ring, prof *WallProfile) (speed float64, hit bool) {
	rel := p.Pos.Sub(ring.Center)
	dist := rel.Length()
	if dist < minNormalDist {
		dist = minNormalDist
	}
	n := rel.Scale(1 / dist)

	target := ring.Radius - p.Radius - prof.Separation
	if dist <= target {
		return 0, false
	}

	// Pressing into the wall: snap back to the target radius, then
	// reflect the outward velocity component if it is a real impact.
	p.Pos = ring.Center.Add(n.Scale(target))

	vn := p.Vel.Dot(n)
	if vn <= prof.MinImpactSpeed {
		return 0, false
	}
	p.Vel = p.Vel.Sub(n.Scale((1 + prof.Restitution) * vn))
	p.Vel = p.Vel.Scale(prof.Damping)
	return vn, true
}
