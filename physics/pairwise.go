package physics

import (
	"github.com/lixenwraith/ringfall/core"
	"github.com/lixenwraith/ringfall/vmath"
)

// ContactProfile is the particle-vs-particle contact tuning.
type ContactProfile struct {
	Restitution float64
}

// ResolvePairs runs one exhaustive pass over all unordered pairs of
// active particles. A single pass does not settle every simultaneous
// multi-body overlap; residual overlap shrinks over subsequent ticks,
// which is acceptable at the densities the population cap allows.
// Returns the number of contacts resolved.
func ResolvePairs(particles []*core.Particle, prof *ContactProfile) int {
	contacts := 0
	for i := 0; i < len(particles); i++ {
		a := particles[i]
		if a.Escaped {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			b := particles[j]
			if b.Escaped {
				continue
			}
			if resolvePair(a, b, prof.Restitution) {
				contacts++
			}
		}
	}
	return contacts
}

// resolvePair separates one overlapping pair symmetrically and applies
// the equal-mass elastic impulse when the pair is approaching.
func resolvePair(a, b *core.Particle, restitution float64) bool {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	sum := a.Radius + b.Radius
	if dist >= sum {
		return false
	}

	if dist < minNormalDist {
		// Coincident centers give no contact direction; push along a
		// fixed axis rather than divide by zero.
		delta = vmath.Vec2{X: 1}
		dist = 1
	}
	n := delta.Scale(1 / dist)

	// Half-overlap correction each, symmetric and order-independent.
	half := (sum - dist) / 2
	a.Pos = a.Pos.Sub(n.Scale(half))
	b.Pos = b.Pos.Add(n.Scale(half))

	// Impulse only when approaching, so settled contacts stay settled.
	vn := b.Vel.Sub(a.Vel).Dot(n)
	if vn < 0 {
		imp := n.Scale(-(1 + restitution) * vn / 2)
		a.Vel = a.Vel.Sub(imp)
		b.Vel = b.Vel.Add(imp)
	}
	return true
}
