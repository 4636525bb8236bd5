// Package physics implements the per-tick numerics: explicit Euler
// integration, ring and pairwise contact resolution, and gap/escape
// classification. Functions mutate particles in place and carry no
// state of their own; profiles bundle the tuning each resolver needs.
package physics

import (
	"github.com/lixenwraith/ringfall/core"
	"github.com/lixenwraith/ringfall/vmath"
)

// minNormalDist guards normal computation against coincident centers.
const minNormalDist = 1e-9

// Integrate advances one particle by dt seconds: gravity into velocity,
// explicit Euler position step, optional linear drag, then a trail
// sample. dt is assumed clamped by the caller.
func Integrate(p *core.Particle, gravity vmath.Vec2, drag, dt float64) {
	p.Vel = p.Vel.Add(gravity.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	if drag > 0 {
		p.Vel = p.Vel.Scale(1 - drag)
	}
	p.Trail.Push(core.TrailPoint{X: p.Pos.X, Y: p.Pos.Y, R: p.Radius})
}
