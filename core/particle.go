package core

import (
	"time"

	"github.com/lixenwraith/ringfall/vmath"
)

// Particle is one circular body inside the ring. Position and velocity
// are mutated every tick by the integrator and resolvers; Radius is
// fixed for the particle's whole life (children get their own, smaller
// radius at spawn).
type Particle struct {
	ID     uint64
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64

	// Escape lifecycle. EscapedAt is simulation time, valid only while
	// Escaped is set; it is written exactly once. Opacity is meaningful
	// only after escape and decays 1 -> 0 over the fade window.
	Escaped   bool
	EscapedAt time.Duration
	Opacity   float64

	// GapOutsideTicks counts consecutive ticks the particle satisfied
	// the escape predicate; escape fires only once it reaches the
	// configured debounce threshold.
	GapOutsideTicks int

	// ExitGraceUntil suppresses ring collision while simulation time is
	// before it, so a particle legitimately leaving through the gap is
	// not re-captured by one frame of boundary oscillation.
	ExitGraceUntil time.Duration

	Trail Trail
}

// Active reports whether the particle still participates in boundary
// physics and can trigger spawns.
func (p *Particle) Active() bool {
	return !p.Escaped
}
