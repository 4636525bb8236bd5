package core

import "github.com/lixenwraith/ringfall/vmath"

// Ring is the rotating annular boundary. The gap is the arc of length
// GapLength starting at GapStart (radians, counter-clockwise) where the
// wall is open.
type Ring struct {
	Center    vmath.Vec2
	Radius    float64
	GapStart  float64
	GapLength float64
}

// Rotate advances the gap start angle, wrapped to [0, Tau)
func (r *Ring) Rotate(rad float64) {
	r.GapStart = vmath.WrapAngle(r.GapStart + rad)
}
