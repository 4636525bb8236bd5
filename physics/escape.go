package physics

import (
	"math"
	"time"

	"github.com/lixenwraith/ringfall/core"
	"github.com/lixenwraith/ringfall/vmath"
)

// GapProfile is the escape detection tuning. Padding, NearMargin,
// Tolerance, Debounce and Grace are stability heuristics against
// single-frame jitter at the gap edges, not physical quantities.
type GapProfile struct {
	Padding    float64 // extra angular shrink of the core window, rad
	NearMargin float64 // angular expansion of the near-gap band, rad
	Tolerance  float64 // radial clearance before "fully outside" holds
	Debounce   int     // consecutive ticks required before escape fires
	Grace      time.Duration
}

// GapStatus is the per-tick classification of one particle against the
// gap. InCore means the particle must not be handled by the ring
// resolver this tick; Escape means the debounce threshold was reached.
type GapStatus struct {
	InCore  bool
	NearGap bool
	Escape  bool
}

// ClassifyGap classifies one active particle against the ring's gap and
// maintains the particle's debounce counter and exit grace window.
//
// The core window is the gap shrunk on both sides by the angular size
// of the particle (atan2(r, R)) plus Padding, so a particle only counts
// as "in the gap" once its whole body fits through, not just its
// center-line. The near band is the core window widened by NearMargin;
// a near-gap particle that is almost through the wall arms a grace
// window during which the ring resolver must leave it alone.
func ClassifyGap(p *core.Particle, ring *core.Ring, prof *GapProfile, now time.Duration) GapStatus {
	rel := p.Pos.Sub(ring.Center)
	dist := rel.Length()
	angle := rel.Angle()

	pad := math.Atan2(p.Radius, ring.Radius) + prof.Padding
	coreStart := ring.GapStart + pad
	coreLen := ring.GapLength - 2*pad

	var st GapStatus
	if coreLen > 0 {
		st.InCore = vmath.AngleInArc(angle, coreStart, coreLen)
	}
	if nearLen := coreLen + 2*prof.NearMargin; nearLen > 0 {
		st.NearGap = vmath.AngleInArc(angle, coreStart-prof.NearMargin, nearLen)
	}

	fullyOutside := dist-p.Radius >= ring.Radius+prof.Tolerance
	outward := p.Vel.Dot(rel) > 0

	if st.InCore && fullyOutside && outward {
		p.GapOutsideTicks++
		if p.GapOutsideTicks >= prof.Debounce {
			st.Escape = true
		}
	} else {
		p.GapOutsideTicks = 0
	}

	// Nearly clear: the center has passed R - r, so most of the body is
	// through the wall. Arm (or extend) the grace window.
	if st.NearGap && dist >= ring.Radius-p.Radius {
		if until := now + prof.Grace; until > p.ExitGraceUntil {
			p.ExitGraceUntil = until
		}
	}

	return st
}
