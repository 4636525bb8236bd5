package vmath

import "math"

// Tau is a full turn in radians
const Tau = 2 * math.Pi

// WrapAngle reduces any angle to the canonical [0, Tau) range.
// Correct for large magnitude and negative inputs; math.Mod keeps the
// sign of the dividend, so negative remainders need one correction step.
func WrapAngle(angle float64) float64 {
	a := math.Mod(angle, Tau)
	if a < 0 {
		a += Tau
	}
	return a
}

// AngleInArc reports whether angle lies on the arc starting at arcStart
// spanning arcLen radians counter-clockwise. The arc may wrap past Tau,
// which splits the test into [start, Tau) and [0, end-Tau].
func AngleInArc(angle, arcStart, arcLen float64) bool {
	if arcLen <= 0 {
		return false
	}
	if arcLen >= Tau {
		return true
	}
	a := WrapAngle(angle)
	start := WrapAngle(arcStart)
	end := start + arcLen
	if end <= Tau {
		return a >= start && a <= end
	}
	return a >= start || a <= end-Tau
}

// AngleDiff returns the shortest signed difference from one angle to
// another, in [-Tau/2, Tau/2].
func AngleDiff(from, to float64) float64 {
	d := WrapAngle(to) - WrapAngle(from)
	if d > Tau/2 {
		d -= Tau
	} else if d < -Tau/2 {
		d += Tau
	}
	return d
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates linearly between a and b by t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
