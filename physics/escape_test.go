package physics

import (
	"testing"
	"time"

	"github.com/lixenwraith/ringfall/core"
	"github.com/lixenwraith/ringfall/vmath"
)

func testGap() *GapProfile {
	return &GapProfile{
		Padding:    0.02,
		NearMargin: 0.06,
		Tolerance:  0.5,
		Debounce:   2,
		Grace:      120 * time.Millisecond,
	}
}

// gapRing returns a ring with its gap centered on angle 0
func gapRing() *core.Ring {
	length := 0.9
	return &core.Ring{
		Radius:    100,
		GapStart:  vmath.WrapAngle(-length / 2),
		GapLength: length,
	}
}

// escapingParticle sits past the rim in the middle of the gap, moving
// outward: the raw escape predicate holds every tick.
func escapingParticle() *core.Particle {
	return &core.Particle{
		Pos:    vmath.Vec2{X: 112},
		Vel:    vmath.Vec2{X: 30},
		Radius: 10,
	}
}

func TestClassifyGapEscapeDebounce(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	p := escapingParticle()

	st := ClassifyGap(p, ring, prof, 0)
	if !st.InCore {
		t.Fatal("particle in gap center not classified InCore")
	}
	if st.Escape {
		t.Fatal("escape fired on first qualifying tick, debounce is 2")
	}
	if p.GapOutsideTicks != 1 {
		t.Fatalf("GapOutsideTicks = %d, want 1", p.GapOutsideTicks)
	}

	st = ClassifyGap(p, ring, prof, 16*time.Millisecond)
	if !st.Escape {
		t.Fatal("escape must fire on the second consecutive qualifying tick")
	}
}

func TestClassifyGapDebounceReset(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	p := escapingParticle()

	ClassifyGap(p, ring, prof, 0)

	// One disqualifying tick (inward motion) resets the counter
	p.Vel = vmath.Vec2{X: -30}
	ClassifyGap(p, ring, prof, 16*time.Millisecond)
	if p.GapOutsideTicks != 0 {
		t.Fatalf("GapOutsideTicks = %d, want reset to 0", p.GapOutsideTicks)
	}

	// Qualifying again starts over, no escape yet
	p.Vel = vmath.Vec2{X: 30}
	st := ClassifyGap(p, ring, prof, 32*time.Millisecond)
	if st.Escape {
		t.Error("escape fired without the debounce run restarting")
	}
}

func TestClassifyGapRequiresFullyOutside(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	// In the gap direction and outbound, but the body still straddles
	// the rim: dist - r < R + tolerance.
	p := &core.Particle{Pos: vmath.Vec2{X: 105}, Vel: vmath.Vec2{X: 30}, Radius: 10}

	ClassifyGap(p, ring, prof, 0)
	ClassifyGap(p, ring, prof, 16*time.Millisecond)
	ClassifyGap(p, ring, prof, 32*time.Millisecond)
	if p.GapOutsideTicks != 0 {
		t.Errorf("GapOutsideTicks = %d, straddling particle must not accumulate", p.GapOutsideTicks)
	}
}

func TestClassifyGapPaddingShrinksCore(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	// Angle just inside the raw gap edge, inside the padding band: the
	// body would clip the wall, so the core window must exclude it.
	// pad = atan2(10, 100) + 0.02 ≈ 0.12, so the core half-window is
	// roughly 0.33 rad and the near band roughly 0.39 rad
	edge := 0.35
	p := &core.Particle{Pos: vmath.FromPolar(edge, 112), Vel: vmath.FromPolar(edge, 30), Radius: 10}

	st := ClassifyGap(p, ring, prof, 0)
	if st.InCore {
		t.Error("padding band at the gap edge classified InCore")
	}
	if !st.NearGap {
		t.Error("gap edge must still fall in the near band")
	}
}

func TestClassifyGapWrappingGap(t *testing.T) {
	// Gap straddling the 0/Tau seam with the particle on the far side
	ring := gapRing() // GapStart already wraps below Tau
	prof := testGap()
	p := &core.Particle{Pos: vmath.FromPolar(-0.2, 112), Vel: vmath.FromPolar(-0.2, 30), Radius: 10}

	st := ClassifyGap(p, ring, prof, 0)
	if !st.InCore {
		t.Error("particle on the wrapped side of the gap not InCore")
	}
}

func TestClassifyGapArmsGrace(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	now := 500 * time.Millisecond

	// Near the gap, center past R - r: mostly through the wall
	p := &core.Particle{Pos: vmath.Vec2{X: 95}, Vel: vmath.Vec2{X: 30}, Radius: 10}
	ClassifyGap(p, ring, prof, now)
	if p.ExitGraceUntil != now+prof.Grace {
		t.Errorf("ExitGraceUntil = %v, want %v", p.ExitGraceUntil, now+prof.Grace)
	}

	// A later classification extends, never shortens
	later := now + 50*time.Millisecond
	ClassifyGap(p, ring, prof, later)
	if p.ExitGraceUntil != later+prof.Grace {
		t.Errorf("ExitGraceUntil = %v, want extended to %v", p.ExitGraceUntil, later+prof.Grace)
	}
}

func TestClassifyGapDeepInsideNoGrace(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	// Gap direction but well inside the ring: no grace, no core effects
	p := &core.Particle{Pos: vmath.Vec2{X: 40}, Vel: vmath.Vec2{X: 30}, Radius: 10}

	ClassifyGap(p, ring, prof, time.Second)
	if p.ExitGraceUntil != 0 {
		t.Errorf("ExitGraceUntil = %v, interior particle must not arm grace", p.ExitGraceUntil)
	}
}

func TestClassifyGapAwayFromGap(t *testing.T) {
	ring := gapRing()
	prof := testGap()
	// Opposite side of the ring, pressed against the wall outbound
	p := &core.Particle{Pos: vmath.Vec2{X: -112}, Vel: vmath.Vec2{X: -30}, Radius: 10}

	st := ClassifyGap(p, ring, prof, 0)
	if st.InCore || st.NearGap || st.Escape {
		t.Errorf("status = %+v, want all false away from the gap", st)
	}
}
