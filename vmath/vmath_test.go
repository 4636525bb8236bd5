package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"Zero", 0, 0},
		{"Inside range", 1.5, 1.5},
		{"Exactly tau", Tau, 0},
		{"Just below tau", Tau - 1e-12, Tau - 1e-12},
		{"Negative quarter", -math.Pi / 2, 3 * math.Pi / 2},
		{"Large positive", 100 * Tau, 0},
		{"Large positive offset", 100*Tau + 1, 1},
		{"Large negative", -100 * Tau, 0},
		{"Large negative offset", -100*Tau - 1, Tau - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAngle(tt.angle)
			if got < 0 || got >= Tau {
				t.Errorf("WrapAngle(%v) = %v, outside [0, Tau)", tt.angle, got)
			}
			// Circular distance: float rounding of many-turn inputs may
			// legitimately land just below Tau instead of just above 0
			if d := math.Abs(AngleDiff(got, tt.want)); d > 1e-6 {
				t.Errorf("WrapAngle(%v) = %v, want %v (circular distance %v)", tt.angle, got, tt.want, d)
			}
		})
	}
}

func TestWrapAngleRangeInvariant(t *testing.T) {
	// Sweep a wide range including many full turns in both directions
	for a := -1000.0; a <= 1000.0; a += 0.37 {
		got := WrapAngle(a)
		if got < 0 || got >= Tau {
			t.Fatalf("WrapAngle(%v) = %v, outside [0, Tau)", a, got)
		}
	}
}

func TestAngleInArc(t *testing.T) {
	deg := func(d float64) float64 { return d * math.Pi / 180 }

	tests := []struct {
		name     string
		angle    float64
		arcStart float64
		arcLen   float64
		want     bool
	}{
		{"Simple inside", deg(45), 0, math.Pi / 2, true},
		{"Simple outside", deg(180), 0, math.Pi / 2, false},
		{"At start", 0, 0, math.Pi / 2, true},
		{"At end", math.Pi / 2, 0, math.Pi / 2, true},
		{"Wrapping inside high", deg(350), deg(315), deg(90), true},
		{"Wrapping inside low", deg(10), deg(315), deg(90), true},
		{"Wrapping outside", deg(180), deg(315), deg(90), false},
		{"Negative angle input", -deg(10), deg(315), deg(90), true},
		{"Negative arc start", deg(10), -deg(45), deg(90), true},
		{"Zero length", deg(10), deg(10), 0, false},
		{"Full circle", deg(123), deg(7), Tau, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleInArc(tt.angle, tt.arcStart, tt.arcLen)
			if got != tt.want {
				t.Errorf("AngleInArc(%v, %v, %v) = %v, want %v",
					tt.angle, tt.arcStart, tt.arcLen, got, tt.want)
			}
		})
	}
}

func TestAngleDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"Same angle", 1, 1, 0},
		{"Quarter ahead", 0, math.Pi / 2, math.Pi / 2},
		{"Across wrap", Tau - 0.1, 0.1, 0.2},
		{"Across wrap backwards", 0.1, Tau - 0.1, -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleDiff(tt.from, tt.to)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleDiff(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}.Normalize()
	if math.Abs(v.Length()-1) > eps {
		t.Errorf("normalized length = %v, want 1", v.Length())
	}
	zero := Vec2{}.Normalize()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("zero vector normalized to %v, want zero", zero)
	}
}

func TestVec2Reflect(t *testing.T) {
	// Velocity heading straight into a wall with normal +X reverses X only
	v := Vec2{5, 2}.Reflect(Vec2{1, 0})
	if math.Abs(v.X-(-5)) > eps || math.Abs(v.Y-2) > eps {
		t.Errorf("Reflect = %v, want {-5 2}", v)
	}
}

func TestFromPolarRoundTrip(t *testing.T) {
	for a := 0.0; a < Tau; a += 0.19 {
		v := FromPolar(a, 2.5)
		if math.Abs(v.Length()-2.5) > eps {
			t.Fatalf("FromPolar(%v) length = %v", a, v.Length())
		}
		if math.Abs(AngleDiff(v.Angle(), a)) > 1e-9 {
			t.Fatalf("FromPolar(%v).Angle() = %v", a, v.Angle())
		}
	}
}

func TestRandDeterminism(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequence diverged at draw %d", i)
		}
	}
}

func TestRandFloat64Range(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, outside [0,1)", f)
		}
	}
}

func TestRandZeroSeed(t *testing.T) {
	r := NewRand(0)
	if r.Next() == 0 {
		t.Error("zero seed must be remapped, xorshift sticks at zero")
	}
}
