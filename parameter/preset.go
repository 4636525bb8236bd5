// Package parameter holds the simulation tuning tables. The upstream
// prototypes carried several near-identical variants with diverging
// constants; those survive here as named presets with Classic as the
// reference table.
package parameter

import (
	"errors"
	"fmt"
	"time"
)

// Preset is one complete tuning table, fixed at simulation
// construction. The stability constants (GapPadding, NearGapMargin,
// EscapeDebounceTicks, ExitGrace, tolerances) are heuristics against
// boundary jitter, not physical quantities; tune them, do not derive
// them.
type Preset struct {
	Name string `yaml:"name"`

	// Particle sizing
	InitialRadius float64 `yaml:"initial_radius"` // seed particle radius, world units
	MinRadius     float64 `yaml:"min_radius"`     // children below this are not spawned
	ShrinkFactor  float64 `yaml:"shrink_factor"`  // child radius = parent radius * factor

	// Ring and gap
	GapFraction   float64 `yaml:"gap_fraction"`   // gap length as a fraction of the full circle
	RotationSpeed float64 `yaml:"rotation_speed"` // gap angular rate, rad/s

	// Forces
	Gravity float64 `yaml:"gravity"` // magnitude, world units/s²; direction injected per step
	Drag    float64 `yaml:"drag"`    // linear velocity loss per tick, 0 disables

	// Restitution
	WallRestitution float64 `yaml:"wall_restitution"` // >1 gives the energetic push-off variant
	BallRestitution float64 `yaml:"ball_restitution"`
	WallDamping     float64 `yaml:"wall_damping"` // uniform velocity factor applied post-impact

	// Population policy
	PopulationCap  int `yaml:"population_cap"`
	SpawnHighWater int `yaml:"spawn_high_water"` // spawning disabled at this population
	SpawnLowWater  int `yaml:"spawn_low_water"`  // re-enabled once population falls to this

	// Escape stability tunables
	GapPadding          float64 `yaml:"gap_padding"`     // extra angular shrink of the core gap window, rad
	NearGapMargin       float64 `yaml:"near_gap_margin"` // angular expansion of the near-gap band, rad
	EscapeTolerance     float64 `yaml:"escape_tolerance"`
	EscapeDebounceTicks int     `yaml:"escape_debounce_ticks"`

	// Timers (simulation time)
	ExitGrace    time.Duration `yaml:"-"`
	FadeDelay    time.Duration `yaml:"-"`
	FadeDuration time.Duration `yaml:"-"`

	// Rendering support
	TrailLength int `yaml:"trail_length"`
}

// Classic is the reference table.
func Classic() Preset {
	return Preset{
		Name:                "classic",
		InitialRadius:       14,
		MinRadius:           3,
		ShrinkFactor:        0.97,
		GapFraction:         0.15,
		RotationSpeed:       0.6,
		Gravity:             420,
		Drag:                0,
		WallRestitution:     0.98,
		BallRestitution:     0.96,
		WallDamping:         0.999,
		PopulationCap:       300,
		SpawnHighWater:      20,
		SpawnLowWater:       1,
		GapPadding:          0.02,
		NearGapMargin:       0.06,
		EscapeTolerance:     0.5,
		EscapeDebounceTicks: 2,
		ExitGrace:           120 * time.Millisecond,
		FadeDelay:           1000 * time.Millisecond,
		FadeDuration:        400 * time.Millisecond,
		TrailLength:         8,
	}
}

// Lively is the energetic variant: super-elastic walls, quicker gap.
func Lively() Preset {
	p := Classic()
	p.Name = "lively"
	p.WallRestitution = 1.03
	p.BallRestitution = 0.98
	p.RotationSpeed = 1.1
	p.Gravity = 520
	return p
}

// Dense trades energy for population: softer walls, higher spawn
// headroom, smaller children.
func Dense() Preset {
	p := Classic()
	p.Name = "dense"
	p.WallRestitution = 0.95
	p.BallRestitution = 0.95
	p.ShrinkFactor = 0.96
	p.SpawnHighWater = 40
	p.InitialRadius = 10
	return p
}

// ByName resolves a built-in preset.
func ByName(name string) (Preset, error) {
	switch name {
	case "classic", "":
		return Classic(), nil
	case "lively":
		return Lively(), nil
	case "dense":
		return Dense(), nil
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// Validate checks construction-time contract violations. ringRadius is
// the boundary radius the preset will run against.
func (p Preset) Validate(ringRadius float64) error {
	if ringRadius <= 0 {
		return errors.New("ring radius must be positive")
	}
	if p.InitialRadius <= 0 {
		return errors.New("initial radius must be positive")
	}
	if p.InitialRadius >= ringRadius {
		return fmt.Errorf("initial radius %v must be smaller than ring radius %v", p.InitialRadius, ringRadius)
	}
	if p.MinRadius <= 0 || p.MinRadius > p.InitialRadius {
		return fmt.Errorf("min radius %v must be in (0, initial radius]", p.MinRadius)
	}
	if p.ShrinkFactor <= 0 || p.ShrinkFactor >= 1 {
		return fmt.Errorf("shrink factor %v must be in (0, 1)", p.ShrinkFactor)
	}
	if p.GapFraction <= 0 || p.GapFraction >= 1 {
		return fmt.Errorf("gap fraction %v must be in (0, 1)", p.GapFraction)
	}
	if p.Gravity < 0 {
		return errors.New("gravity magnitude must not be negative")
	}
	if p.Drag < 0 || p.Drag >= 1 {
		return fmt.Errorf("drag %v must be in [0, 1)", p.Drag)
	}
	if p.WallRestitution <= 0 || p.BallRestitution <= 0 {
		return errors.New("restitution coefficients must be positive")
	}
	if p.WallDamping <= 0 || p.WallDamping > 1 {
		return fmt.Errorf("wall damping %v must be in (0, 1]", p.WallDamping)
	}
	if p.PopulationCap < 1 {
		return errors.New("population cap must be at least 1")
	}
	if p.SpawnLowWater < 1 || p.SpawnHighWater <= p.SpawnLowWater {
		return fmt.Errorf("spawn watermarks %d/%d must satisfy 1 <= low < high", p.SpawnLowWater, p.SpawnHighWater)
	}
	if p.SpawnHighWater > p.PopulationCap {
		return fmt.Errorf("spawn high water %d exceeds population cap %d", p.SpawnHighWater, p.PopulationCap)
	}
	if p.EscapeDebounceTicks < 1 {
		return errors.New("escape debounce must be at least 1 tick")
	}
	if p.GapPadding < 0 || p.NearGapMargin < 0 || p.EscapeTolerance < 0 {
		return errors.New("gap padding, near-gap margin and escape tolerance must not be negative")
	}
	if p.ExitGrace < 0 || p.FadeDelay < 0 || p.FadeDuration <= 0 {
		return errors.New("exit grace and fade timers must be positive")
	}
	if p.TrailLength < 0 {
		return errors.New("trail length must not be negative")
	}
	return nil
}
