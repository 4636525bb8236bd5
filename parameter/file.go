package parameter

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// presetFile is the YAML shape of a preset. Timer fields are integer
// milliseconds in the file; everything else maps 1:1 onto Preset.
// Fields left out of the file keep the base preset's value.
type presetFile struct {
	Base string `yaml:"base"` // built-in preset to start from, default classic

	Name                *string  `yaml:"name"`
	InitialRadius       *float64 `yaml:"initial_radius"`
	MinRadius           *float64 `yaml:"min_radius"`
	ShrinkFactor        *float64 `yaml:"shrink_factor"`
	GapFraction         *float64 `yaml:"gap_fraction"`
	RotationSpeed       *float64 `yaml:"rotation_speed"`
	Gravity             *float64 `yaml:"gravity"`
	Drag                *float64 `yaml:"drag"`
	WallRestitution     *float64 `yaml:"wall_restitution"`
	BallRestitution     *float64 `yaml:"ball_restitution"`
	WallDamping         *float64 `yaml:"wall_damping"`
	PopulationCap       *int     `yaml:"population_cap"`
	SpawnHighWater      *int     `yaml:"spawn_high_water"`
	SpawnLowWater       *int     `yaml:"spawn_low_water"`
	GapPadding          *float64 `yaml:"gap_padding"`
	NearGapMargin       *float64 `yaml:"near_gap_margin"`
	EscapeTolerance     *float64 `yaml:"escape_tolerance"`
	EscapeDebounceTicks *int     `yaml:"escape_debounce_ticks"`
	ExitGraceMs         *int     `yaml:"exit_grace_ms"`
	FadeDelayMs         *int     `yaml:"fade_delay_ms"`
	FadeDurationMs      *int     `yaml:"fade_duration_ms"`
	TrailLength         *int     `yaml:"trail_length"`
}

// Load parses a YAML preset overlay. The file names a built-in base
// preset and overrides individual fields.
func Load(data []byte) (Preset, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Preset{}, fmt.Errorf("parse preset: %w", err)
	}

	p, err := ByName(f.Base)
	if err != nil {
		return Preset{}, err
	}

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	if f.Name != nil {
		p.Name = *f.Name
	}
	setF(&p.InitialRadius, f.InitialRadius)
	setF(&p.MinRadius, f.MinRadius)
	setF(&p.ShrinkFactor, f.ShrinkFactor)
	setF(&p.GapFraction, f.GapFraction)
	setF(&p.RotationSpeed, f.RotationSpeed)
	setF(&p.Gravity, f.Gravity)
	setF(&p.Drag, f.Drag)
	setF(&p.WallRestitution, f.WallRestitution)
	setF(&p.BallRestitution, f.BallRestitution)
	setF(&p.WallDamping, f.WallDamping)
	setI(&p.PopulationCap, f.PopulationCap)
	setI(&p.SpawnHighWater, f.SpawnHighWater)
	setI(&p.SpawnLowWater, f.SpawnLowWater)
	setF(&p.GapPadding, f.GapPadding)
	setF(&p.NearGapMargin, f.NearGapMargin)
	setF(&p.EscapeTolerance, f.EscapeTolerance)
	setI(&p.EscapeDebounceTicks, f.EscapeDebounceTicks)
	if f.ExitGraceMs != nil {
		p.ExitGrace = msToDuration(*f.ExitGraceMs)
	}
	if f.FadeDelayMs != nil {
		p.FadeDelay = msToDuration(*f.FadeDelayMs)
	}
	if f.FadeDurationMs != nil {
		p.FadeDuration = msToDuration(*f.FadeDurationMs)
	}
	setI(&p.TrailLength, f.TrailLength)

	return p, nil
}

// LoadFile reads and parses a YAML preset overlay from disk.
func LoadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset file: %w", err)
	}
	return Load(data)
}
