package core

import (
	"time"

	"github.com/lixenwraith/ringfall/vmath"
)

// Snapshot is a read-only view of simulation state for rendering.
// Particles are deep copies; mutating a snapshot never touches the
// simulation.
type Snapshot struct {
	Time      time.Duration
	Ring      Ring
	Particles []Particle
}

// ImpactKind distinguishes the impact feed entries.
type ImpactKind uint8

const (
	ImpactWall ImpactKind = iota
	ImpactEscape
)

// Impact is a transient collision event, consumed by rendering and
// audio. Intensity scales with the normal approach speed.
type Impact struct {
	Kind       ImpactKind
	ParticleID uint64
	Pos        vmath.Vec2
	Intensity  float64
}
