// Package engine owns the simulation state and drives one tick at a
// time. A Sim is single-writer: the external frame loop calls Step with
// a wall-clock delta, then reads a Snapshot for rendering. Pausing is
// the driver simply not calling Step; simulation time only advances
// inside Step, so escape and fade timers stay aligned with running time
// rather than wall time.
package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ringfall/core"
	"github.com/lixenwraith/ringfall/parameter"
	"github.com/lixenwraith/ringfall/physics"
	"github.com/lixenwraith/ringfall/vmath"
)

// MaxStep bounds a single tick in seconds. Larger deltas (a suspended
// or backgrounded driver) are clamped, trading simulated time for
// stability.
const MaxStep = 0.033

const (
	// wallSeparation is the resting clearance below the ring wall
	wallSeparation = 0.1
	// minImpactSpeed filters micro-contact speeds from reflection
	minImpactSpeed = 0.05
	// seedJitterSpeed bounds the random velocity given to seed particles
	seedJitterSpeed = 25.0
	// spawnKickSpeed bounds the launch speed of spawned children
	spawnKickSpeed = 45.0
)

// Sim is one independent simulation instance. Instances share nothing;
// particle IDs are scoped to the instance.
type Sim struct {
	preset  parameter.Preset
	ring    core.Ring
	wall    physics.WallProfile
	contact physics.ContactProfile
	gap     physics.GapProfile

	particles    []*core.Particle
	now          time.Duration
	nextID       uint64
	rng          *vmath.Rand
	spawnEnabled bool

	pendingSpawns []float64 // parent radii of this tick's escapes
	impacts       []core.Impact
	statusBuf     []physics.GapStatus
}

// New builds a simulation from a preset and injected ring geometry.
// The ring radius comes from the caller (viewport sizing is not the
// core's concern) and can be reinjected later via SetRingGeometry.
// Invalid configuration fails here, never mid-run.
func New(preset parameter.Preset, center vmath.Vec2, radius float64, seed uint64) (*Sim, error) {
	if err := preset.Validate(radius); err != nil {
		return nil, fmt.Errorf("ringfall: %w", err)
	}
	s := &Sim{
		preset: preset,
		ring: core.Ring{
			Center:    center,
			Radius:    radius,
			GapLength: preset.GapFraction * vmath.Tau,
		},
		wall: physics.WallProfile{
			Restitution:    preset.WallRestitution,
			Damping:        preset.WallDamping,
			Separation:     wallSeparation,
			MinImpactSpeed: minImpactSpeed,
		},
		contact: physics.ContactProfile{Restitution: preset.BallRestitution},
		gap: physics.GapProfile{
			Padding:    preset.GapPadding,
			NearMargin: preset.NearGapMargin,
			Tolerance:  preset.EscapeTolerance,
			Debounce:   preset.EscapeDebounceTicks,
			Grace:      preset.ExitGrace,
		},
		rng:          vmath.NewRand(seed),
		spawnEnabled: true,
	}
	s.particles = append(s.particles, s.newSeed(preset.InitialRadius))
	return s, nil
}

// Step advances the simulation by dt seconds under the given gravity
// acceleration vector. Tick order: gap rotation, integration, escape
// classification, ring resolution, pairwise resolution, lifecycle.
func (s *Sim) Step(dt float64, gravity vmath.Vec2) {
	if dt <= 0 {
		return
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	s.now += time.Duration(dt * float64(time.Second))
	s.ring.Rotate(s.preset.RotationSpeed * dt)

	for _, p := range s.particles {
		physics.Integrate(p, gravity, s.preset.Drag, dt)
	}

	// Escape classification, with the per-particle status kept for the
	// ring phase below
	s.statusBuf = s.statusBuf[:0]
	for _, p := range s.particles {
		var st physics.GapStatus
		if p.Active() {
			st = physics.ClassifyGap(p, &s.ring, &s.gap, s.now)
			if st.Escape {
				s.markEscaped(p)
			}
		}
		s.statusBuf = append(s.statusBuf, st)
	}

	// Ring resolution for particles that are active, clear of the gap
	// core, and not inside an exit grace window
	for i, p := range s.particles {
		if !p.Active() || s.statusBuf[i].InCore || s.now < p.ExitGraceUntil {
			continue
		}
		if speed, hit := physics.ResolveRing(p, &s.ring, &s.wall); hit {
			s.impacts = append(s.impacts, core.Impact{
				Kind:       core.ImpactWall,
				ParticleID: p.ID,
				Pos:        p.Pos,
				Intensity:  speed,
			})
		}
	}

	physics.ResolvePairs(s.particles, &s.contact)

	s.applyLifecycle()
}

// markEscaped performs the single ACTIVE -> ESCAPED transition and
// queues the spawn request for end-of-tick processing.
func (s *Sim) markEscaped(p *core.Particle) {
	p.Escaped = true
	p.EscapedAt = s.now
	p.Opacity = 1
	s.impacts = append(s.impacts, core.Impact{
		Kind:       core.ImpactEscape,
		ParticleID: p.ID,
		Pos:        p.Pos,
		Intensity:  p.Vel.Length(),
	})
	s.pendingSpawns = append(s.pendingSpawns, p.Radius)
}

// Snapshot returns a deep copy of the renderable state. The caller may
// hold or mutate it freely.
func (s *Sim) Snapshot() core.Snapshot {
	snap := core.Snapshot{
		Time:      s.now,
		Ring:      s.ring,
		Particles: make([]core.Particle, len(s.particles)),
	}
	for i, p := range s.particles {
		cp := *p
		cp.Trail = p.Trail.Clone()
		snap.Particles[i] = cp
	}
	return snap
}

// DrainImpacts returns the impact events accumulated since the last
// drain and clears the feed.
func (s *Sim) DrainImpacts() []core.Impact {
	out := s.impacts
	s.impacts = nil
	return out
}

// Reset clears all particles and reseeds one at the ring center.
// seedRadius <= 0 falls back to the preset's initial radius. The
// simulation clock keeps running; only the particle population resets.
func (s *Sim) Reset(seedRadius float64) {
	if seedRadius <= 0 {
		seedRadius = s.preset.InitialRadius
	}
	s.particles = s.particles[:0]
	s.pendingSpawns = s.pendingSpawns[:0]
	s.impacts = nil
	s.spawnEnabled = true
	s.particles = append(s.particles, s.newSeed(seedRadius))
}

// SetRingGeometry reinjects boundary geometry, typically after a
// viewport resize. Particles left outside the new wall are recaptured
// by the next tick's ring resolution.
func (s *Sim) SetRingGeometry(center vmath.Vec2, radius float64) error {
	if radius <= 0 {
		return fmt.Errorf("ringfall: ring radius %v must be positive", radius)
	}
	s.ring.Center = center
	s.ring.Radius = radius
	return nil
}

// Now returns the simulation clock, which advances only inside Step.
func (s *Sim) Now() time.Duration {
	return s.now
}

// Population returns the total particle count including fading ones.
func (s *Sim) Population() int {
	return len(s.particles)
}

// SpawnEnabled reports the spawn throttle gate.
func (s *Sim) SpawnEnabled() bool {
	return s.spawnEnabled
}

func (s *Sim) newParticle(radius float64, pos, vel vmath.Vec2) *core.Particle {
	s.nextID++
	return &core.Particle{
		ID:     s.nextID,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Trail:  core.NewTrail(s.preset.TrailLength),
	}
}

func (s *Sim) newSeed(radius float64) *core.Particle {
	vel := vmath.FromPolar(s.rng.Range(0, vmath.Tau), s.rng.Range(0, seedJitterSpeed))
	return s.newParticle(radius, s.ring.Center, vel)
}
