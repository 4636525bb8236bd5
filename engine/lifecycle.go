package engine

import "github.com/lixenwraith/ringfall/vmath"

// applyLifecycle is the end-of-tick state machine pass: queued spawns,
// fade progression, removal of fully faded particles, spawn gate
// hysteresis, and the population floor.
func (s *Sim) applyLifecycle() {
	s.updateSpawnGate()
	for _, parentRadius := range s.pendingSpawns {
		s.spawnChildren(parentRadius)
	}
	s.pendingSpawns = s.pendingSpawns[:0]

	s.updateFades()
	s.cull()
	s.updateSpawnGate()

	// Population floor is unconditional, independent of the spawn gate
	if len(s.particles) == 0 {
		s.particles = append(s.particles, s.newSeed(s.preset.InitialRadius))
	}
}

// spawnChildren creates exactly two children for one escape, or none at
// all: disallowed spawns (gate closed, cap reached, children too small)
// are dropped silently as steady-state behavior, not an error.
func (s *Sim) spawnChildren(parentRadius float64) {
	if !s.spawnEnabled {
		return
	}
	if len(s.particles)+2 > s.preset.PopulationCap {
		return
	}
	radius := parentRadius * s.preset.ShrinkFactor
	if radius < s.preset.MinRadius {
		return
	}

	// Mirrored position and velocity jitter: the pair never coincides
	// and carries no net momentum.
	offset := vmath.FromPolar(s.rng.Range(0, vmath.Tau), s.rng.Range(radius/2, radius))
	kick := vmath.FromPolar(s.rng.Range(0, vmath.Tau), s.rng.Range(spawnKickSpeed/3, spawnKickSpeed))

	s.particles = append(s.particles,
		s.newParticle(radius, s.ring.Center.Add(offset), kick),
		s.newParticle(radius, s.ring.Center.Sub(offset), kick.Scale(-1)),
	)
}

// updateFades advances opacity for escaped particles: full opacity
// through the fade delay, then linear decay to zero over the fade
// duration.
func (s *Sim) updateFades() {
	for _, p := range s.particles {
		if !p.Escaped {
			continue
		}
		elapsed := s.now - p.EscapedAt
		switch {
		case elapsed <= s.preset.FadeDelay:
			p.Opacity = 1
		case elapsed >= s.preset.FadeDelay+s.preset.FadeDuration:
			p.Opacity = 0
		default:
			p.Opacity = 1 - float64(elapsed-s.preset.FadeDelay)/float64(s.preset.FadeDuration)
		}
	}
}

// cull rebuilds the particle list without fully faded entries. The
// filtered rebuild removes any number of particles in one pass with no
// index bookkeeping to corrupt.
func (s *Sim) cull() {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Escaped && p.Opacity <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = kept
}

// updateSpawnGate applies the hysteresis band: the gate closes at the
// high-water mark and reopens only once the active population falls to
// the low-water mark, so spawning cannot run away exponentially but the
// tank still refills after a collapse.
func (s *Sim) updateSpawnGate() {
	active := 0
	for _, p := range s.particles {
		if p.Active() {
			active++
		}
	}
	switch {
	case active >= s.preset.SpawnHighWater:
		s.spawnEnabled = false
	case active <= s.preset.SpawnLowWater:
		s.spawnEnabled = true
	}
}
