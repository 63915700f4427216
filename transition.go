package swarm

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// transitionDir is the direction of travel of a transition.
type transitionDir uint8

const (
	dirAssemble transitionDir = iota
	dirDisassemble
)

// transition is the ephemeral record of one slot's in-flight motion.
// Exactly one slot owns it at a time; a newly requested transition
// force-resolves the previous one before taking its place (last caller
// wins, no queueing).
type transition struct {
	dir  transitionDir
	edge Edge

	// progress tracks the nominal duration. The duration is a minimum, not
	// an exact contract: completion additionally requires every particle
	// to have physically settled.
	progress    *gween.Tween
	nominalDone bool

	// done unblocks waiters. Closed exactly once, either on settle or when
	// the transition is superseded or hard-reset.
	done     chan struct{}
	resolved bool
}

// TransitionOption adjusts a single Assemble or Disassemble call.
type TransitionOption func(*transitionParams)

type transitionParams struct {
	duration time.Duration
}

// WithDuration overrides the default minimum duration for one transition.
func WithDuration(d time.Duration) TransitionOption {
	return func(p *transitionParams) {
		p.duration = d
	}
}

// newTransition creates a transition with the given minimum duration in
// seconds.
func newTransition(dir transitionDir, edge Edge, duration float64) *transition {
	if duration < 0 {
		duration = 0
	}
	return &transition{
		dir:      dir,
		edge:     edge,
		progress: gween.New(0, 1, float32(duration), ease.Linear),
		done:     make(chan struct{}),
	}
}

// advance moves the nominal-duration clock forward by dt seconds.
func (t *transition) advance(dt float64) {
	if t.nominalDone {
		return
	}
	_, finished := t.progress.Update(float32(dt))
	t.nominalDone = finished
}

// resolve unblocks all waiters. Safe to call more than once; interrupted
// waiters observe success, not failure.
func (t *transition) resolve() {
	if t.resolved {
		return
	}
	t.resolved = true
	close(t.done)
}

// settled reports whether every particle is within the position and speed
// thresholds of its target.
func settled(particles []Particle, t TransitionTuning) bool {
	maxDistSq := t.SettleDistance * t.SettleDistance
	maxSpeedSq := t.SettleSpeed * t.SettleSpeed
	for i := range particles {
		p := &particles[i]
		dx := p.TX - p.X
		dy := p.TY - p.Y
		if dx*dx+dy*dy > maxDistSq {
			return false
		}
		if p.VX*p.VX+p.VY*p.VY > maxSpeedSq {
			return false
		}
	}
	return true
}

// seedAssemble places every particle at a randomized point along the
// slot's off-screen edge with lateral jitter and an initial velocity bias
// toward the viewport. Targets stay at the sampled positions.
func seedAssemble(s *Slot, viewW, viewH float64, t TransitionTuning) {
	for i := range s.particles {
		// Targets keep their sampled positions; only the starting point and
		// velocity are randomized.
		p := &s.particles[i]
		switch s.edge {
		case EdgeTop:
			p.X = p.TX + Range{-t.Jitter, t.Jitter}.Random()
			p.Y = -Range{0, s.rect.Height}.Random() - t.SpawnMargin
			p.VX = Range{-t.VelocityBias / 2, t.VelocityBias / 2}.Random()
			p.VY = Range{0, t.VelocityBias}.Random()
		case EdgeBottom:
			p.X = p.TX + Range{-t.Jitter, t.Jitter}.Random()
			p.Y = viewH + Range{0, s.rect.Height}.Random() + t.SpawnMargin
			p.VX = Range{-t.VelocityBias / 2, t.VelocityBias / 2}.Random()
			p.VY = -Range{0, t.VelocityBias}.Random()
		case EdgeLeft:
			p.X = -Range{0, s.rect.Width}.Random() - t.SpawnMargin
			p.Y = p.TY + Range{-t.Jitter, t.Jitter}.Random()
			p.VX = Range{0, t.VelocityBias}.Random()
			p.VY = Range{-t.VelocityBias / 2, t.VelocityBias / 2}.Random()
		case EdgeRight:
			p.X = viewW + Range{0, s.rect.Width}.Random() + t.SpawnMargin
			p.Y = p.TY + Range{-t.Jitter, t.Jitter}.Random()
			p.VX = -Range{0, t.VelocityBias}.Random()
			p.VY = Range{-t.VelocityBias / 2, t.VelocityBias / 2}.Random()
		}
	}
}

// seedDisassemble reseeds every particle's target to a randomized
// off-screen point along the edge and perturbs (not resets) position and
// velocity, so the motion reads as dispersal rather than teleport.
func seedDisassemble(s *Slot, viewW, viewH float64, t TransitionTuning) {
	for i := range s.particles {
		p := &s.particles[i]
		switch s.edge {
		case EdgeTop:
			p.TX = p.X + Range{-t.Jitter, t.Jitter}.Random()
			p.TY = -Range{0, s.rect.Height}.Random() - t.SpawnMargin
			p.VY -= Range{0, t.VelocityBias}.Random()
		case EdgeBottom:
			p.TX = p.X + Range{-t.Jitter, t.Jitter}.Random()
			p.TY = viewH + Range{0, s.rect.Height}.Random() + t.SpawnMargin
			p.VY += Range{0, t.VelocityBias}.Random()
		case EdgeLeft:
			p.TX = -Range{0, s.rect.Width}.Random() - t.SpawnMargin
			p.TY = p.Y + Range{-t.Jitter, t.Jitter}.Random()
			p.VX -= Range{0, t.VelocityBias}.Random()
		case EdgeRight:
			p.TX = viewW + Range{0, s.rect.Width}.Random() + t.SpawnMargin
			p.TY = p.Y + Range{-t.Jitter, t.Jitter}.Random()
			p.VX += Range{0, t.VelocityBias}.Random()
		}
		p.VX += Range{-t.VelocityBias / 2, t.VelocityBias / 2}.Random()
	}
}
