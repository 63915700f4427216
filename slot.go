package swarm

import "image"

// Particle is one live simulated body in a slot's cloud, derived 1:1 from
// a PointSample. Particles are owned exclusively by their slot and are
// never shared across slots.
type Particle struct {
	X, Y    float64 // current position
	TX, TY  float64 // target position
	VX, VY  float64 // velocity in pixels per frame
	R, G, B uint8
	Weight  float64 // sampled pixel alpha in [0, 1]
	Size    float64
}

// SlotConfig describes a slot to register.
type SlotConfig struct {
	// ID is the slot's stable identifier.
	ID SlotID
	// Source supplies the slot's image; decoded asynchronously.
	Source ImageSource
	// Rect is the target rectangle in viewport coordinates.
	Rect Rect
	// Edge is the screen edge particles enter from and exit toward.
	Edge Edge
}

// Slot is a named animatable region: one image, one rectangle, one
// particle cloud, and at most one in-flight transition. All fields are
// mutated only under the engine's lock.
type Slot struct {
	id     SlotID
	edge   Edge
	rect   Rect
	source ImageSource

	img   image.Image   // nil until decoded
	ready chan struct{} // closed once img is set

	visible    bool
	status     SlotStatus
	alpha      float64 // slot-level opacity, independent of particle weight
	particles  []Particle
	transition *transition
}

// ID returns the slot's identifier.
func (s *Slot) ID() SlotID { return s.id }

// Status returns the slot's lifecycle state.
func (s *Slot) Status() SlotStatus { return s.status }

// Alpha returns the slot-level opacity in [0, 1].
func (s *Slot) Alpha() float64 { return s.alpha }

// Visible reports whether the slot is drawn at all.
func (s *Slot) Visible() bool { return s.visible }

// Rect returns the slot's current target rectangle.
func (s *Slot) Rect() Rect { return s.rect }

// Particles returns the slot's live particle slice. The returned slice
// MUST NOT be mutated; it is re-derived whenever the image or rect change.
func (s *Slot) Particles() []Particle { return s.particles }

// Transitioning reports whether a transition is in flight.
func (s *Slot) Transitioning() bool { return s.transition != nil }

// deriveParticles re-samples the slot's image against its current rect and
// rebuilds the particle cloud from scratch. Prior positions are discarded:
// each particle starts at its target. No-op (clearing the cloud) while the
// image is undecoded or the rect is degenerate.
func (s *Slot) deriveParticles(t SamplerTuning) {
	samples := SamplePoints(s.img, s.rect, t)
	if samples == nil {
		s.particles = nil
		return
	}
	s.particles = make([]Particle, len(samples))
	for i, smp := range samples {
		s.particles[i] = Particle{
			X: smp.X, Y: smp.Y,
			TX: smp.X, TY: smp.Y,
			R: smp.R, G: smp.G, B: smp.B,
			Weight: smp.Weight,
			Size:   smp.Size,
		}
	}
}

// snapToTargets moves every particle exactly onto its target and zeroes
// velocity. Used when an assemble completes and when an assembled slot is
// re-laid-out, so a layout shift never re-animates.
func (s *Slot) snapToTargets() {
	for i := range s.particles {
		p := &s.particles[i]
		p.X = p.TX
		p.Y = p.TY
		p.VX = 0
		p.VY = 0
	}
}
