package swarm

import "testing"

func TestDeriveParticlesMatchesSamples(t *testing.T) {
	s := &Slot{
		id:   "hero",
		img:  solidImage(20, 10),
		rect: Rect{X: 100, Y: 50, Width: 20, Height: 10},
	}
	s.deriveParticles(testSamplerTuning())
	if len(s.particles) != 50 {
		t.Fatalf("particle count = %d, want 50", len(s.particles))
	}
	for i := range s.particles {
		p := &s.particles[i]
		// Fresh derivation leaves every particle resting on its target.
		if p.X != p.TX || p.Y != p.TY {
			t.Fatalf("particle %d at (%v, %v), target (%v, %v): want resting on target",
				i, p.X, p.Y, p.TX, p.TY)
		}
		if p.VX != 0 || p.VY != 0 {
			t.Fatalf("particle %d has nonzero velocity after derivation", i)
		}
		if p.Weight != 1 {
			t.Fatalf("particle %d weight = %v, want 1 for opaque source", i, p.Weight)
		}
	}
}

func TestDeriveParticlesNotReadyClearsCloud(t *testing.T) {
	s := &Slot{id: "hero", rect: Rect{Width: 20, Height: 10}}
	s.particles = []Particle{{}}
	s.deriveParticles(testSamplerTuning()) // img still nil
	if s.particles != nil {
		t.Error("deriving without a decoded image should clear the cloud")
	}

	s.img = solidImage(20, 10)
	s.rect = Rect{Width: 0, Height: 10}
	s.particles = []Particle{{}}
	s.deriveParticles(testSamplerTuning())
	if s.particles != nil {
		t.Error("deriving against a degenerate rect should clear the cloud")
	}
}

func TestSnapToTargets(t *testing.T) {
	s := &Slot{
		particles: []Particle{
			{X: 5, Y: 5, TX: 10, TY: 20, VX: 3, VY: -2},
			{X: 0, Y: 0, TX: -4, TY: 8, VX: 1, VY: 1},
		},
	}
	s.snapToTargets()
	for i := range s.particles {
		p := &s.particles[i]
		if p.X != p.TX || p.Y != p.TY {
			t.Fatalf("particle %d not snapped to target", i)
		}
		if p.VX != 0 || p.VY != 0 {
			t.Fatalf("particle %d velocity not zeroed", i)
		}
	}
}

func TestSlotAccessors(t *testing.T) {
	s := &Slot{id: "menu", edge: EdgeBottom, rect: Rect{X: 1, Y: 2, Width: 3, Height: 4}}
	if s.ID() != "menu" {
		t.Errorf("ID() = %q, want %q", s.ID(), "menu")
	}
	if s.Status() != StatusHidden {
		t.Errorf("Status() = %v, want hidden", s.Status())
	}
	if s.Rect() != (Rect{1, 2, 3, 4}) {
		t.Errorf("Rect() = %+v", s.Rect())
	}
	if s.Transitioning() {
		t.Error("fresh slot should not be transitioning")
	}
}
