package swarm

import (
	"math"
	"testing"
)

func testPhysicsTuning() PhysicsTuning {
	return PhysicsTuning{
		Spring:         0.12,
		Friction:       0.88,
		InteractRadius: 70,
		HoverForce:     1.6,
		DragForce:      4.2,
		PointerVelGain: 0.08,
		MaxDeltaFactor: 3,
	}
}

func singleParticleSlot(x, y, tx, ty float64) *Slot {
	return &Slot{
		id:        "test",
		particles: []Particle{{X: x, Y: y, TX: tx, TY: ty, Weight: 1, Size: 2}},
	}
}

func TestSpringPullsTowardTarget(t *testing.T) {
	s := singleParticleSlot(0, 0, 100, 0)
	integrateSlot(s, nil, testPhysicsTuning(), 1)
	p := &s.particles[0]
	if p.VX <= 0 {
		t.Errorf("VX = %v, want positive pull toward target", p.VX)
	}
	if p.X <= 0 {
		t.Errorf("X = %v, want moved toward target", p.X)
	}
}

func TestSpringConvergesToTarget(t *testing.T) {
	tun := testPhysicsTuning()
	s := singleParticleSlot(0, 0, 120, 80)
	for i := 0; i < 600; i++ {
		integrateSlot(s, nil, tun, 1)
	}
	p := &s.particles[0]
	if math.Abs(p.X-120) > 0.01 || math.Abs(p.Y-80) > 0.01 {
		t.Errorf("particle at (%v, %v), want converged to (120, 80)", p.X, p.Y)
	}
	if math.Abs(p.VX) > 0.01 || math.Abs(p.VY) > 0.01 {
		t.Errorf("velocity (%v, %v), want near zero after convergence", p.VX, p.VY)
	}
}

func TestFrictionDampsVelocity(t *testing.T) {
	tun := testPhysicsTuning()
	s := singleParticleSlot(50, 50, 50, 50)
	s.particles[0].VX = 10
	integrateSlot(s, nil, tun, 1)
	// At the target the spring adds nothing, so only friction acts.
	assertNear(t, "damped VX", s.particles[0].VX, 10*tun.Friction)
}

func TestPointerRepulsionPushesAway(t *testing.T) {
	tun := testPhysicsTuning()
	s := singleParticleSlot(110, 100, 110, 100)
	m := &pointerState{x: 100, y: 100, active: true}
	integrateSlot(s, m, tun, 1)
	p := &s.particles[0]
	if p.VX <= 0 {
		t.Errorf("VX = %v, want pushed away from pointer (positive)", p.VX)
	}
}

func TestPointerDragStrongerThanHover(t *testing.T) {
	tun := testPhysicsTuning()

	hover := singleParticleSlot(110, 100, 110, 100)
	integrateSlot(hover, &pointerState{x: 100, y: 100, active: true}, tun, 1)

	drag := singleParticleSlot(110, 100, 110, 100)
	integrateSlot(drag, &pointerState{x: 100, y: 100, active: true, down: true}, tun, 1)

	if drag.particles[0].VX <= hover.particles[0].VX {
		t.Errorf("drag VX %v should exceed hover VX %v",
			drag.particles[0].VX, hover.particles[0].VX)
	}
}

func TestPointerOutsideRadiusNoForce(t *testing.T) {
	tun := testPhysicsTuning()
	s := singleParticleSlot(500, 500, 500, 500)
	m := &pointerState{x: 100, y: 100, active: true}
	integrateSlot(s, m, tun, 1)
	p := &s.particles[0]
	if p.VX != 0 || p.VY != 0 {
		t.Errorf("velocity (%v, %v), want zero outside the interaction radius", p.VX, p.VY)
	}
}

func TestInactivePointerNoForce(t *testing.T) {
	tun := testPhysicsTuning()
	s := singleParticleSlot(110, 100, 110, 100)
	m := &pointerState{x: 100, y: 100, active: false}
	integrateSlot(s, m, tun, 1)
	if s.particles[0].VX != 0 {
		t.Error("inactive pointer should apply no force")
	}
}

func TestNilPointerNoForce(t *testing.T) {
	tun := testPhysicsTuning()
	s := singleParticleSlot(110, 100, 110, 100)
	integrateSlot(s, nil, tun, 1)
	if s.particles[0].VX != 0 {
		t.Error("suppressed interaction should apply no force")
	}
}

func TestPointerVelocitySweepsParticles(t *testing.T) {
	tun := testPhysicsTuning()
	still := singleParticleSlot(110, 100, 110, 100)
	integrateSlot(still, &pointerState{x: 100, y: 100, active: true}, tun, 1)

	moving := singleParticleSlot(110, 100, 110, 100)
	integrateSlot(moving, &pointerState{x: 100, y: 100, vx: 20, active: true}, tun, 1)

	if moving.particles[0].VX <= still.particles[0].VX {
		t.Error("pointer velocity should add to the repulsion along its direction")
	}
}

func TestDeltaFactorScalesDisplacementOnly(t *testing.T) {
	tun := testPhysicsTuning()
	one := singleParticleSlot(0, 0, 100, 0)
	two := singleParticleSlot(0, 0, 100, 0)
	integrateSlot(one, nil, tun, 1)
	integrateSlot(two, nil, tun, 2)
	// Same per-frame forces, doubled position step.
	assertNear(t, "VX equal", two.particles[0].VX, one.particles[0].VX)
	assertNear(t, "X doubled", two.particles[0].X, one.particles[0].X*2)
}

// --- Benchmarks ---

func benchmarkIntegrate(b *testing.B, n int) {
	s := &Slot{id: "bench", particles: make([]Particle, n)}
	for i := range s.particles {
		s.particles[i] = Particle{
			X: float64(i % 100), Y: float64(i / 100),
			TX: float64(i%100) + 50, TY: float64(i/100) + 50,
			Weight: 1, Size: 2,
		}
	}
	m := &pointerState{x: 50, y: 50, active: true}
	tun := testPhysicsTuning()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		integrateSlot(s, m, tun, 1)
	}
}

func BenchmarkIntegrateSlot_1000(b *testing.B)  { benchmarkIntegrate(b, 1000) }
func BenchmarkIntegrateSlot_10000(b *testing.B) { benchmarkIntegrate(b, 10000) }

func TestZeroAllocsDuringIntegrate(t *testing.T) {
	s := &Slot{id: "alloc", particles: make([]Particle, 1000)}
	for i := range s.particles {
		s.particles[i] = Particle{TX: 10, TY: 10}
	}
	tun := testPhysicsTuning()
	allocs := testing.AllocsPerRun(100, func() {
		integrateSlot(s, nil, tun, 1)
	})
	if allocs > 0 {
		t.Errorf("integrate allocs = %f, want 0", allocs)
	}
}
