package swarm

import "math"

// integrateSlot advances one slot's particles by a single frame. dtf is
// the frame-delta factor (1.0 = one nominal 60 Hz frame, pre-clamped by
// the engine). Per particle, in order: spring force toward target, pointer
// interaction force (when m is non-nil), friction, position integration.
func integrateSlot(s *Slot, m *pointerState, t PhysicsTuning, dtf float64) {
	radius := t.InteractRadius
	interact := m != nil && m.active && radius > 0

	for i := range s.particles {
		p := &s.particles[i]

		// Spring toward target.
		p.VX += (p.TX - p.X) * t.Spring
		p.VY += (p.TY - p.Y) * t.Spring

		if interact {
			dx := p.X - m.x
			dy := p.Y - m.y
			distSq := dx*dx + dy*dy
			if distSq < radius*radius && distSq > 0 {
				dist := math.Sqrt(distSq)
				falloff := 1 - dist/radius
				force := t.HoverForce
				if m.down {
					force = t.DragForce
				}
				p.VX += (dx / dist) * falloff * force
				p.VY += (dy / dist) * falloff * force
				// Moving pointers sweep particles along.
				p.VX += m.vx * falloff * t.PointerVelGain
				p.VY += m.vy * falloff * t.PointerVelGain
			}
		}

		p.VX *= t.Friction
		p.VY *= t.Friction

		p.X += p.VX * dtf
		p.Y += p.VY * dtf
	}
}
