package swarm

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ambientParticle is one background drifting point. Unlike slot particles
// it has no target: velocity relaxes toward a fixed per-particle base
// drift, and position wraps across the viewport edges.
type ambientParticle struct {
	x, y           float64
	vx, vy         float64
	baseVX, baseVY float64
}

// ambientPool is the viewport-wide decorative particle field. It is
// recreated whenever the viewport is resized; its size is derived from the
// viewport area and clamped to the configured bounds.
type ambientPool struct {
	particles []ambientParticle
	w, h      float64
}

// ambientCount derives the pool size for a viewport.
func ambientCount(w, h float64, t AmbientTuning) int {
	count := 0
	if t.Density > 0 {
		count = int(w * h / t.Density)
	}
	if count < t.MinCount {
		count = t.MinCount
	}
	if count > t.MaxCount {
		count = t.MaxCount
	}
	return count
}

// newAmbientPool creates a pool with randomized positions and drifts.
func newAmbientPool(w, h float64, t AmbientTuning) *ambientPool {
	pool := &ambientPool{
		particles: make([]ambientParticle, ambientCount(w, h, t)),
		w:         w,
		h:         h,
	}
	for i := range pool.particles {
		p := &pool.particles[i]
		p.x = Range{0, w}.Random()
		p.y = Range{0, h}.Random()
		p.baseVX = Range{-t.DriftSpeed, t.DriftSpeed}.Random()
		p.baseVY = Range{-t.DriftSpeed, t.DriftSpeed}.Random()
		p.vx = p.baseVX
		p.vy = p.baseVY
	}
	return pool
}

// update advances the pool by one frame: relax toward base drift, pointer
// perturbation within a large weak radius, heavy friction, integrate, and
// wrap across edges with a small margin. m may be nil when interaction is
// suppressed.
func (ap *ambientPool) update(m *pointerState, t AmbientTuning, dtf float64) {
	radius := t.InteractRadius
	interact := m != nil && m.active && radius > 0
	margin := t.WrapMargin

	for i := range ap.particles {
		p := &ap.particles[i]

		p.vx += (p.baseVX - p.vx) * t.Relax
		p.vy += (p.baseVY - p.vy) * t.Relax

		if interact {
			dx := p.x - m.x
			dy := p.y - m.y
			distSq := dx*dx + dy*dy
			if distSq < radius*radius && distSq > 0 {
				dist := math.Sqrt(distSq)
				falloff := 1 - dist/radius
				p.vx += (dx / dist) * falloff * t.Force
				p.vy += (dy / dist) * falloff * t.Force
			}
		}

		p.vx *= t.Friction
		p.vy *= t.Friction

		p.x += p.vx * dtf
		p.y += p.vy * dtf

		// Wrap, never reflect: a particle leaving one edge re-enters at
		// the opposite one.
		if p.x < -margin {
			p.x = ap.w + margin
		} else if p.x > ap.w+margin {
			p.x = -margin
		}
		if p.y < -margin {
			p.y = ap.h + margin
		} else if p.y > ap.h+margin {
			p.y = -margin
		}
	}
}

// draw renders the pool as small translucent squares into dst. scale is
// the device pixel ratio of the backing store.
func (ap *ambientPool) draw(dst *ebiten.Image, t AmbientTuning, scale float64) {
	px := ensureWhitePixel()
	a := float32(t.Alpha)
	var op ebiten.DrawImageOptions
	for i := range ap.particles {
		p := &ap.particles[i]
		op.GeoM.Reset()
		op.GeoM.Scale(t.Size*scale, t.Size*scale)
		op.GeoM.Translate(p.x*scale, p.y*scale)
		op.ColorScale.Reset()
		op.ColorScale.Scale(a, a, a, a)
		dst.DrawImage(px, &op)
	}
}
