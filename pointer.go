package swarm

import "github.com/hajimehoshi/ebiten/v2"

// pointerState is the engine's view of the single active pointer. Written
// only from the frame step (polled at the top of Update, under the engine
// lock) and read by the integrators in the same step. Touch input maps the first active touch onto the same record;
// there is no multi-touch model.
type pointerState struct {
	x, y         float64
	lastX, lastY float64
	vx, vy       float64 // pixels per frame at nominal 60 Hz
	active       bool    // pointer over the viewport this frame
	down         bool
}

// pollPointer refreshes the pointer record from ebiten. dt is the frame
// delta in seconds, used to derive instantaneous velocity.
func (e *Engine) pollPointer(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := &e.pointer

	var px, py float64
	var present, down bool

	if ids := ebiten.AppendTouchIDs(e.touchIDs[:0]); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		px, py = float64(tx), float64(ty)
		present = true
		down = true
		e.touchIDs = ids
	} else {
		cx, cy := ebiten.CursorPosition()
		px, py = float64(cx), float64(cy)
		present = true
		down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	m.lastX, m.lastY = m.x, m.y
	m.x, m.y = px, py
	m.down = down
	m.active = present && px >= 0 && py >= 0 &&
		px <= float64(e.width) && py <= float64(e.height)

	// Velocity in pixels per 60 Hz frame, independent of the actual rate.
	if dt > 0 {
		frames := dt * 60
		m.vx = (m.x - m.lastX) / frames
		m.vy = (m.y - m.lastY) / frames
	} else {
		m.vx, m.vy = 0, 0
	}
}

// resetPointer clears all pointer state, used on destroy and when
// interaction is suppressed so stale velocity cannot leak into a later
// frame.
func (e *Engine) resetPointer() {
	e.pointer = pointerState{}
}
