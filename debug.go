package swarm

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// frameStats holds per-frame simulation metrics. Only populated when the
// engine's debug mode is on.
type frameStats struct {
	stepTime        time.Duration
	slotParticles   int
	ambientCount    int
	openTransitions int
}

// SetDebug enables or disables debug mode. When enabled, per-frame stats
// are logged to stderr and Draw paints a small overlay with particle and
// transition counts.
func (e *Engine) SetDebug(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debug = enabled
}

// collectStatsLocked gathers this frame's metrics and logs them to stderr.
func (e *Engine) collectStatsLocked(stepTime time.Duration) {
	st := frameStats{stepTime: stepTime}
	for _, s := range e.slots {
		st.slotParticles += len(s.particles)
		if s.transition != nil {
			st.openTransitions++
		}
	}
	if e.ambient != nil {
		st.ambientCount = len(e.ambient.particles)
	}
	e.stats = st
	fmt.Fprintf(os.Stderr,
		"[swarm] step: %v | slot particles: %d | ambient: %d | transitions: %d\n",
		st.stepTime, st.slotParticles, st.ambientCount, st.openTransitions)
}

// drawDebugOverlay paints the most recent frame stats onto the screen.
func (e *Engine) drawDebugOverlay(screen *ebiten.Image) {
	e.mu.Lock()
	st := e.stats
	busy := e.busy
	e.mu.Unlock()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nparticles: %d (+%d ambient)\ntransitions: %d  busy: %v",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		st.slotParticles, st.ambientCount, st.openTransitions, busy))
}
