package swarm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sentinel errors returned by the engine's public surface.
var (
	// ErrUnsupported means the rendering surface could not be acquired.
	ErrUnsupported = errors.New("swarm: drawing surface unavailable")
	// ErrUnknownSlot means a transition was requested for an unregistered id.
	ErrUnknownSlot = errors.New("swarm: unknown slot")
	// ErrNotMeasurable means the slot's rect has no positive area; the
	// caller must re-measure before retrying.
	ErrNotMeasurable = errors.New("swarm: slot rect has no area")
	// ErrDestroyed means the engine has been torn down.
	ErrDestroyed = errors.New("swarm: engine destroyed")
)

// Config configures a new Engine.
type Config struct {
	// Tuning overrides the simulation constants. Nil uses DefaultTuning.
	Tuning *Tuning
	// OnBusyChanged, when set, is called every time the aggregate busy
	// flag flips: true while at least one slot has an open transition.
	// Called from whichever goroutine caused the change; must not call
	// back into the engine synchronously.
	OnBusyChanged func(bool)
}

// Engine owns the backing store, the slot registry, the ambient particle
// pool, pointer state, and the per-frame simulation. It implements
// [ebiten.Game]; all exported methods are safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	tun *Tuning

	slots map[SlotID]*Slot
	order []SlotID // stable iteration order for stepping and drawing

	ambient *ambientPool

	pointer  pointerState
	touchIDs []ebiten.TouchID

	width, height int // logical viewport size
	dpr           float64
	backing       *ebiten.Image // device-pixel backing store

	mounted    bool
	destroyed  bool
	suppressed bool // pointer forces globally off until no slot transitions
	busy       bool
	onBusy     func(bool)

	lastStep time.Time
	debug    bool
	stats    frameStats
}

// New creates an unmounted engine.
func New(cfg Config) *Engine {
	tun := cfg.Tuning
	if tun == nil {
		tun = DefaultTuning()
	}
	return &Engine{
		tun:    tun,
		slots:  make(map[SlotID]*Slot),
		onBusy: cfg.OnBusyChanged,
	}
}

// Mount binds the rendering surface: it allocates a backing store of
// width x height logical pixels scaled by the device pixel ratio and seeds
// the ambient pool. Mount fails, with no partial state, on non-positive
// dimensions or a destroyed engine.
func (e *Engine) Mount(width, height int, dpr float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrDestroyed
	}
	if e.mounted {
		return fmt.Errorf("swarm: already mounted")
	}
	if width <= 0 || height <= 0 || dpr <= 0 {
		return fmt.Errorf("%w: %dx%d @%gx", ErrUnsupported, width, height, dpr)
	}
	e.width, e.height, e.dpr = width, height, dpr
	e.backing = ebiten.NewImage(scaled(width, dpr), scaled(height, dpr))
	e.ambient = newAmbientPool(float64(width), float64(height), e.tun.Ambient)
	e.mounted = true
	return nil
}

// Resize re-applies backing-store scaling and regenerates the ambient pool
// for the new viewport area. Existing slot particles are not touched; the
// caller is expected to follow up with UpdateSlotRect per slot after
// re-measuring its layout.
func (e *Engine) Resize(width, height int, dpr float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || !e.mounted || width <= 0 || height <= 0 || dpr <= 0 {
		return
	}
	e.width, e.height, e.dpr = width, height, dpr
	if e.backing != nil {
		e.backing.Deallocate()
	}
	e.backing = ebiten.NewImage(scaled(width, dpr), scaled(height, dpr))
	e.ambient = newAmbientPool(float64(width), float64(height), e.tun.Ambient)
}

func scaled(v int, dpr float64) int {
	s := int(float64(v) * dpr)
	if s < 1 {
		s = 1
	}
	return s
}

// RegisterSlot registers or updates a slot. Registration is an idempotent
// upsert: re-registering an existing id updates its rect and edge but
// reuses the image already loading or loaded, re-deriving particles once
// ready. A new id begins its image decode asynchronously.
func (e *Engine) RegisterSlot(cfg SlotConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrDestroyed
	}
	if cfg.ID == "" {
		return fmt.Errorf("swarm: register slot: empty id")
	}

	if s, ok := e.slots[cfg.ID]; ok {
		s.edge = cfg.Edge
		e.applyRectLocked(s, cfg.Rect)
		return nil
	}

	if cfg.Source == nil {
		return fmt.Errorf("swarm: register slot %q: nil image source", cfg.ID)
	}
	s := &Slot{
		id:     cfg.ID,
		edge:   cfg.Edge,
		rect:   cfg.Rect,
		source: cfg.Source,
		ready:  make(chan struct{}),
	}
	e.slots[cfg.ID] = s
	e.order = append(e.order, cfg.ID)
	go e.decodeSlot(s)
	return nil
}

// decodeSlot runs the slot's image decode off the frame loop and applies
// the result under the engine lock. A decode failure is logged and leaves
// the slot permanently not-ready; waiters escape via their context.
func (e *Engine) decodeSlot(s *Slot) {
	img, err := s.source.Decode()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || e.slots[s.id] != s {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[swarm] slot %q image: %v\n", s.id, err)
		return
	}
	s.img = img
	s.deriveParticles(e.tun.Sampler)
	close(s.ready)
}

// UpdateSlotRect moves a slot to a new target rectangle, typically after a
// layout shift. An unknown id is a silent no-op. When the image is already
// decoded the particle cloud is immediately re-sampled against the new
// rect; an assembled slot snaps to the new targets without re-animating,
// and an in-flight transition reseeds its motion toward the new geometry.
func (e *Engine) UpdateSlotRect(id SlotID, rect Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	s, ok := e.slots[id]
	if !ok {
		return
	}
	e.applyRectLocked(s, rect)
}

// applyRectLocked installs a new rect and re-derives particles when the
// image is ready. Deriving places particles at their targets, which is
// exactly the snap an assembled slot needs; a slot mid-transition is
// reseeded so its motion continues toward the new geometry.
func (e *Engine) applyRectLocked(s *Slot, rect Rect) {
	s.rect = rect
	if s.img == nil {
		return
	}
	s.deriveParticles(e.tun.Sampler)
	if tr := s.transition; tr != nil {
		switch tr.dir {
		case dirAssemble:
			seedAssemble(s, float64(e.width), float64(e.height), e.tun.Transition)
		case dirDisassemble:
			seedDisassemble(s, float64(e.width), float64(e.height), e.tun.Transition)
		}
	}
}

// SetSlotVisible shows or hides a slot. Hiding is a hard reset, not a
// transition: status returns to hidden, alpha drops to 0, and any
// in-flight transition is discarded and its waiters are unblocked with
// success. An unknown id is a silent no-op.
func (e *Engine) SetSlotVisible(id SlotID, visible bool) {
	e.mu.Lock()
	s, ok := e.slots[id]
	if e.destroyed || !ok {
		e.mu.Unlock()
		return
	}
	if visible {
		s.visible = true
		e.mu.Unlock()
		return
	}
	s.visible = false
	s.status = StatusHidden
	s.alpha = 0
	if tr := s.transition; tr != nil {
		s.transition = nil
		tr.resolve()
	}
	notify := e.updateBusyLocked()
	e.mu.Unlock()
	notify()
}

// Assemble animates the slot's particles from off-screen into the image
// shape. It blocks until the image has decoded and the motion has settled
// (or ctx is canceled); the requested duration is a minimum, not an exact
// contract. Calling Assemble on an already-assembled slot returns
// immediately with no state change. Must not be called from the game-loop
// goroutine.
func (e *Engine) Assemble(ctx context.Context, id SlotID, opts ...TransitionOption) error {
	return e.transitionTo(ctx, id, dirAssemble, opts)
}

// Disassemble animates the slot's particles from their current positions
// off-screen, ending hidden. Semantics mirror Assemble.
func (e *Engine) Disassemble(ctx context.Context, id SlotID, opts ...TransitionOption) error {
	return e.transitionTo(ctx, id, dirDisassemble, opts)
}

func (e *Engine) transitionTo(ctx context.Context, id SlotID, dir transitionDir, opts []TransitionOption) error {
	var params transitionParams
	for _, o := range opts {
		o(&params)
	}

	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return ErrDestroyed
	}
	s, ok := e.slots[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}
	ready := s.ready
	e.mu.Unlock()

	// Await image readiness. A failed decode never closes ready; the
	// context is the caller's way out of an indefinite wait.
	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return ErrDestroyed
	}
	if e.slots[id] != s {
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}
	if s.rect.Empty() {
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrNotMeasurable, id)
	}
	if len(s.particles) == 0 {
		s.deriveParticles(e.tun.Sampler)
	}

	// Idempotent fast paths: already at the goal with nothing in flight.
	if s.transition == nil {
		if dir == dirAssemble && s.status == StatusAssembled {
			e.mu.Unlock()
			return nil
		}
		if dir == dirDisassemble && s.status == StatusHidden {
			e.mu.Unlock()
			return nil
		}
	}

	// Supersede any in-flight transition: its waiters observe success,
	// never failure, and the last caller wins.
	if old := s.transition; old != nil {
		s.transition = nil
		old.resolve()
	}

	duration := params.duration.Seconds()
	if params.duration <= 0 {
		if dir == dirAssemble {
			duration = e.tun.Transition.AssembleDuration
		} else {
			duration = e.tun.Transition.DisassembleDuration
		}
	}
	tr := newTransition(dir, s.edge, duration)
	s.transition = tr

	switch dir {
	case dirAssemble:
		s.visible = true
		s.status = StatusAssembling
		seedAssemble(s, float64(e.width), float64(e.height), e.tun.Transition)
	case dirDisassemble:
		s.status = StatusDisassembling
		seedDisassemble(s, float64(e.width), float64(e.height), e.tun.Transition)
	}
	notify := e.updateBusyLocked()
	e.mu.Unlock()
	notify()

	select {
	case <-tr.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetInteractionEnabled globally toggles pointer-driven forces. Disabling
// is temporary: the engine re-enables interaction on the first frame with
// no slot mid-transition.
func (e *Engine) SetInteractionEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suppressed = !enabled
}

// InteractionEnabled reports whether pointer forces are currently applied.
func (e *Engine) InteractionEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.suppressed
}

// Busy reports whether any slot currently has an open transition.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// SlotStatus returns the lifecycle state of a slot.
func (e *Engine) SlotStatus(id SlotID) (SlotStatus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.slots[id]
	if !ok {
		return StatusHidden, false
	}
	return s.status, true
}

// Slot returns the live slot record for inspection, or nil if the id is
// unknown. The record and its particle slice MUST NOT be mutated.
func (e *Engine) Slot(id SlotID) *Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slots[id]
}

// Destroy stops the simulation and clears all slot, ambient, and pointer
// state. Safe to call more than once; Update and Draw become no-ops
// afterwards. Pending Assemble/Disassemble waiters are not resolved;
// their contexts are the way out.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.mounted = false
	if e.backing != nil {
		e.backing.Deallocate()
		e.backing = nil
	}
	e.slots = nil
	e.order = nil
	e.ambient = nil
	e.resetPointer()
}

// updateBusyLocked recomputes the aggregate busy flag and returns the
// callback to invoke, outside the lock, if it changed.
func (e *Engine) updateBusyLocked() func() {
	busy := false
	for _, s := range e.slots {
		if s.transition != nil {
			busy = true
			break
		}
	}
	if busy == e.busy {
		return func() {}
	}
	e.busy = busy
	cb := e.onBusy
	if cb == nil {
		return func() {}
	}
	return func() { cb(busy) }
}

// --- Frame loop (ebiten.Game) ---

// Update advances the simulation by one frame using the wall-clock delta
// since the previous frame. Part of the [ebiten.Game] contract.
func (e *Engine) Update() error {
	now := time.Now()
	dt := 1.0 / 60
	if !e.lastStep.IsZero() {
		dt = now.Sub(e.lastStep).Seconds()
	}
	e.lastStep = now
	e.pollPointer(dt)
	e.step(dt)
	return nil
}

// step advances every simulated system by dt seconds. Within a frame,
// ambient particles update before slot particles, and each slot's
// settle check runs before its physics integrates, so a transition that
// completes this frame still gets its snap-to-target write before the
// next paint.
func (e *Engine) step(dt float64) {
	e.mu.Lock()
	if e.destroyed || !e.mounted {
		e.mu.Unlock()
		return
	}
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	t := e.tun
	dtf := clamp(dt*60, 0, t.Physics.MaxDeltaFactor)

	var m *pointerState
	if !e.suppressed {
		m = &e.pointer
	}

	if e.ambient != nil {
		e.ambient.update(m, t.Ambient, dtf)
	}

	for _, id := range e.order {
		s := e.slots[id]
		if s == nil {
			continue
		}
		if tr := s.transition; tr != nil {
			tr.advance(dt)
			switch tr.dir {
			case dirAssemble:
				s.alpha += (1 - s.alpha) * t.Transition.AssembleAlphaRate * dtf
			case dirDisassemble:
				s.alpha -= s.alpha * t.Transition.DisassembleAlphaRate * dtf
			}
			if tr.nominalDone && settled(s.particles, t.Transition) {
				e.completeLocked(s, tr)
			}
		}
		if s.visible && (s.transition != nil || s.status == StatusAssembled) {
			integrateSlot(s, m, t.Physics, dtf)
		}
	}

	notify := e.updateBusyLocked()
	if !e.busy {
		// Interaction suppression lifts the frame no slot is mid-transition.
		e.suppressed = false
	}
	if e.debug {
		e.collectStatsLocked(time.Since(t0))
	}
	e.mu.Unlock()
	notify()
}

// completeLocked finishes a settled transition: snap the slot to its exact
// end state, flip status, and unblock waiters.
func (e *Engine) completeLocked(s *Slot, tr *transition) {
	switch tr.dir {
	case dirAssemble:
		s.status = StatusAssembled
		s.alpha = 1
		s.snapToTargets()
	case dirDisassemble:
		s.status = StatusHidden
		s.visible = false
		s.alpha = 0
	}
	s.transition = nil
	tr.resolve()
}

// Draw renders the ambient pool and every visible slot into the backing
// store, then blits it to screen. Part of the [ebiten.Game] contract.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.mu.Lock()
	if e.destroyed || !e.mounted || e.backing == nil {
		e.mu.Unlock()
		return
	}
	e.backing.Clear()
	if e.ambient != nil {
		e.ambient.draw(e.backing, e.tun.Ambient, e.dpr)
	}
	for _, id := range e.order {
		s := e.slots[id]
		if s == nil || !s.visible || s.alpha <= 0 {
			continue
		}
		drawSlot(e.backing, s, e.dpr)
	}
	backing := e.backing
	debug := e.debug
	e.mu.Unlock()

	screen.DrawImage(backing, nil)
	if debug {
		e.drawDebugOverlay(screen)
	}
}

// drawSlot renders one slot's particles as colored squares. Per-square
// opacity is slot alpha times the sampled pixel's own alpha weight.
func drawSlot(dst *ebiten.Image, s *Slot, scale float64) {
	px := ensureWhitePixel()
	var op ebiten.DrawImageOptions
	slotAlpha := s.alpha
	for i := range s.particles {
		p := &s.particles[i]
		a := float32(slotAlpha * p.Weight)
		if a <= 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(p.Size*scale, p.Size*scale)
		op.GeoM.Translate((p.X-p.Size/2)*scale, (p.Y-p.Size/2)*scale)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(p.R)/255*a, float32(p.G)/255*a, float32(p.B)/255*a, a)
		dst.DrawImage(px, &op)
	}
}

// Layout reports the backing-store size. Part of the [ebiten.Game]
// contract.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return outsideWidth, outsideHeight
	}
	return scaled(e.width, e.dpr), scaled(e.height, e.dpr)
}
