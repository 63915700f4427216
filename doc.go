// Package swarm renders images as dissolvable particle clouds for
// [Ebitengine] UIs.
//
// A swarm [Engine] owns a set of named slots. Each slot binds one image to
// one screen rectangle; the image is sampled into a cloud of colored
// particles that can be assembled from off-screen space into the image's
// shape, or dispersed back out. While idle or in motion the particles
// react to the pointer with repulsion and drag forces, and a separate pool
// of slow ambient particles drifts across the whole viewport.
//
// # Quick start
//
//	eng := swarm.New(swarm.Config{})
//	if err := eng.Mount(1280, 720, 1); err != nil {
//		log.Fatal(err)
//	}
//	eng.RegisterSlot(swarm.SlotConfig{
//		ID:     "hero",
//		Source: swarm.SourceFile("hero.png"),
//		Rect:   swarm.Rect{X: 100, Y: 50, Width: 200, Height: 80},
//		Edge:   swarm.EdgeTop,
//	})
//	go func() {
//		eng.Assemble(context.Background(), "hero")
//	}()
//	ebiten.RunGame(eng)
//
// The engine implements [ebiten.Game], so it can be passed straight to
// ebiten.RunGame or embedded in a larger game by calling [Engine.Update]
// and [Engine.Draw] yourself.
//
// # Transitions
//
// [Engine.Assemble] and [Engine.Disassemble] block until the slot's
// particles have both exceeded the requested duration and physically
// settled (position and velocity within small thresholds), then snap the
// slot to its exact end state. Requesting a new transition on a slot that
// already has one in flight unblocks the stale waiter with success and
// restarts motion toward the new goal; the last caller wins. Because the
// wait is resolved from inside the frame step, never call these from the
// game-loop goroutine.
//
// All physics constants live in [Tuning] and can be overridden from YAML
// via [LoadTuning].
//
// [Ebitengine]: https://ebitengine.org
package swarm
