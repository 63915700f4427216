package swarm

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Tuning holds every simulation constant. Zero configuration is needed
// (New falls back to DefaultTuning), but all values can be overridden from
// YAML via LoadTuning for design-time iteration.
type Tuning struct {
	Sampler    SamplerTuning    `yaml:"sampler"`
	Physics    PhysicsTuning    `yaml:"physics"`
	Transition TransitionTuning `yaml:"transition"`
	Ambient    AmbientTuning    `yaml:"ambient"`
}

// SamplerTuning controls how images are converted into point samples.
type SamplerTuning struct {
	// Stride is the pixel-grid step in both axes. Larger strides produce
	// sparser, cheaper clouds.
	Stride int `yaml:"stride"`
	// MinAlpha is the minimum pixel alpha (0-255) for a sample to be kept.
	MinAlpha int `yaml:"min_alpha"`
	// Size is the rendered square size of each slot particle in pixels.
	Size float64 `yaml:"size"`
}

// PhysicsTuning controls per-frame slot particle integration.
type PhysicsTuning struct {
	// Spring scales the per-frame pull toward a particle's target position.
	Spring float64 `yaml:"spring"`
	// Friction is the per-frame velocity multiplier.
	Friction float64 `yaml:"friction"`
	// InteractRadius is the pointer influence radius in pixels.
	InteractRadius float64 `yaml:"interact_radius"`
	// HoverForce scales pointer repulsion while no button is held.
	HoverForce float64 `yaml:"hover_force"`
	// DragForce scales pointer repulsion while a button is held.
	DragForce float64 `yaml:"drag_force"`
	// PointerVelGain scales how much pointer velocity is imparted to
	// particles inside the interaction radius.
	PointerVelGain float64 `yaml:"pointer_vel_gain"`
	// MaxDeltaFactor clamps the frame-delta factor (1.0 = one 60 Hz frame)
	// so dropped frames cannot teleport particles.
	MaxDeltaFactor float64 `yaml:"max_delta_factor"`
}

// TransitionTuning controls assemble/disassemble motion and completion.
type TransitionTuning struct {
	// AssembleDuration is the default minimum assemble time in seconds.
	AssembleDuration float64 `yaml:"assemble_duration"`
	// DisassembleDuration is the default minimum disassemble time in seconds.
	DisassembleDuration float64 `yaml:"disassemble_duration"`
	// AssembleAlphaRate is the per-frame exponential rate driving slot
	// alpha toward 1 while assembling.
	AssembleAlphaRate float64 `yaml:"assemble_alpha_rate"`
	// DisassembleAlphaRate is the (faster) rate driving alpha toward 0.
	DisassembleAlphaRate float64 `yaml:"disassemble_alpha_rate"`
	// SettleDistance is the maximum distance from target, in pixels, for a
	// particle to count as settled.
	SettleDistance float64 `yaml:"settle_distance"`
	// SettleSpeed is the maximum speed, in pixels per frame, for a
	// particle to count as settled.
	SettleSpeed float64 `yaml:"settle_speed"`
	// SpawnMargin is how far beyond the viewport edge off-screen points
	// are placed, in pixels.
	SpawnMargin float64 `yaml:"spawn_margin"`
	// Jitter is the randomized lateral scatter applied to off-screen
	// seed points, in pixels.
	Jitter float64 `yaml:"jitter"`
	// VelocityBias is the randomized initial speed toward the slot (when
	// assembling) or toward the edge (when disassembling).
	VelocityBias float64 `yaml:"velocity_bias"`
}

// AmbientTuning controls the background drifting particle pool.
type AmbientTuning struct {
	// Density is the viewport area, in square pixels, per ambient particle.
	Density float64 `yaml:"density"`
	// MinCount and MaxCount bound the pool size regardless of area.
	MinCount int `yaml:"min_count"`
	MaxCount int `yaml:"max_count"`
	// Relax is the per-frame rate at which velocity returns to the
	// particle's base drift.
	Relax float64 `yaml:"relax"`
	// DriftSpeed is the maximum base drift speed in pixels per frame.
	DriftSpeed float64 `yaml:"drift_speed"`
	// Friction is the per-frame velocity multiplier.
	Friction float64 `yaml:"friction"`
	// InteractRadius is the pointer influence radius; larger and weaker
	// than the slot particle radius.
	InteractRadius float64 `yaml:"interact_radius"`
	// Force scales pointer perturbation.
	Force float64 `yaml:"force"`
	// WrapMargin is how far past an edge a particle may drift before
	// wrapping to the opposite side.
	WrapMargin float64 `yaml:"wrap_margin"`
	// Size is the rendered square size in pixels.
	Size float64 `yaml:"size"`
	// Alpha is the fixed per-particle draw opacity.
	Alpha float64 `yaml:"alpha"`
}

// DefaultTuning returns the built-in constants from the embedded
// defaults.yaml.
func DefaultTuning() *Tuning {
	t := &Tuning{}
	if err := yaml.Unmarshal(defaultsYAML, t); err != nil {
		// The embedded defaults ship with the library; failing to parse
		// them is a build defect, not a runtime condition.
		panic("swarm: parse embedded defaults.yaml: " + err.Error())
	}
	return t
}

// LoadTuning parses YAML tuning data layered over the defaults. Keys not
// present in data keep their default values.
func LoadTuning(data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	return t, nil
}
