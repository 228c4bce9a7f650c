package motion

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/armkit/armctl/internal/joint"
)

// Coordinator owns the enable gate and validates, gates, and dispatches
// moves against the joint registry. Command sources (serial console,
// HTTP) may run on separate goroutines, so every operation holds one
// mutex for its whole duration: validate-then-apply is atomic with
// respect to interleaved SetEnabled or another multi-joint move.
type Coordinator struct {
	mu       sync.Mutex
	registry *joint.Registry
	backend  Backend
	enabled  bool
	log      zerolog.Logger
}

// NewCoordinator wires the registry and backend together. The gate
// starts disabled. Static motion parameters are pushed to the backend
// once here and are not revalidated per move.
func NewCoordinator(registry *joint.Registry, backend Backend, log zerolog.Logger) *Coordinator {
	c := &Coordinator{
		registry: registry,
		backend:  backend,
		log:      log,
	}
	for i := 0; i < registry.Len(); i++ {
		cfg := registry.Config(i)
		backend.Configure(i, cfg.MaxSpeedHz, cfg.Acceleration, cfg.InvertDir)
	}
	backend.SetHardwareEnable(false)
	return c
}

// Registry exposes the shared joint configuration table.
func (c *Coordinator) Registry() *joint.Registry { return c.registry }

// SetEnabled sets the safety gate. Disabling force-stops every joint
// before the gate drops; the stop fan-out is skipped when the gate is
// already down so a repeated disable emits no spurious stop signals.
func (c *Coordinator) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !on && c.enabled {
		c.stopAllLocked()
	}
	c.enabled = on
	c.backend.SetHardwareEnable(on)
	if on {
		c.log.Info().Msg("motors enabled")
	} else {
		c.log.Info().Msg("motors disabled")
	}
}

// Enabled reports the gate state.
func (c *Coordinator) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// MoveSingle moves one joint to an absolute position. Preconditions are
// checked in order, first failure wins: joint index, gate, limits.
func (c *Coordinator) MoveSingle(jointIdx int, pos int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registry.Valid(jointIdx) {
		return ErrInvalidJoint
	}
	if !c.enabled {
		return ErrDisabled
	}
	if !c.registry.WithinLimits(jointIdx, pos) {
		c.log.Warn().Int("joint", jointIdx+1).Int64("pos", pos).Msg("move rejected: out of limits")
		return ErrOutOfLimits
	}
	c.backend.MoveTo(jointIdx, pos)
	return nil
}

// MoveMultiple dispatches absolute targets for every set joint,
// all-or-nothing: if any set joint fails its limit check no joint is
// commanded. Unset joints are left completely untouched. Set joints are
// dispatched in increasing index order only after all pass validation.
func (c *Coordinator) MoveMultiple(targets joint.Positions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveMultipleLocked(targets)
}

func (c *Coordinator) moveMultipleLocked(targets joint.Positions) error {
	if !c.enabled {
		return ErrDisabled
	}
	for i := 0; i < c.registry.Len(); i++ {
		if !targets[i].IsSet() {
			continue
		}
		if !c.registry.WithinLimits(i, targets[i].Steps) {
			c.log.Warn().Int("joint", i+1).Int64("pos", targets[i].Steps).Msg("multi-move rejected: out of limits")
			return ErrOutOfLimits
		}
	}
	for i := 0; i < c.registry.Len(); i++ {
		if targets[i].IsSet() {
			c.backend.MoveTo(i, targets[i].Steps)
		}
	}
	return nil
}

// MoveRelative resolves per-joint offsets against the backend's current
// positions, then applies MoveMultiple semantics. The read and the
// dispatch happen under one lock, but a joint still physically in
// motion advances between the position read and motion start; that
// read-then-dispatch race is the accepted consistency model.
func (c *Coordinator) MoveRelative(offsets joint.Positions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var abs joint.Positions
	for i := 0; i < c.registry.Len(); i++ {
		if offsets[i].IsSet() {
			abs.Set(i, c.backend.CurrentPosition(i)+offsets[i].Steps)
		}
	}
	return c.moveMultipleLocked(abs)
}

// StopAll unconditionally halts every joint, regardless of the gate.
func (c *Coordinator) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAllLocked()
}

func (c *Coordinator) stopAllLocked() {
	for i := 0; i < c.registry.Len(); i++ {
		c.backend.ForceStop(i)
	}
	c.log.Warn().Msg("all joints stopped")
}

// EmergencyStop halts every joint and drops the gate. It runs even when
// the gate is already down.
func (c *Coordinator) EmergencyStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAllLocked()
	c.enabled = false
	c.backend.SetHardwareEnable(false)
	c.log.Error().Msg("emergency stop")
}

// Zero redefines one joint's current position as 0 without motion. No
// limit checks apply and zeroing is permitted while disabled.
func (c *Coordinator) Zero(jointIdx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.registry.Valid(jointIdx) {
		c.backend.SetCurrentPosition(jointIdx, 0)
	}
}

// ZeroAll re-zeros every joint.
func (c *Coordinator) ZeroAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < c.registry.Len(); i++ {
		c.backend.SetCurrentPosition(i, 0)
	}
	c.log.Info().Msg("all joints zeroed")
}

// Position returns a joint's current position, 0 for an invalid index.
func (c *Coordinator) Position(jointIdx int) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registry.Valid(jointIdx) {
		return 0
	}
	return c.backend.CurrentPosition(jointIdx)
}

// Target returns a joint's last requested position, 0 for an invalid
// index.
func (c *Coordinator) Target(jointIdx int) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registry.Valid(jointIdx) {
		return 0
	}
	return c.backend.TargetPosition(jointIdx)
}

// DistanceToGo returns target minus current, 0 for an invalid index.
func (c *Coordinator) DistanceToGo(jointIdx int) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registry.Valid(jointIdx) {
		return 0
	}
	return c.backend.TargetPosition(jointIdx) - c.backend.CurrentPosition(jointIdx)
}

// IsMoving reports whether a joint is in motion, false for an invalid
// index.
func (c *Coordinator) IsMoving(jointIdx int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registry.Valid(jointIdx) {
		return false
	}
	return c.backend.IsRunning(jointIdx)
}

// IsAnyMoving reports whether any joint is in motion.
func (c *Coordinator) IsAnyMoving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < c.registry.Len(); i++ {
		if c.backend.IsRunning(i) {
			return true
		}
	}
	return false
}
