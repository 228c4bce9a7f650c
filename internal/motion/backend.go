package motion

// Backend is the device-facing capability that performs actual step
// generation. Issuing a move returns immediately; motion completes
// asynchronously. The coordinator treats the backend as the source of
// truth for current and target positions.
type Backend interface {
	// MoveTo starts motion of one joint toward an absolute position.
	MoveTo(joint int, pos int64)

	// ForceStop halts one joint immediately.
	ForceStop(joint int)

	// CurrentPosition returns the joint's live position in steps.
	CurrentPosition(joint int) int64

	// TargetPosition returns the last position requested of the joint.
	TargetPosition(joint int) int64

	// SetCurrentPosition redefines the joint's current position without
	// commanding motion. Used by homing/zeroing.
	SetCurrentPosition(joint int, pos int64)

	// IsRunning reports whether the joint is physically in motion.
	IsRunning(joint int) bool

	// Configure applies static motion parameters at startup.
	Configure(joint int, maxSpeedHz, accel uint32, invertDir bool)

	// SetHardwareEnable toggles the shared driver enable signal.
	SetHardwareEnable(on bool)
}
