package motion

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/armkit/armctl/internal/joint"
	"github.com/armkit/armctl/internal/testutil/testlog"
)

func newTestRig(t *testing.T) (*Coordinator, *Simulator) {
	t.Helper()
	testlog.Start(t)
	cfgs := make([]joint.Config, 6)
	for i := range cfgs {
		cfgs[i] = joint.Config{
			Name:        "J",
			MinPosition: -1000,
			MaxPosition: 1000,
			MaxSpeedHz:  1000,
		}
	}
	reg, err := joint.NewRegistry(cfgs)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	sim := NewSimulator(reg.Len())
	return NewCoordinator(reg, sim, zerolog.Nop()), sim
}

func TestGateStartsDisabledAndRejectsMoves(t *testing.T) {
	coord, _ := newTestRig(t)

	if coord.Enabled() {
		t.Fatal("gate must start disabled")
	}
	if err := coord.MoveSingle(0, 10); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	var targets joint.Positions
	targets.Set(0, 10)
	if err := coord.MoveMultiple(targets); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestMoveSinglePreconditionOrder(t *testing.T) {
	coord, _ := newTestRig(t)

	// Invalid joint outranks the disabled gate.
	if err := coord.MoveSingle(99, 10); !errors.Is(err, ErrInvalidJoint) {
		t.Fatalf("expected ErrInvalidJoint, got %v", err)
	}

	coord.SetEnabled(true)
	if err := coord.MoveSingle(0, 1001); !errors.Is(err, ErrOutOfLimits) {
		t.Fatalf("expected ErrOutOfLimits, got %v", err)
	}
	if err := coord.MoveSingle(0, 1000); err != nil {
		t.Fatalf("boundary position must succeed, got %v", err)
	}
}

func TestMoveMultipleIsTransactional(t *testing.T) {
	coord, sim := newTestRig(t)
	coord.SetEnabled(true)

	var first joint.Positions
	first.Set(0, 100)
	first.Set(1, 200)
	if err := coord.MoveMultiple(first); err != nil {
		t.Fatalf("valid multi-move: %v", err)
	}
	sim.Settle()

	// One violating joint must leave every target untouched.
	var bad joint.Positions
	bad.Set(0, 300)
	bad.Set(1, 5000)
	if err := coord.MoveMultiple(bad); !errors.Is(err, ErrOutOfLimits) {
		t.Fatalf("expected ErrOutOfLimits, got %v", err)
	}
	if got := coord.Target(0); got != 100 {
		t.Fatalf("J1 target changed by rejected move: %d", got)
	}
	if got := coord.Target(1); got != 200 {
		t.Fatalf("J2 target changed by rejected move: %d", got)
	}
}

func TestMoveMultipleLeavesUnsetJointsUntouched(t *testing.T) {
	coord, sim := newTestRig(t)
	coord.SetEnabled(true)

	var first joint.Positions
	first.Set(2, 500)
	if err := coord.MoveMultiple(first); err != nil {
		t.Fatalf("move: %v", err)
	}

	var second joint.Positions
	second.Set(0, 50)
	if err := coord.MoveMultiple(second); err != nil {
		t.Fatalf("move: %v", err)
	}

	if got := coord.Target(2); got != 500 {
		t.Fatalf("unmentioned joint target disturbed: %d", got)
	}
	if !sim.IsRunning(2) {
		t.Fatal("in-flight motion on unmentioned joint must continue")
	}
}

func TestMoveRelativeMatchesAbsolute(t *testing.T) {
	coord, sim := newTestRig(t)
	coord.SetEnabled(true)

	sim.SetCurrentPosition(2, 100)

	var rel joint.Positions
	rel.Set(2, 50)
	if err := coord.MoveRelative(rel); err != nil {
		t.Fatalf("relative move: %v", err)
	}
	if got := coord.Target(2); got != 150 {
		t.Fatalf("relative move target = %d, want 150", got)
	}

	// Offsets that resolve past a limit are rejected whole.
	sim.Settle()
	var overshoot joint.Positions
	overshoot.Set(2, 900)
	if err := coord.MoveRelative(overshoot); !errors.Is(err, ErrOutOfLimits) {
		t.Fatalf("expected ErrOutOfLimits, got %v", err)
	}
	if got := coord.Target(2); got != 150 {
		t.Fatalf("rejected relative move changed target: %d", got)
	}
}

func TestDisableStopsOnceAndIsIdempotent(t *testing.T) {
	coord, sim := newTestRig(t)
	coord.SetEnabled(true)

	var targets joint.Positions
	targets.Set(0, 100)
	if err := coord.MoveMultiple(targets); err != nil {
		t.Fatalf("move: %v", err)
	}

	coord.SetEnabled(false)
	if coord.Enabled() {
		t.Fatal("gate must be down after disable")
	}
	stops := sim.StopCount()
	if stops == 0 {
		t.Fatal("disable must stop joints")
	}

	coord.SetEnabled(false)
	if coord.Enabled() {
		t.Fatal("second disable must keep gate down")
	}
	if sim.StopCount() != stops {
		t.Fatalf("second disable issued spurious stops: %d -> %d", stops, sim.StopCount())
	}
}

func TestEmergencyStopRunsWhileDisabled(t *testing.T) {
	coord, sim := newTestRig(t)

	before := sim.StopCount()
	coord.EmergencyStop()
	if coord.Enabled() {
		t.Fatal("emergency stop must leave gate down")
	}
	if sim.StopCount() <= before {
		t.Fatal("emergency stop must stop all joints even while disabled")
	}
	if sim.HardwareEnabled() {
		t.Fatal("hardware enable must be off after emergency stop")
	}
}

func TestZeroAllowedWhileDisabled(t *testing.T) {
	coord, sim := newTestRig(t)

	sim.SetCurrentPosition(3, 777)
	coord.Zero(3)
	if got := coord.Position(3); got != 0 {
		t.Fatalf("zero while disabled: position = %d", got)
	}

	sim.SetCurrentPosition(0, 1)
	sim.SetCurrentPosition(5, -1)
	coord.ZeroAll()
	for i := 0; i < 6; i++ {
		if got := coord.Position(i); got != 0 {
			t.Fatalf("joint %d not zeroed: %d", i, got)
		}
	}
}

func TestQueriesDefaultOnInvalidIndex(t *testing.T) {
	coord, _ := newTestRig(t)

	if coord.Position(99) != 0 || coord.Target(99) != 0 || coord.DistanceToGo(99) != 0 {
		t.Fatal("position queries must return 0 for invalid index")
	}
	if coord.IsMoving(99) {
		t.Fatal("IsMoving must return false for invalid index")
	}
}

func TestHardwareEnableFollowsGate(t *testing.T) {
	coord, sim := newTestRig(t)

	if sim.HardwareEnabled() {
		t.Fatal("hardware enable must start off")
	}
	coord.SetEnabled(true)
	if !sim.HardwareEnabled() {
		t.Fatal("enable must raise the hardware signal")
	}
	coord.SetEnabled(false)
	if sim.HardwareEnabled() {
		t.Fatal("disable must drop the hardware signal")
	}
}

func TestDistanceToGo(t *testing.T) {
	coord, sim := newTestRig(t)
	coord.SetEnabled(true)

	if err := coord.MoveSingle(1, 400); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := coord.DistanceToGo(1); got != 400 {
		t.Fatalf("distance to go = %d, want 400", got)
	}
	sim.Settle()
	if got := coord.DistanceToGo(1); got != 0 {
		t.Fatalf("distance after settle = %d, want 0", got)
	}
	if coord.IsAnyMoving() {
		t.Fatal("nothing should be moving after settle")
	}
}
