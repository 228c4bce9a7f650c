package motion

import "sync"

// Simulator is an in-memory Backend. Moves latch the target and leave
// the joint "running" until Settle is called, which snaps current
// positions to their targets. It is the default backend when no step
// generator is attached and the test double for the coordinator.
type Simulator struct {
	mu      sync.Mutex
	joints  int
	current []int64
	target  []int64
	running []bool
	hwOn    bool

	stops int
}

func NewSimulator(joints int) *Simulator {
	return &Simulator{
		joints:  joints,
		current: make([]int64, joints),
		target:  make([]int64, joints),
		running: make([]bool, joints),
	}
}

func (s *Simulator) valid(joint int) bool { return joint >= 0 && joint < s.joints }

func (s *Simulator) MoveTo(joint int, pos int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(joint) {
		return
	}
	s.target[joint] = pos
	s.running[joint] = s.current[joint] != pos
}

func (s *Simulator) ForceStop(joint int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(joint) {
		return
	}
	// A stopped joint keeps its position; the target collapses onto it.
	s.target[joint] = s.current[joint]
	s.running[joint] = false
	s.stops++
}

func (s *Simulator) CurrentPosition(joint int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(joint) {
		return 0
	}
	return s.current[joint]
}

func (s *Simulator) TargetPosition(joint int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(joint) {
		return 0
	}
	return s.target[joint]
}

func (s *Simulator) SetCurrentPosition(joint int, pos int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(joint) {
		return
	}
	s.current[joint] = pos
	s.target[joint] = pos
	s.running[joint] = false
}

func (s *Simulator) IsRunning(joint int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(joint) {
		return false
	}
	return s.running[joint]
}

func (s *Simulator) Configure(joint int, maxSpeedHz, accel uint32, invertDir bool) {}

func (s *Simulator) SetHardwareEnable(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hwOn = on
}

// HardwareEnabled reports the state of the simulated enable signal.
func (s *Simulator) HardwareEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hwOn
}

// Settle completes all in-flight motion, snapping current positions to
// their targets.
func (s *Simulator) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current {
		s.current[i] = s.target[i]
		s.running[i] = false
	}
}

// StopCount returns how many per-joint stop signals have been issued.
func (s *Simulator) StopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}
