package joint

import (
	"errors"
	"fmt"
)

// Count is the number of joints in the reference configuration.
const Count = 6

var ErrInvalidLimits = errors.New("joint: invalid position limits")

// Config is the immutable per-joint configuration fixed at startup.
// StepPin and DirPin are opaque to the core and only surface in the
// settings report and the config API.
type Config struct {
	Name         string
	StepPin      int
	DirPin       int
	StepsPerRev  int
	Microstep    int
	MaxSpeedHz   uint32
	Acceleration uint32
	InvertDir    bool
	MinPosition  int64
	MaxPosition  int64
}

// Validate enforces MinPosition <= 0 <= MaxPosition.
func (c Config) Validate() error {
	if c.MinPosition > 0 || c.MaxPosition < 0 {
		return fmt.Errorf("%w: %s min=%d max=%d must satisfy min <= 0 <= max",
			ErrInvalidLimits, c.Name, c.MinPosition, c.MaxPosition)
	}
	return nil
}

// Registry holds the fixed joint configuration table. It is read-only
// after construction and shared between the coordinator and transports.
type Registry struct {
	configs []Config
}

// NewRegistry validates every joint config. A violated limit invariant
// is a startup-time fatal condition, so construction fails rather than
// deferring to a runtime error.
func NewRegistry(configs []Config) (*Registry, error) {
	if len(configs) == 0 {
		return nil, errors.New("joint: empty registry")
	}
	if len(configs) > Count {
		return nil, fmt.Errorf("joint: %d joints exceeds capacity %d", len(configs), Count)
	}
	for i, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("joint[%d]: %w", i, err)
		}
	}
	cs := make([]Config, len(configs))
	copy(cs, configs)
	return &Registry{configs: cs}, nil
}

// Len returns the joint count N.
func (r *Registry) Len() int { return len(r.configs) }

// Valid reports whether idx is a valid zero-based joint index.
func (r *Registry) Valid(idx int) bool { return idx >= 0 && idx < len(r.configs) }

// Config returns the configuration for a joint. Invalid indexes return
// the zero Config, matching the best-effort contract of status queries.
func (r *Registry) Config(idx int) Config {
	if !r.Valid(idx) {
		return Config{}
	}
	return r.configs[idx]
}

// WithinLimits reports whether pos is inside the joint's hard bounds.
// Both bounds are inclusive. An invalid index is never within limits.
func (r *Registry) WithinLimits(idx int, pos int64) bool {
	if !r.Valid(idx) {
		return false
	}
	c := r.configs[idx]
	return pos >= c.MinPosition && pos <= c.MaxPosition
}
