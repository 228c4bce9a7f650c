package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/armkit/armctl/internal/joint"
)

// JointConfig is one [[joints]] entry in the arm table. Pin numbers are
// opaque to the core; they only surface in reports.
type JointConfig struct {
	Name         string `toml:"name"`
	StepPin      int    `toml:"step_pin"`
	DirPin       int    `toml:"dir_pin"`
	StepsPerRev  int    `toml:"steps_per_rev"`
	Microstep    int    `toml:"microstep"`
	MaxSpeedHz   uint32 `toml:"max_speed_hz"`
	Acceleration uint32 `toml:"acceleration"`
	InvertDir    bool   `toml:"invert_dir"`
	MinPosition  int64  `toml:"min_position"`
	MaxPosition  int64  `toml:"max_position"`
}

// ArmConfig is the startup joint table.
type ArmConfig struct {
	Joints []JointConfig `toml:"joints"`
}

// Default mirrors the reference six joint arm: NEMA-class steppers at
// 200 steps/rev, 1 kHz max step rate, and symmetric soft limits.
func Default() ArmConfig {
	names := []string{"J1-Base", "J2-Shoulder", "J3-Elbow", "J4-WristPitch", "J5-WristRoll", "J6-Gripper"}
	stepPins := []int{2, 16, 18, 21, 23, 26}
	dirPins := []int{4, 17, 19, 22, 25, 27}

	joints := make([]JointConfig, len(names))
	for i := range names {
		joints[i] = JointConfig{
			Name:         names[i],
			StepPin:      stepPins[i],
			DirPin:       dirPins[i],
			StepsPerRev:  200,
			Microstep:    16,
			MaxSpeedHz:   1000,
			Acceleration: 500,
			MinPosition:  -100000,
			MaxPosition:  100000,
		}
	}
	return ArmConfig{Joints: joints}
}

// Load reads an arm table from a TOML file. An empty joint list falls
// back to the defaults; a partially specified table is taken as-is so a
// misconfigured arm fails validation instead of silently growing
// default joints.
func Load(path string) (ArmConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ArmConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var cfg ArmConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ArmConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if len(cfg.Joints) == 0 {
		cfg = Default()
	}
	if err := Validate(cfg); err != nil {
		return ArmConfig{}, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants: every joint named, limits
// spanning zero, sane mechanical parameters.
func Validate(cfg ArmConfig) error {
	if len(cfg.Joints) == 0 {
		return fmt.Errorf("arm config has no joints")
	}
	if len(cfg.Joints) > joint.Count {
		return fmt.Errorf("arm config has %d joints, max %d", len(cfg.Joints), joint.Count)
	}
	for i, j := range cfg.Joints {
		if strings.TrimSpace(j.Name) == "" {
			return fmt.Errorf("joint[%d] missing name", i)
		}
		if j.MinPosition > 0 || j.MaxPosition < 0 {
			return fmt.Errorf("joint[%d] %s limits must satisfy min <= 0 <= max (min=%d max=%d)",
				i, j.Name, j.MinPosition, j.MaxPosition)
		}
		if j.MaxSpeedHz == 0 {
			return fmt.Errorf("joint[%d] %s max_speed_hz must be positive", i, j.Name)
		}
	}
	return nil
}

// Registry converts the loaded table into the immutable joint registry.
func (cfg ArmConfig) Registry() (*joint.Registry, error) {
	configs := make([]joint.Config, len(cfg.Joints))
	for i, j := range cfg.Joints {
		configs[i] = joint.Config{
			Name:         j.Name,
			StepPin:      j.StepPin,
			DirPin:       j.DirPin,
			StepsPerRev:  j.StepsPerRev,
			Microstep:    j.Microstep,
			MaxSpeedHz:   j.MaxSpeedHz,
			Acceleration: j.Acceleration,
			InvertDir:    j.InvertDir,
			MinPosition:  j.MinPosition,
			MaxPosition:  j.MaxPosition,
		}
	}
	return joint.NewRegistry(configs)
}
