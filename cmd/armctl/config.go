package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// runtimeConfig are the armctl process settings; the joint table itself
// lives in its own file loaded by internal/config.
type runtimeConfig struct {
	ListenAddr    string
	ArmConfigPath string
	SerialPort    string
	SerialBaud    int
}

// armctl config.toml key mapping to runtime settings.
type fileConfig struct {
	ListenAddr    string `toml:"listen_addr"`
	ArmConfigPath string `toml:"arm_config_path"`
	SerialPort    string `toml:"serial_port"`
	SerialBaud    int    `toml:"serial_baud"`
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		ListenAddr: ":8080",
		SerialBaud: 115200,
	}
}

// loadRuntimeConfig overlays a TOML file onto the defaults. Only keys
// actually present in the file override.
func loadRuntimeConfig(path string) (runtimeConfig, error) {
	cfg := defaultRuntimeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("load armctl config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("arm_config_path") {
		cfg.ArmConfigPath = strings.TrimSpace(raw.ArmConfigPath)
	}
	if meta.IsDefined("serial_port") {
		cfg.SerialPort = strings.TrimSpace(raw.SerialPort)
	}
	if meta.IsDefined("serial_baud") {
		cfg.SerialBaud = raw.SerialBaud
	}

	if cfg.ListenAddr == "" {
		return runtimeConfig{}, fmt.Errorf("armctl config: listen_addr must not be empty")
	}
	if cfg.SerialBaud <= 0 {
		return runtimeConfig{}, fmt.Errorf("armctl config: serial_baud must be positive")
	}
	return cfg, nil
}
