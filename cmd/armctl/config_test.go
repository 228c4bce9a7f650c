package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadRuntimeConfigOverlaysDefaults(t *testing.T) {
	path := writeTemp(t, `
listen_addr = ":9090"
serial_port = "/dev/ttyUSB0"
`)
	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("listen_addr = %q", cfg.ListenAddr)
	}
	if cfg.SerialPort != "/dev/ttyUSB0" {
		t.Fatalf("serial_port = %q", cfg.SerialPort)
	}
	// Keys absent from the file keep their defaults.
	if cfg.SerialBaud != 115200 {
		t.Fatalf("serial_baud = %d", cfg.SerialBaud)
	}
}

func TestLoadRuntimeConfigEmptyFileKeepsDefaults(t *testing.T) {
	path := writeTemp(t, "")
	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != defaultRuntimeConfig() {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRuntimeConfigRejectsBadValues(t *testing.T) {
	if _, err := loadRuntimeConfig(writeTemp(t, `listen_addr = ""`)); err == nil {
		t.Fatal("expected error for empty listen_addr")
	}
	if _, err := loadRuntimeConfig(writeTemp(t, `serial_baud = -1`)); err == nil {
		t.Fatal("expected error for negative serial_baud")
	}
	if _, err := loadRuntimeConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
