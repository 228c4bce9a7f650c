package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestInitLoggerTagsAppName(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger("armctl", &buf, LogOptions{NoColor: true})
	logger.Info().Msg("booting")

	out := buf.String()
	if !strings.Contains(out, "booting") {
		t.Fatalf("log output missing message: %q", out)
	}
	if !strings.Contains(out, "app=armctl") {
		t.Fatalf("log output missing app tag: %q", out)
	}
}

func TestInitLoggerInstallsGlobal(t *testing.T) {
	var buf bytes.Buffer
	InitLogger("armctl", &buf, LogOptions{NoColor: true})
	log.Info().Msg("via global")

	if !strings.Contains(buf.String(), "via global") {
		t.Fatalf("global logger not installed: %q", buf.String())
	}
}
