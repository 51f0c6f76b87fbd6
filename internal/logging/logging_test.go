package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/sdvig/internal/config"
)

func TestSetupJSONCarriesSession(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(config.LoggingConfig{Level: "info", Format: config.FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	defer closer.Close() //nolint:errcheck

	Component(logger, "store").Info("hello", "k", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if rec["component"] != "store" {
		t.Errorf("component = %v, want store", rec["component"])
	}
	if s, _ := rec["session"].(string); len(s) != 36 {
		t.Errorf("session = %v, want a uuid", rec["session"])
	}
}

func TestSetupLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := Setup(config.LoggingConfig{Level: "warn", Format: config.FormatText}, &buf)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sdvig.log")
	logger, closer, err := Setup(config.LoggingConfig{File: path}, nil)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(-time.Second); got != 0 {
		t.Errorf("RoundMS(-1s) = %v, want 0", got)
	}
	if got := RoundMS(1500 * time.Microsecond); got != 2*time.Millisecond {
		t.Errorf("RoundMS(1.5ms) = %v, want 2ms", got)
	}
}
