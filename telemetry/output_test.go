package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/galaxies/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// A nil manager accepts and discards writes
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("unexpected error from nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("unexpected error closing nil manager: %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}

	for i := int64(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 120, Stars: 500}); err != nil {
			t.Fatalf("writing telemetry: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, i*120); err != nil {
			t.Fatalf("writing perf: %v", err)
		}
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	for _, name := range []string{"telemetry.csv", "perf.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s: expected header and 3 rows, got %d lines", name, len(lines))
		}
		if !strings.HasPrefix(lines[0], "window_end") {
			t.Errorf("%s: expected header first, got %q", name, lines[0])
		}
		if strings.Count(string(data), "window_end") != 1 {
			t.Errorf("%s: expected a single header", name)
		}
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}
