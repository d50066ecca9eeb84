package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestTraceRespectsToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chapters.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	SetTraceEnabled(false)
	Trace("hidden.event", map[string]interface{}{"n": 1})
	if strings.Contains(readLog(t, path), "hidden.event") {
		t.Fatalf("expected no entry while tracing is disabled")
	}

	SetTraceEnabled(true)
	Trace("tab.select", map[string]interface{}{"tab": "compose"})
	out := readLog(t, path)
	if !strings.Contains(out, `"event":"tab.select"`) {
		t.Fatalf("expected event name in log, got %s", out)
	}
	if !strings.Contains(out, `"tab":"compose"`) {
		t.Fatalf("expected payload in log, got %s", out)
	}
}

func TestErrorAlwaysLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	SetTraceEnabled(false)
	Error(nil)
	Error(errors.New("disk full"))
	out := readLog(t, path)
	if !strings.Contains(out, "disk full") {
		t.Fatalf("expected error in log, got %s", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected exactly one entry, got %q", out)
	}
}
