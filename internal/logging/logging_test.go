package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}

	logger.Debug("hidden")
	logger.Info("visible")
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line below info filtered, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "visible" {
		t.Fatalf("unexpected message %v", entry["msg"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("expected timestamp key in %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "console", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("seed pass complete")
	if !strings.Contains(buf.String(), "seed pass complete") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	if _, err := New("loud", "json", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
