package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "memewire.log")
	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("counter loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["msg"] != "counter loaded" || entry["level"] != "info" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", ""); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := NewConsole("chatty"); err == nil {
		t.Fatalf("expected error for bad level")
	}
}
