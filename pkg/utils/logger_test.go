package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesWhenVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "daylog.log")
	if err := InitLogger(true, path); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	Log("saved %d bytes", 42)
	CloseLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "saved 42 bytes") {
		t.Fatalf("log missing line: %q", data)
	}
}

func TestLogSilentByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	if err := InitLogger(false, path); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	Log("nothing")
	CloseLogger()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("log file should not exist, stat err = %v", err)
	}
}
