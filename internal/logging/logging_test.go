package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONWithSessionToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "storefront.log")

	logger, err := New(Options{Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg = %v, want hello", entry["msg"])
	}
	session, _ := entry["session"].(string)
	if _, err := uuid.Parse(session); err != nil {
		t.Fatalf("session = %q, want a uuid", session)
	}
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	logger, err := New(Options{Level: "error", Path: filepath.Join(t.TempDir(), "x.log"), Verbose: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug not enabled with Verbose")
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("New returned nil error for unknown level")
	}
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	level, err := parseLevel("  ")
	if err != nil || level != zapcore.InfoLevel {
		t.Fatalf("parseLevel blank = %v, %v; want info, nil", level, err)
	}
}
