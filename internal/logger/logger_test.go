package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestZapWritesStructuredObject(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	log.InfoObj("request done", "request", map[string]any{"status": 200})
	log.DebugObj("hidden at info", "request", nil)
	_ = log.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at info level, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "request done" || entry["ts"] == nil {
		t.Fatalf("unexpected entry %v", entry)
	}
	req, ok := entry["request"].(map[string]any)
	if !ok || req["status"] != float64(200) {
		t.Fatalf("object field missing: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	var buf bytes.Buffer
	New("debug", &buf).DebugObj("visible", "k", 1)
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug level should emit debug entries")
	}

	buf.Reset()
	New("bogus", &buf).DebugObj("hidden", "k", 1)
	if buf.Len() != 0 {
		t.Fatalf("unknown level should default to info")
	}
}

func TestNilZapIsSafe(t *testing.T) {
	var z *Zap
	z.InfoObj("x", "k", 1)
	if err := z.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

func TestInitWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := Init("warn", &buf)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.InfoObj("hidden at warn", "k", 1)
	log.WarnObj("kept", "k", 1)

	if got := buf.String(); !strings.Contains(got, "kept") || strings.Contains(got, "hidden at warn") {
		t.Fatalf("unexpected log output %q", got)
	}
}
