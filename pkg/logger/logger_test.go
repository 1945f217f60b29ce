package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestInitWithOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithOutput(&buf)

	For("scheduler").Debug("tick")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "scheduler" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["msg"] != "tick" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	var buf bytes.Buffer
	InitWithOutput(&buf)

	For("test").Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
}
