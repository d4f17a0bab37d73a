package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(&buffer, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "medication_id", "abc")

	output := buffer.String()
	if strings.Contains(output, "hidden") {
		t.Fatalf("expected info record to be filtered, got %q", output)
	}
	if !strings.Contains(output, "msg=shown") || !strings.Contains(output, "medication_id=abc") {
		t.Fatalf("expected warn record with attributes, got %q", output)
	}
}
