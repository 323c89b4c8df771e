package log

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewLogger verifies the verbose/quiet level split.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops info and debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		out := buf.String()
		if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
			t.Errorf("expected debug/info suppressed, got:\n%s", out)
		}
		if !strings.Contains(out, "warn message") {
			t.Errorf("expected warnings to pass, got:\n%s", out)
		}
	})

	t.Run("verbose logger passes debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("debug message")

		if !strings.Contains(buf.String(), "debug message") {
			t.Errorf("expected debug output in verbose mode, got:\n%s", buf.String())
		}
	})
}
