// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, context fields, run IDs,
//              level filtering, error logging and timers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial logger tests

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNew(t *testing.T) {
	logger := New()

	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestWithMethodsDoNotModifyOriginal(t *testing.T) {
	logger := New()

	derived := logger.WithLevel(LevelDebug).
		WithName("turtle").
		WithField("component", "parser").
		WithRunID("run-1")

	if logger.GetLevel() != DefaultLevel() {
		t.Error("WithLevel() modified the original logger")
	}
	if logger.Name() != "" || logger.RunID() != "" {
		t.Error("WithName()/WithRunID() modified the original logger")
	}
	if _, ok := logger.contextFields["component"]; ok {
		t.Error("WithField() modified the original logger")
	}

	if derived.GetLevel() != LevelDebug || derived.Name() != "turtle" || derived.RunID() != "run-1" {
		t.Errorf("derived logger = level %v name %q run %q", derived.GetLevel(), derived.Name(), derived.RunID())
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Trace("trace")
	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v, %v", entries[0]["level"], entries[1]["level"])
	}

	if logger.IsLevelEnabled(LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
}

func TestContextFieldsAndRunID(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger := base.WithName("turtle").
		WithFields(Fields{"component": "engine", "strict": false}).
		WithRunID("abc")

	logger.Info("Program parsed", Fields{"expressions": 3, "component": "override"})

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry := entries[0]

	checks := map[string]interface{}{
		"message":     "Program parsed",
		"logger":      "turtle",
		"run_id":      "abc",
		"component":   "override",
		"strict":      false,
		"expressions": float64(3),
	}
	for key, want := range checks {
		if entry[key] != want {
			t.Errorf("entry[%q] = %v, want %v", key, entry[key], want)
		}
	}
}

func TestLogError(t *testing.T) {
	t.Run("structured error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelTrace, FormatJSON)

		err := mdwerror.New("unexpected token").
			WithCode(mdwerror.CodeTurtleSyntax).
			WithOperation("engine.parse").
			WithDetail("line", 2)
		logger.LogError(err)

		entries := decodeLines(t, buf)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		entry := entries[0]
		if entry["level"] != "info" {
			t.Errorf("level = %v, want info for low severity", entry["level"])
		}
		if entry["error_code"] != "TURTLE_SYNTAX" {
			t.Errorf("error_code = %v", entry["error_code"])
		}
		if entry["error_operation"] != "engine.parse" {
			t.Errorf("error_operation = %v", entry["error_operation"])
		}
		if entry["error_line"] != float64(2) {
			t.Errorf("error_line = %v", entry["error_line"])
		}
		if _, ok := entry["error_details"]; !ok {
			t.Error("structured error should be expanded into error_details")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelTrace, FormatJSON)
		logger.LogError(errors.New("boom"))

		entries := decodeLines(t, buf)
		if len(entries) != 1 || entries[0]["level"] != "error" || entries[0]["error"] != "boom" {
			t.Errorf("entries = %v", entries)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelTrace, FormatJSON)
		logger.LogError(nil)
		if buf.Len() != 0 {
			t.Errorf("nil error produced output %q", buf.String())
		}
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("Discard() logger should not enable any level")
	}
	logger.Error("dropped")
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	logger, buf := newBufferLogger(LevelInfo, FormatText)
	SetDefault(logger)
	SetDefault(nil)

	Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("default logger output = %q", buf.String())
	}
}

func TestTimer(t *testing.T) {
	t.Run("stop logs duration once", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatJSON)
		timer := logger.WithRunID("r1").StartTimer("parse").WithField("tokens", 12)

		time.Sleep(time.Millisecond)
		first := timer.Stop()
		second := timer.Stop()

		if first <= 0 || first != second {
			t.Errorf("Stop() = %v then %v", first, second)
		}
		if timer.IsRunning() {
			t.Error("timer still running after Stop()")
		}

		entries := decodeLines(t, buf)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		entry := entries[0]
		if entry["message"] != "parse completed" || entry["operation"] != "parse" || entry["success"] != true {
			t.Errorf("entry = %v", entry)
		}
		if entry["run_id"] != "r1" || entry["tokens"] != float64(12) {
			t.Errorf("entry = %v", entry)
		}
		if _, ok := entry["duration_ms"]; !ok {
			t.Error("missing duration_ms")
		}
	})

	t.Run("stop with error", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatJSON)
		logger.StartTimer("parse").StopWithError(errors.New("bad"))

		entries := decodeLines(t, buf)
		if len(entries) != 1 || entries[0]["level"] != "error" || entries[0]["message"] != "parse failed" {
			t.Errorf("entries = %v", entries)
		}
	})

	t.Run("stop with error follows severity", func(t *testing.T) {
		logger, buf := newBufferLogger(LevelDebug, FormatJSON)
		err := mdwerror.New("unexpected token").WithCode(mdwerror.CodeTurtleSyntax)
		logger.StartTimer("parse").StopWithError(err)

		entries := decodeLines(t, buf)
		if len(entries) != 1 || entries[0]["level"] != "info" || entries[0]["success"] != false {
			t.Errorf("entries = %v", entries)
		}

		quiet, quietBuf := newBufferLogger(LevelWarn, FormatJSON)
		quiet.StartTimer("parse").StopWithError(err)
		if quietBuf.Len() != 0 {
			t.Errorf("warn logger wrote %q for a low severity error", quietBuf.String())
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		timer := NewTimer(nil, "quiet")
		if timer.Stop() < 0 {
			t.Error("negative duration")
		}
	})
}
