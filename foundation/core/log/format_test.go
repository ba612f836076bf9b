// File: format_test.go
// Title: Log Format Tests
// Description: Tests for format parsing and the JSON, text and console
//              formatters.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial formatter tests

package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func sampleEntry() *Entry {
	entry := NewEntry(LevelWarn, "Skipping unrecognized characters")
	entry.Timestamp = time.Date(2026, 10, 18, 12, 30, 45, 0, time.UTC)
	entry.Logger = "turtle"
	entry.Fields = Fields{"line": 2, "column": 7, "text": "+"}
	return entry
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"text", FormatText, false},
		{"", FormatText, false},
		{" console ", FormatConsole, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		"":        LevelInfo,
		"warning": LevelWarn,
		"err":     LevelError,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", input, got, err, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil || err.Error() != "invalid level: loud" {
		t.Errorf("ParseLevel(loud) error = %v", err)
	}
}

func TestLevelNames(t *testing.T) {
	names := LevelNames()
	if len(names) != int(LevelError)+1 {
		t.Fatalf("LevelNames() = %v", names)
	}
	for i, name := range names {
		level := Level(i)
		if level.String() != name {
			t.Errorf("Level(%d).String() = %q, want %q", i, level.String(), name)
		}
		parsed, err := ParseLevel(level.ShortString())
		if err != nil || parsed != level {
			t.Errorf("ParseLevel(%q) = %v, %v", level.ShortString(), parsed, err)
		}
	}

	if Level(-1).String() != "unknown" || Level(9).ShortString() != "???" {
		t.Errorf("out of range levels = %q, %q", Level(-1).String(), Level(9).ShortString())
	}
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(sampleEntry())
	if err != nil {
		t.Fatal(err)
	}

	want := "12:30:45 [WRN] {turtle} Skipping unrecognized characters [column=7 line=2 text=+]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestTextFormatterErrorAndDuration(t *testing.T) {
	entry := sampleEntry()
	entry.Fields = nil
	entry.RunID = "r1"
	entry.Error = errors.New("bad")
	entry.Duration = 1500 * time.Microsecond

	formatter := NewTextFormatter()
	formatter.DisableTimestamp = true
	out, _ := formatter.Format(entry)

	want := "[WRN] {turtle} (run=r1) Skipping unrecognized characters error=\"bad\" duration=1.5ms\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	entry := sampleEntry()
	entry.RunID = "r1"
	entry.Duration = 2 * time.Millisecond

	out, err := NewJSONFormatter().Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Error("JSON entry should end with a newline")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatal(err)
	}

	if data["timestamp"] != "2026-10-18T12:30:45Z" {
		t.Errorf("timestamp = %v", data["timestamp"])
	}
	if data["level"] != "warn" || data["run_id"] != "r1" || data["duration_ms"] != float64(2) {
		t.Errorf("data = %v", data)
	}
	if data["line"] != float64(2) {
		t.Errorf("line = %v", data["line"])
	}
}

func TestConsoleFormatter(t *testing.T) {
	formatter := NewConsoleFormatter()
	out, err := formatter.Format(sampleEntry())
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"[WRN]", "Skipping unrecognized characters", "line=2"} {
		if !strings.Contains(string(out), part) {
			t.Errorf("console output %q missing %q", out, part)
		}
	}

	formatter.DisableColors = true
	plain, _ := formatter.Format(sampleEntry())
	text, _ := NewTextFormatter().Format(sampleEntry())
	if string(plain) != string(text) {
		t.Errorf("uncolored console output = %q, want %q", plain, text)
	}
}

func TestGetFormatter(t *testing.T) {
	if _, ok := GetFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("FormatJSON should give a JSONFormatter")
	}
	if _, ok := GetFormatter(FormatConsole).(*ConsoleFormatter); !ok {
		t.Error("FormatConsole should give a ConsoleFormatter")
	}
	if _, ok := GetFormatter(Format(99)).(*TextFormatter); !ok {
		t.Error("unknown formats should fall back to text")
	}
}
