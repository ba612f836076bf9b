// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it when the
//              operation ends. The engine times every parse run with it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation with performance timing

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
	elapsed   time.Duration
}

// NewTimer creates a new timer for the given operation. A nil logger is
// allowed; the timer then only measures.
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// WithFields adds multiple fields to be logged when the timer completes
func (t *Timer) WithFields(fields Fields) *Timer {
	for k, v := range fields {
		t.fields[k] = v
	}
	return t
}

// Elapsed returns the time since the timer was started, or the final
// duration once stopped
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return time.Since(t.startTime)
}

// Stop stops the timer and logs "<operation> completed" with the elapsed
// time. Only the first call logs; later calls return the same duration.
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, t.operation+" completed", nil)
}

// StopWithError stops the timer and logs "<operation> failed". The level
// follows the severity of err the same way LogError does.
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(errorLevel(err), t.operation+" failed", err)
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

// StartTime returns the time when the timer was started
func (t *Timer) StartTime() time.Time {
	return t.startTime
}

func (t *Timer) finish(level Level, message string, err error) time.Duration {
	if t.stopped {
		return t.elapsed
	}
	t.elapsed = time.Since(t.startTime)
	t.stopped = true

	if t.logger == nil || !t.logger.IsLevelEnabled(level) {
		return t.elapsed
	}

	entry := NewEntry(level, message)
	entry.Logger = t.logger.name
	entry.RunID = t.logger.runID
	entry.Error = err
	entry.Duration = t.elapsed
	entry.Fields = t.logger.contextFields.Merge(t.fields)
	entry.Fields["operation"] = t.operation
	entry.Fields["success"] = err == nil

	t.logger.write(entry)
	return t.elapsed
}
