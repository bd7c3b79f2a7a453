// FILE: lixenwraith/pebble/record.go
package pebble

import (
	"fmt"
	"time"
)

// getActiveQueue safely retrieves the current record queue
func (l *Logger) getActiveQueue() *recordQueue {
	return l.state.ActiveQueue.Load().(*recordQueue)
}

// log filters, renders and enqueues one record. It never blocks on I/O.
func (l *Logger) log(level int64, render func() string) {
	if !l.state.IsInitialized.Load() {
		return
	}

	f := l.format.Snapshot()
	if !f.shouldEmit(level) {
		return
	}

	record := logRecord{
		Level: level,
		Text:  renderLine(&f, time.Now(), level, render()),
	}
	l.sendLogRecord(record)
}

// sendLogRecord pushes to the active queue, counting rejected records as dropped
func (l *Logger) sendLogRecord(record logRecord) {
	if l.state.ShutdownCalled.Load() || !l.getActiveQueue().push(record) {
		l.state.DroppedLogs.Add(1)
	}
}

// Log logs args at the given level.
func (l *Logger) Log(level int64, args ...any) {
	l.log(level, func() string { return formatArgs(args) })
}

// Logf logs a formatted message at the given level.
func (l *Logger) Logf(level int64, format string, args ...any) {
	l.log(level, func() string { return fmt.Sprintf(format, args...) })
}

// Print logs args at the current minimum level, so the record always passes the filter.
func (l *Logger) Print(args ...any) {
	l.Log(l.format.Snapshot().MinLevel, args...)
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...any) {
	l.Log(LevelDebug, args...)
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) {
	l.Log(LevelInfo, args...)
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...any) {
	l.Log(LevelWarn, args...)
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) {
	l.Log(LevelError, args...)
}

// Fatal logs a message at fatal level. It does not exit the process.
func (l *Logger) Fatal(args ...any) {
	l.Log(LevelFatal, args...)
}

// Trace logs a message on the trace channel
func (l *Logger) Trace(args ...any) {
	l.Log(LevelTrace, args...)
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...any) {
	l.Logf(LevelDebug, format, args...)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...any) {
	l.Logf(LevelInfo, format, args...)
}

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...any) {
	l.Logf(LevelWarn, format, args...)
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...any) {
	l.Logf(LevelError, format, args...)
}

// Fatalf logs a formatted message at fatal level. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...any) {
	l.Logf(LevelFatal, format, args...)
}

// Tracef logs a formatted message on the trace channel
func (l *Logger) Tracef(format string, args ...any) {
	l.Logf(LevelTrace, format, args...)
}
