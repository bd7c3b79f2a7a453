// FILE: lixenwraith/pebble/heartbeat.go
package pebble

import (
	"fmt"
	"time"
)

// Stats is a point-in-time view of the logger's counters
type Stats struct {
	Uptime                time.Duration
	Processed             uint64 // Records written to every selected sink
	Dropped               uint64 // Records rejected by a closed or full queue
	Queued                int    // Records waiting for the dispatcher
	Rotations             uint64
	RotationFailures      uint64
	WriteFailures         uint64 // Console and file write failures
	DiagnosticsReported   uint64
	DiagnosticsSuppressed uint64 // Reports dropped by the rate limit
	Dispatcher            DispatcherState
}

// Stats returns the current counters
func (l *Logger) Stats() Stats {
	var uptime time.Duration
	if startTime, ok := l.state.LoggerStartTime.Load().(time.Time); ok && !startTime.IsZero() {
		uptime = time.Since(startTime)
	}

	return Stats{
		Uptime:                uptime,
		Processed:             l.state.TotalLogsProcessed.Load(),
		Dropped:               l.state.DroppedLogs.Load(),
		Queued:                l.getActiveQueue().len(),
		Rotations:             l.file.rotations.Load(),
		RotationFailures:      l.file.rotationFailures.Load(),
		WriteFailures:         l.file.writeFailures.Load() + l.console.writeFailures.Load(),
		DiagnosticsReported:   l.diag.Reported(),
		DiagnosticsSuppressed: l.diag.Suppressed(),
		Dispatcher:            l.DispatcherState(),
	}
}

// Heartbeat logs the current counters as one record at the minimum level, with the
// file sink's generation count and disk usage when file output is selected.
func (l *Logger) Heartbeat() {
	s := l.Stats()
	f := l.format.Snapshot()

	args := []any{
		"type=proc",
		"uptime_hours=" + fmt.Sprintf("%.2f", s.Uptime.Hours()),
		fmt.Sprintf("processed_logs=%d", s.Processed),
		fmt.Sprintf("dropped_logs=%d", s.Dropped),
	}

	if f.toFile() {
		args = append(args,
			fmt.Sprintf("rotated_files=%d", s.Rotations),
			fmt.Sprintf("rotation_failures=%d", s.RotationFailures),
			fmt.Sprintf("log_file_count=%d", len(l.file.Generations(f))),
			fmt.Sprintf("total_log_size_mb=%.2f", float64(l.file.DiskUsage(f))/(1024*1024)),
		)
	}

	l.Log(f.MinLevel, args...)
}
