// FILE: lixenwraith/pebble/constant.go
package pebble

import (
	"time"
)

// Log level constants, ordered for threshold filtering
const (
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
	LevelFatal int64 = 12
)

// LevelTrace is an out-of-band diagnostic channel.
// It is gated by enable_trace and never compared against the minimum level.
const LevelTrace int64 = 16

// Sink modes
const (
	SinkConsole = "console"
	SinkFile    = "file"
	SinkBoth    = "both"
)

// Console targets
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// WorkersAuto sizes the worker pool to the number of CPUs
const WorkersAuto int64 = -1

// ANSI color sequences per level
const (
	colorReset = "\033[0m"
	colorDebug = "\033[36m"
	colorInfo  = "\033[32m"
	colorWarn  = "\033[33m"
	colorError = "\033[31m"
	colorFatal = "\033[35m"
	colorTrace = "\033[34m"
)

const (
	// Default layout for record timestamps and TimestampTag
	defaultTimeLayout = "2006-01-02 15:04:05"
	// Layout used by DailyFileSuffix
	dailyLayout = "2006-01-02"
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Diagnostics throttle: sustained rate and burst
	diagRatePerSec = 10
	diagBurst      = 10
)
