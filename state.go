// FILE: lixenwraith/pebble/state.go
package pebble

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

// State encapsulates the runtime state of the logger
type State struct {
	IsInitialized   atomic.Bool
	Started         atomic.Bool
	ShutdownCalled  atomic.Bool
	ProcessorExited atomic.Bool // Tracks if the dispatcher goroutine is running or has exited

	flushRequestChan chan chan struct{} // Channel to request a flush
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	ActiveQueue atomic.Value // stores *recordQueue
	Dispatcher  atomic.Int32 // stores DispatcherState

	// Counters surfaced through Stats
	LoggerStartTime    atomic.Value  // stores time.Time for uptime calculation
	TotalLogsProcessed atomic.Uint64 // Records delivered to every selected sink
	DroppedLogs        atomic.Uint64 // Records rejected by a closed or full queue
}

// Format is a value copy of the shared formatting state.
type Format struct {
	MinLevel           int64
	Sink               string
	MaxFileBytes       int64
	MaxFileGenerations int64
	Directory          string
	Name               string
	TimeFormat         string
	ConsolePrefix      string
	TraceEnabled       bool
}

// FormatState guards the Format shared by producers, sinks and middleware.
// Every read and write goes through one mutex.
type FormatState struct {
	mu sync.Mutex
	f  Format
}

// NewFormatState creates a FormatState holding f. f is not validated.
func NewFormatState(f Format) *FormatState {
	return &FormatState{f: f}
}

// formatFromConfig derives the initial formatting state from a configuration
func formatFromConfig(cfg *Config) Format {
	return Format{
		MinLevel:           cfg.Level,
		Sink:               cfg.Sink,
		MaxFileBytes:       cfg.MaxFileBytes,
		MaxFileGenerations: cfg.MaxFileGenerations,
		Directory:          cfg.Directory,
		Name:               cfg.Name,
		TimeFormat:         cfg.TimestampFormat,
		ConsolePrefix:      cfg.ConsolePrefix,
		TraceEnabled:       cfg.EnableTrace,
	}
}

// Snapshot returns a consistent copy of the current format.
func (s *FormatState) Snapshot() Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f
}

// Update applies fn to a copy of the format and commits it only if fn succeeds
// and the result is valid. Either every change lands or none does.
func (s *FormatState) Update(fn func(f *Format) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.f
	if err := fn(&next); err != nil {
		return err
	}
	if err := next.validate(); err != nil {
		return err
	}
	s.f = next
	return nil
}

// reset replaces the whole format
func (s *FormatState) reset(f Format) {
	s.mu.Lock()
	s.f = f
	s.mu.Unlock()
}

// validate checks the invariants every committed format must hold
func (f *Format) validate() error {
	if f.Name == "" {
		return fmtErrorf("log name cannot be empty")
	}
	if strings.ContainsRune(f.Name, filepath.Separator) || strings.ContainsRune(f.Name, '/') {
		return fmtErrorf("log name must not contain path separators: %s", f.Name)
	}
	if f.TimeFormat == "" {
		return fmtErrorf("time format cannot be empty")
	}
	if f.MaxFileBytes < 0 {
		return fmtErrorf("max file bytes cannot be negative: %d", f.MaxFileBytes)
	}
	if f.MaxFileGenerations < 1 {
		return fmtErrorf("max file generations must be at least 1: %d", f.MaxFileGenerations)
	}
	switch f.Sink {
	case SinkConsole, SinkFile, SinkBoth:
	default:
		return fmtErrorf("invalid sink: '%s'", f.Sink)
	}
	return nil
}

// shouldEmit reports whether a record at level passes the filter.
// TRACE is gated only by TraceEnabled.
func (f *Format) shouldEmit(level int64) bool {
	if level == LevelTrace {
		return f.TraceEnabled
	}
	return level >= f.MinLevel
}

// toConsole reports whether the console sink is selected
func (f *Format) toConsole() bool {
	return f.Sink == SinkConsole || f.Sink == SinkBoth
}

// toFile reports whether the file sink is selected
func (f *Format) toFile() bool {
	return f.Sink == SinkFile || f.Sink == SinkBoth
}
