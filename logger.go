// FILE: lixenwraith/pebble/logger.go
package pebble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrNotInitialized is returned by Start and Flush before a configuration has been applied.
var ErrNotInitialized = errors.New("pebble: logger not initialized, call ApplyConfig first")

// ErrDispatcherBusy is returned by Start while a dispatcher from a timed-out Stop is still draining.
var ErrDispatcherBusy = errors.New("pebble: previous dispatcher still draining, retry Start later")

// Logger is the core struct that encapsulates all logger functionality
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State
	initMu        sync.Mutex

	format  *FormatState
	chain   *Chain
	console *ConsoleSink
	file    *FileSink
	diag    *Diagnostics

	consoleOut io.Writer // explicit console destination, overrides console_target

	cancel context.CancelFunc // stops the running dispatcher
	done   chan struct{}      // closed when the running dispatcher exits
}

// NewLogger creates a new Logger instance with default settings.
// A configuration must be applied before Start.
func NewLogger() *Logger {
	cfg := DefaultConfig()

	l := &Logger{}
	l.currentConfig.Store(cfg)

	l.diag = NewDiagnostics(nil)
	l.format = NewFormatState(formatFromConfig(cfg))
	l.console = NewConsoleSink(consoleWriter(cfg.ConsoleTarget), cfg.ConsoleColor, l.diag)
	l.file = NewFileSink(l.diag)
	l.chain = newChain(l)

	// Initialize the state
	l.state.IsInitialized.Store(false)
	l.state.Started.Store(false)
	l.state.ShutdownCalled.Store(false)
	l.state.ProcessorExited.Store(true)
	l.state.LoggerStartTime.Store(time.Now())
	l.setDispatcherState(DispatcherStopped)

	// A closed queue until Start, so early records are counted as dropped
	l.state.ActiveQueue.Store(newClosedQueue())

	l.state.flushRequestChan = make(chan chan struct{}, 1)

	return l
}

// ApplyConfig applies a validated configuration to the logger.
// When a formatting key (level, sink, rotation limits, directory, name, timestamp
// format, prefix, trace) changes, the formatting state is rebuilt from cfg and
// earlier middleware effects are discarded. Pipeline and console keys keep them.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	return l.applyConfig(cfg.Clone())
}

// Configure sets the core settings on top of the current configuration.
func (l *Logger) Configure(level int64, sink string, maxFileBytes, maxFileGenerations int64, directory, name string) error {
	cfg := l.getConfig().Clone()
	cfg.Level = level
	cfg.Sink = sink
	cfg.MaxFileBytes = maxFileBytes
	cfg.MaxFileGenerations = maxFileGenerations
	cfg.Directory = directory
	cfg.Name = name
	return l.ApplyConfig(cfg)
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// Format returns the shared formatting state
func (l *Logger) Format() *FormatState {
	return l.format
}

// Middleware returns the logger's middleware chain
func (l *Logger) Middleware() *Chain {
	return l.chain
}

// SetConsoleWriter redirects console output to w, overriding console_target.
// A nil w restores the configured target.
func (l *Logger) SetConsoleWriter(w io.Writer) {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.consoleOut = w
	if w == nil {
		w = consoleWriter(l.getConfig().ConsoleTarget)
	}
	l.console.SetWriter(w)
}

// SetDiagnostics redirects the engine's own failure reports to z
func (l *Logger) SetDiagnostics(z *zap.Logger) {
	l.diag.SetLogger(z)
}

// Start begins record processing. Safe to call multiple times.
// Returns error if logger is not initialized
func (l *Logger) Start() error {
	if !l.state.IsInitialized.Load() {
		return ErrNotInitialized
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	return l.startLocked()
}

// startLocked launches the dispatcher, assuming initMu is held
func (l *Logger) startLocked() error {
	if l.state.Started.Load() {
		return nil
	}

	// One dispatcher per logger: a run left behind by a timed-out Stop must exit first
	if l.done != nil {
		select {
		case <-l.done:
		default:
			return ErrDispatcherBusy
		}
	}

	if !l.state.Started.CompareAndSwap(false, true) {
		return nil
	}

	cfg := l.getConfig()

	var pool *WorkerPool
	if cfg.Workers != 0 {
		p, err := NewWorkerPool(int(cfg.Workers))
		if err != nil {
			l.state.Started.Store(false)
			return err
		}
		p.panics = func(r any) {
			l.diag.Report("sink write panicked", fmt.Errorf("%v", r))
		}
		pool = p
	}

	q := newRecordQueue(cfg.BufferSize)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done

	l.state.ProcessorExited.Store(false)
	l.state.ActiveQueue.Store(q)
	go l.processRecords(ctx, q, pool, done)

	return nil
}

// Stop halts record processing after draining what is already queued.
// Records logged after Stop are dropped. Can be restarted with Start().
// Returns nil if already stopped
func (l *Logger) Stop(timeout ...time.Duration) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	return l.stopLocked(l.effectiveTimeout(timeout))
}

// stopLocked signals the dispatcher and waits for it, assuming initMu is held
func (l *Logger) stopLocked(timeout time.Duration) error {
	if !l.state.Started.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	// New records go to a closed queue from here on
	l.state.ActiveQueue.Store(newClosedQueue())
	l.cancel()

	select {
	case <-l.done:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("dispatcher did not exit within timeout (%v)", timeout)
	}
}

// Shutdown stops processing and marks the logger uninitialized.
// If no timeout is provided, uses stop_timeout_ms.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	if !l.state.IsInitialized.Load() {
		l.state.ShutdownCalled.Store(false)
		return nil
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	stopErr := l.stopLocked(l.effectiveTimeout(timeout))
	l.state.IsInitialized.Store(false)

	// stderr commonly rejects sync, nothing useful to report
	_ = l.diag.Sync()

	return stopErr
}

// Flush waits until every record queued before the call has been written.
func (l *Logger) Flush(timeout time.Duration) error {
	l.state.flushMutex.Lock()
	defer l.state.flushMutex.Unlock()

	// State checks
	if !l.state.IsInitialized.Load() || l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger not initialized or already shut down")
	}
	if !l.state.Started.Load() {
		return fmtErrorf("logger not started")
	}

	// Create a channel to wait for confirmation from the dispatcher
	confirmChan := make(chan struct{})

	// Send the request with the confirmation channel
	select {
	case l.state.flushRequestChan <- confirmChan:
		// Request sent
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if dispatcher is stuck
		return fmtErrorf("failed to send flush request to dispatcher (possible deadlock or high load)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// effectiveTimeout picks the caller's timeout or the configured default
func (l *Logger) effectiveTimeout(timeout []time.Duration) time.Duration {
	if len(timeout) > 0 && timeout[0] > 0 {
		return timeout[0]
	}
	return time.Duration(l.getConfig().StopTimeoutMs) * time.Millisecond
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (l *Logger) applyConfig(cfg *Config) error {
	oldCfg := l.getConfig()
	wasInitialized := l.state.IsInitialized.Load()
	needsRestart := wasInitialized && l.state.Started.Load() && configRequiresRestart(oldCfg, cfg)

	// Stop dispatcher if restart needed, draining with the old settings
	if needsRestart {
		if err := l.stopLocked(l.effectiveTimeout(nil)); err != nil {
			return fmtErrorf("failed to stop dispatcher for restart: %w", err)
		}
	}

	l.currentConfig.Store(cfg)

	// Middleware effects survive changes that only touch the pipeline or console
	if !wasInitialized || formatFromConfig(oldCfg) != formatFromConfig(cfg) {
		l.format.reset(formatFromConfig(cfg))
	}

	// Setup console writer based on config
	writer := l.consoleOut
	if writer == nil {
		writer = consoleWriter(cfg.ConsoleTarget)
	}
	l.console.SetWriter(writer)
	l.console.SetColor(cfg.ConsoleColor)

	l.diag.SetEnabled(cfg.InternalErrorsToStderr)

	// Mark as initialized
	l.state.IsInitialized.Store(true)
	l.state.ShutdownCalled.Store(false)

	// Restart dispatcher if it was running and needs restart
	if needsRestart {
		return l.startLocked()
	}

	return nil
}
