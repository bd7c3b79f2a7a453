// FILE: lixenwraith/pebble/lifecycle_test.go
package pebble

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStopLifecycle(t *testing.T) {
	logger, _ := createTestLogger(t) // Starts the logger by default

	assert.True(t, logger.state.Started.Load(), "Logger should be in a started state")
	assert.Eventually(t, func() bool { return logger.DispatcherState() == DispatcherIdle }, time.Second, minWaitTime)

	// Stop the logger
	require.NoError(t, logger.Stop())
	assert.False(t, logger.state.Started.Load(), "Logger should be in a stopped state after Stop()")
	assert.True(t, logger.state.ProcessorExited.Load())
	assert.Equal(t, DispatcherStopped, logger.DispatcherState())

	// Start it again
	require.NoError(t, logger.Start())
	assert.True(t, logger.state.Started.Load(), "Logger should be in a started state after restart")
}

func TestStartAlreadyStarted(t *testing.T) {
	logger, _ := createTestLogger(t)

	assert.True(t, logger.state.Started.Load())

	// Calling Start() on an already started logger should be a no-op and return no error
	assert.NoError(t, logger.Start())
	assert.True(t, logger.state.Started.Load())
}

func TestStopAlreadyStopped(t *testing.T) {
	logger, _ := createTestLogger(t)

	// Stop it once
	require.NoError(t, logger.Stop())
	assert.False(t, logger.state.Started.Load())

	// Calling Stop() on an already stopped logger should be a no-op and return no error
	assert.NoError(t, logger.Stop())
	assert.False(t, logger.state.Started.Load())
}

func TestStopReconfigureRestart(t *testing.T) {
	tmpDir := t.TempDir()
	logger := NewLogger()

	cfg1 := DefaultConfig()
	cfg1.Sink = SinkFile
	cfg1.Directory = tmpDir
	require.NoError(t, logger.ApplyConfig(cfg1))

	// Start and log
	require.NoError(t, logger.Start())
	logger.Info("first message")
	require.NoError(t, logger.Stop())

	// Reconfigure: prefix and pool
	cfg2 := logger.GetConfig()
	cfg2.ConsolePrefix = "v2"
	cfg2.Workers = 2
	require.NoError(t, logger.ApplyConfig(cfg2))

	// Restart and log
	require.NoError(t, logger.Start())
	logger.Info("second message")
	require.NoError(t, logger.Shutdown(time.Second))

	lines := readLines(t, filepath.Join(tmpDir, "app.log"))
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "] [INFO] first message")
	assert.Contains(t, lines[1], "] v2 [INFO] second message")
}

func TestRestartOnPipelineChange(t *testing.T) {
	logger, out := createConsoleLogger(t)

	logger.Info("before")

	// Changing buffer size rebuilds the queue while started
	require.NoError(t, logger.ApplyOverride("buffer_size=16", "workers=1"))
	assert.True(t, logger.state.Started.Load())

	logger.Info("after")
	require.NoError(t, logger.Flush(time.Second))

	lines := out.lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "before")
	assert.Contains(t, lines[1], "after")
}

func TestLoggingOnStoppedLogger(t *testing.T) {
	logger, tmpDir := createTestLogger(t)

	// Log something while running
	logger.Info("this should be logged")
	require.NoError(t, logger.Flush(time.Second))

	// Stop the logger
	require.NoError(t, logger.Stop())

	// Attempt to log while stopped
	logger.Warn("this should NOT be logged")
	assert.Equal(t, uint64(1), logger.Stats().Dropped)

	require.NoError(t, logger.Shutdown(time.Second))

	content, err := os.ReadFile(filepath.Join(tmpDir, "test.log"))
	require.NoError(t, err)

	assert.Contains(t, string(content), "this should be logged")
	assert.NotContains(t, string(content), "this should NOT be logged")
}

func TestStopDrainsQueue(t *testing.T) {
	logger, tmpDir := createTestLogger(t)

	const n = 500
	for i := 0; i < n; i++ {
		logger.Info("record", i)
	}

	// Stop without Flush: everything queued before Stop is written
	require.NoError(t, logger.Stop(5*time.Second))

	lines := readLines(t, filepath.Join(tmpDir, "test.log"))
	assert.Len(t, lines, n)
	assert.Equal(t, uint64(n), logger.Stats().Processed)
	assert.Equal(t, 0, logger.Stats().Queued)
}

func TestFlushOnStoppedLogger(t *testing.T) {
	logger, _ := createTestLogger(t)

	require.NoError(t, logger.Stop())

	// Flush should return an error
	err := logger.Flush(time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logger not started")
}

func TestShutdownLifecycle(t *testing.T) {
	logger, _ := createTestLogger(t)

	assert.True(t, logger.state.Started.Load())
	assert.True(t, logger.state.IsInitialized.Load())

	// Shutdown is a terminal state
	require.NoError(t, logger.Shutdown())

	assert.True(t, logger.state.ShutdownCalled.Load())
	assert.False(t, logger.state.IsInitialized.Load(), "Shutdown should de-initialize the logger")
	assert.False(t, logger.state.Started.Load(), "Shutdown should stop the logger")

	// Attempting to start again should fail because it's no longer initialized
	assert.ErrorIs(t, logger.Start(), ErrNotInitialized)

	// Logging should be a silent no-op
	logger.Info("this will not be logged")

	// Flush should fail
	err := logger.Flush(time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	// A second Shutdown is a no-op
	assert.NoError(t, logger.Shutdown())
}

func TestShutdownUninitialized(t *testing.T) {
	logger := NewLogger()
	assert.NoError(t, logger.Shutdown())
	assert.False(t, logger.state.ShutdownCalled.Load())
}

func TestReinitializeAfterShutdown(t *testing.T) {
	logger, out := createConsoleLogger(t)
	require.NoError(t, logger.Shutdown())

	require.NoError(t, logger.ApplyConfig(logger.GetConfig()))
	require.NoError(t, logger.Start())

	logger.Info("back again")
	require.NoError(t, logger.Flush(time.Second))

	lines := out.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "back again")
}

// gatedWriter blocks every write until gate is closed
type gatedWriter struct {
	gate chan struct{}
	out  syncBuffer
}

func (w *gatedWriter) Write(p []byte) (int, error) {
	<-w.gate
	return w.out.Write(p)
}

// TestStartWaitsForTimedOutDispatcher verifies a restart never runs two dispatchers at once
func TestStartWaitsForTimedOutDispatcher(t *testing.T) {
	w := &gatedWriter{gate: make(chan struct{})}
	diag, _ := newObservedDiagnostics()

	logger, err := NewBuilder().
		ConsoleColor(false).
		ConsoleWriter(w).
		Diagnostics(diag).
		Build()
	require.NoError(t, err)
	require.NoError(t, logger.Start())
	t.Cleanup(func() { _ = logger.Shutdown() })

	// The first record stalls the dispatcher in the console write
	logger.Info("first")
	logger.Info("second")

	err = logger.Stop(20 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not exit within timeout")

	assert.ErrorIs(t, logger.Start(), ErrDispatcherBusy)
	assert.False(t, logger.state.Started.Load())
	assert.False(t, logger.state.ProcessorExited.Load())

	close(w.gate)
	require.Eventually(t, func() bool { return logger.Start() == nil }, time.Second, minWaitTime)

	logger.Info("third")
	require.NoError(t, logger.Flush(time.Second))

	// The old run's exit can no longer overwrite the new run's state
	assert.Eventually(t, func() bool { return logger.DispatcherState() == DispatcherIdle }, time.Second, minWaitTime)
	assert.True(t, logger.state.Started.Load())
	assert.False(t, logger.state.ProcessorExited.Load())

	lines := w.out.lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{messageOf(lines[0]), messageOf(lines[1]), messageOf(lines[2])})
}
