// FILE: lixenwraith/pebble/console_test.go
package pebble

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestConsoleSinkPlain(t *testing.T) {
	out := &syncBuffer{}
	sink := NewConsoleSink(out, false, nil)

	require.NoError(t, sink.Write(LevelInfo, "hello"))
	require.NoError(t, sink.Write(LevelWarn, "world"))

	assert.Equal(t, "hello\nworld\n", out.String())
	assert.Equal(t, uint64(2), sink.written.Load())
}

func TestConsoleSinkColor(t *testing.T) {
	tests := []struct {
		level int64
		color string
	}{
		{LevelDebug, colorDebug},
		{LevelInfo, colorInfo},
		{LevelWarn, colorWarn},
		{LevelError, colorError},
		{LevelFatal, colorFatal},
		{LevelTrace, colorTrace},
		{42, colorReset},
	}

	for _, tt := range tests {
		out := &syncBuffer{}
		sink := NewConsoleSink(out, true, nil)
		require.NoError(t, sink.Write(tt.level, "msg"))
		assert.Equal(t, tt.color+"msg"+colorReset+"\n", out.String(), "level %d", tt.level)
	}
}

func TestConsoleSinkSetters(t *testing.T) {
	first := &syncBuffer{}
	second := &syncBuffer{}
	sink := NewConsoleSink(first, true, nil)

	sink.SetColor(false)
	sink.SetWriter(second)
	require.NoError(t, sink.Write(LevelInfo, "moved"))

	assert.Empty(t, first.String())
	assert.Equal(t, "moved\n", second.String())
}

func TestConsoleSinkWriteFailure(t *testing.T) {
	z, logs := newObservedDiagnostics()
	sink := NewConsoleSink(failingWriter{}, false, NewDiagnostics(z))

	err := sink.Write(LevelError, "lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, uint64(1), sink.writeFailures.Load())
	assert.Zero(t, sink.written.Load())

	entries := logs.FilterMessage("failed to write console record").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0].ContextMap()["level"])
}

func TestConsoleWriterTarget(t *testing.T) {
	assert.Same(t, os.Stdout, consoleWriter(TargetStdout))
	assert.Same(t, os.Stderr, consoleWriter(TargetStderr))
	assert.Same(t, os.Stdout, consoleWriter("unknown"))
}
