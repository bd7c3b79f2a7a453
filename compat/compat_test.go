// FILE: lixenwraith/pebble/compat/compat_test.go
package compat

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pebble"
)

// syncBuffer is a goroutine-safe console destination
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := strings.TrimRight(b.buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *pebble.Logger, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	appLogger, err := pebble.NewBuilder().
		LevelString("debug").
		ConsoleColor(false).
		ConsoleWriter(out).
		Build()
	require.NoError(t, err)

	// Start the logger before using it
	require.NoError(t, appLogger.Start())
	t.Cleanup(func() { _ = appLogger.Shutdown() })

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, out
}

// TestCompatBuilder verifies the compatibility builder can be initialized correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, logger, gnetAdapter.logger)

		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.Same(t, logger, fasthttpAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := pebble.DefaultConfig()
		logCfg.Level = pebble.LevelWarn

		builder := NewBuilder().WithConfig(logCfg)
		logger, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger.Shutdown()

		assert.Equal(t, pebble.LevelWarn, logger.GetConfig().Level)

		// The created logger is cached
		again, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger, again)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		logCfg := pebble.DefaultConfig()
		logCfg.Sink = "syslog"
		_, err := NewBuilder().WithConfig(logCfg).BuildFastHTTP()
		assert.Error(t, err)
	})
}

// TestGnetAdapter tests the gnet adapter's level mapping and fatal handling
func TestGnetAdapter(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)

	var fatalCalled bool
	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalCalled = true
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	require.NoError(t, logger.Flush(time.Second))

	assert.True(t, fatalCalled)
	assert.Equal(t, "gnet fatal id=5", fatalMsg)

	lines := out.lines()
	require.Len(t, lines, 5)

	expected := []struct {
		level string
		msg   string
	}{
		{"[DEBUG]", "gnet debug id=1"},
		{"[INFO]", "gnet info id=2"},
		{"[WARN]", "gnet warn id=3"},
		{"[ERROR]", "gnet error id=4"},
		{"[FATAL]", "gnet fatal id=5"},
	}
	for i, exp := range expected {
		assert.Contains(t, lines[i], exp.level)
		assert.Contains(t, lines[i], sourceGnet+" "+exp.msg)
	}
}

// TestFastHTTPAdapter tests the fasthttp adapter's level detection
func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	require.NoError(t, logger.Flush(time.Second))

	lines := out.lines()
	require.Len(t, lines, 4)

	expectedLevels := []string{"[INFO]", "[DEBUG]", "[WARN]", "[ERROR]"}
	for i, line := range lines {
		assert.Contains(t, line, expectedLevels[i])
		assert.Contains(t, line, sourceFastHTTP+" "+testMessages[i])
	}
}

// TestFastHTTPAdapterOptions tests default level and custom detector options
func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(pebble.LevelWarn),
		WithLevelDetector(func(msg string) int64 {
			if strings.HasPrefix(msg, "!") {
				return pebble.LevelError
			}
			return levelUnknown
		}),
	)
	require.NoError(t, err)

	adapter.Printf("plain message")
	adapter.Printf("!urgent message")

	require.NoError(t, logger.Flush(time.Second))

	lines := out.lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARN]")
	assert.Contains(t, lines[1], "[ERROR]")
}

// TestDetectLogLevel covers the keyword table
func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg  string
		want int64
	}{
		{"request failed", pebble.LevelError},
		{"PANIC recovered", pebble.LevelError},
		{"deprecated header", pebble.LevelWarn},
		{"debug dump", pebble.LevelDebug},
		{"served 200", levelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLogLevel(tt.msg))
		})
	}
}

// TestAdapterSources covers custom and empty source tags
func TestAdapterSources(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)

	gnetAdapter, err := builder.BuildGnet(WithGnetSource("[engine]"))
	require.NoError(t, err)
	fasthttpAdapter, err := builder.BuildFastHTTP(WithFastHTTPSource(""))
	require.NoError(t, err)

	gnetAdapter.Infof("listening on %s", ":9000")
	fasthttpAdapter.Printf("served %d", 200)

	require.NoError(t, logger.Flush(time.Second))

	lines := out.lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "[INFO] [engine] listening on :9000"))
	assert.True(t, strings.HasSuffix(lines[1], "[INFO] served 200"))
}

// TestCompatBuilderMiddleware verifies middleware reaches a builder-created logger
func TestCompatBuilderMiddleware(t *testing.T) {
	cfg := pebble.DefaultConfig()
	cfg.ConsoleColor = false

	builder := NewBuilder().
		WithConfig(cfg).
		WithMiddleware(pebble.CustomTag{Tag: "edge"})

	logger, err := builder.GetLogger()
	require.NoError(t, err)
	defer logger.Shutdown()

	assert.Equal(t, "[edge] ", logger.Format().Snapshot().ConsolePrefix)

	_, err = NewBuilder().WithMiddleware(pebble.CustomTag{}).BuildGnet()
	assert.Error(t, err)
}

// TestGnetFatalFlush verifies the fatal record is written before the handler runs
func TestGnetFatalFlush(t *testing.T) {
	builder, _, out := createTestCompatBuilder(t)

	var linesAtFatal []string
	adapter, err := builder.BuildGnet(
		WithFatalFlush(time.Second),
		WithFatalHandler(func(string) { linesAtFatal = out.lines() }),
	)
	require.NoError(t, err)

	adapter.Fatalf("engine stopped: %v", "listener closed")

	require.Len(t, linesAtFatal, 1)
	assert.Contains(t, linesAtFatal[0], "[FATAL] [gnet] engine stopped: listener closed")
}
