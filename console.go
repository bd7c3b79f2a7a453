// FILE: lixenwraith/pebble/console.go
package pebble

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ConsoleSink writes colored records to a terminal stream
type ConsoleSink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	diag  *Diagnostics

	written       atomic.Uint64
	writeFailures atomic.Uint64
}

// NewConsoleSink creates a console sink writing to w; nil selects os.Stdout
func NewConsoleSink(w io.Writer, color bool, d *Diagnostics) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{w: w, color: color, diag: d}
}

// consoleWriter resolves a console target name
func consoleWriter(target string) io.Writer {
	if target == TargetStderr {
		return os.Stderr
	}
	return os.Stdout
}

// levelColor returns the ANSI sequence for a level
func levelColor(level int64) string {
	switch level {
	case LevelDebug:
		return colorDebug
	case LevelInfo:
		return colorInfo
	case LevelWarn:
		return colorWarn
	case LevelError:
		return colorError
	case LevelFatal:
		return colorFatal
	case LevelTrace:
		return colorTrace
	default:
		return colorReset
	}
}

// SetWriter replaces the destination
func (c *ConsoleSink) SetWriter(w io.Writer) {
	c.mu.Lock()
	c.w = w
	c.mu.Unlock()
}

// SetColor toggles ANSI coloring
func (c *ConsoleSink) SetColor(color bool) {
	c.mu.Lock()
	c.color = color
	c.mu.Unlock()
}

// Write emits one line in a single Write call. Failures are reported, not retried.
func (c *ConsoleSink) Write(level int64, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var line []byte
	if c.color {
		color := levelColor(level)
		line = make([]byte, 0, len(color)+len(text)+len(colorReset)+1)
		line = append(line, color...)
		line = append(line, text...)
		line = append(line, colorReset...)
	} else {
		line = make([]byte, 0, len(text)+1)
		line = append(line, text...)
	}
	line = append(line, '\n')

	if _, err := c.w.Write(line); err != nil {
		c.writeFailures.Add(1)
		c.diag.Report("failed to write console record", err, zap.String("level", levelName(level)))
		return fmtErrorf("failed to write console record: %w", err)
	}
	c.written.Add(1)
	return nil
}
