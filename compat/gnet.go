// FILE: lixenwraith/pebble/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/pebble"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// defaultFatalFlush bounds how long Fatalf waits for queued records
const defaultFatalFlush = 100 * time.Millisecond

// GnetAdapter routes gnet's engine logs into a pebble.Logger
type GnetAdapter struct {
	logger     *pebble.Logger
	source     string
	fatalFlush time.Duration
	onFatal    func(msg string)
}

// GnetOption configures a GnetAdapter
type GnetOption func(*GnetAdapter)

// WithFatalHandler replaces the default os.Exit(1) run after Fatalf
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.onFatal = handler
	}
}

// WithGnetSource replaces the "[gnet]" tag placed before every message
func WithGnetSource(source string) GnetOption {
	return func(a *GnetAdapter) {
		a.source = source
	}
}

// WithFatalFlush sets how long Fatalf waits for the logger to flush
func WithFatalFlush(d time.Duration) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalFlush = d
	}
}

// NewGnetAdapter creates a gnet logger writing to logger
func NewGnetAdapter(logger *pebble.Logger, opts ...GnetOption) *GnetAdapter {
	a := &GnetAdapter{
		logger:     logger,
		source:     sourceGnet,
		fatalFlush: defaultFatalFlush,
		onFatal:    func(string) { os.Exit(1) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// logf renders once and tags the message with the adapter source
func (a *GnetAdapter) logf(level int64, format string, args []any) string {
	msg := fmt.Sprintf(format, args...)
	if a.source == "" {
		a.logger.Log(level, msg)
	} else {
		a.logger.Log(level, a.source, msg)
	}
	return msg
}

func (a *GnetAdapter) Debugf(format string, args ...any) { a.logf(pebble.LevelDebug, format, args) }

func (a *GnetAdapter) Infof(format string, args ...any) { a.logf(pebble.LevelInfo, format, args) }

func (a *GnetAdapter) Warnf(format string, args ...any) { a.logf(pebble.LevelWarn, format, args) }

func (a *GnetAdapter) Errorf(format string, args ...any) { a.logf(pebble.LevelError, format, args) }

// Fatalf logs at fatal level, gives the logger a chance to flush, then runs the fatal handler.
// pebble itself never exits on fatal records.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := a.logf(pebble.LevelFatal, format, args)

	_ = a.logger.Flush(a.fatalFlush)

	if a.onFatal != nil {
		a.onFatal(msg)
	}
}
