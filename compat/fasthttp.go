// FILE: lixenwraith/pebble/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/pebble"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// levelUnknown is returned by DetectLogLevel when no hint is found
const levelUnknown int64 = -1 << 31

// levelHints maps message keywords to levels, checked in order
var levelHints = []struct {
	level    int64
	keywords []string
}{
	{pebble.LevelError, []string{"error", "failed", "fatal", "panic"}},
	{pebble.LevelWarn, []string{"warn", "deprecated"}},
	{pebble.LevelDebug, []string{"debug"}},
}

// FastHTTPAdapter routes fasthttp server messages into a pebble.Logger.
// fasthttp only offers Printf, so the level is inferred from the message.
type FastHTTPAdapter struct {
	logger       *pebble.Logger
	source       string
	defaultLevel int64
	detect       func(string) int64
}

// FastHTTPOption configures a FastHTTPAdapter
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the log level used when detection finds nothing
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector replaces DetectLogLevel
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.detect = detector
	}
}

// WithFastHTTPSource replaces the "[fasthttp]" tag placed before every message
func WithFastHTTPSource(source string) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.source = source
	}
}

// NewFastHTTPAdapter creates a fasthttp logger writing to logger
func NewFastHTTPAdapter(logger *pebble.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	a := &FastHTTPAdapter{
		logger:       logger,
		source:       sourceFastHTTP,
		defaultLevel: pebble.LevelInfo,
		detect:       DetectLogLevel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Printf implements fasthttp.Logger
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.detect != nil {
		if detected := a.detect(msg); detected != levelUnknown {
			level = detected
		}
	}

	if a.source == "" {
		a.logger.Log(level, msg)
		return
	}
	a.logger.Log(level, a.source, msg)
}

// DetectLogLevel infers a log level from message keywords, case-insensitively
func DetectLogLevel(msg string) int64 {
	lower := strings.ToLower(msg)
	for _, hint := range levelHints {
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				return hint.level
			}
		}
	}
	return levelUnknown
}
