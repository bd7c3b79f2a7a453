// FILE: lixenwraith/pebble/diag.go
package pebble

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// Diagnostics reports the engine's own failures (I/O, pool misuse).
// It never routes back into the logging pipeline, and is throttled so a
// persistent failure cannot flood the output. A nil *Diagnostics is a no-op.
type Diagnostics struct {
	logger     atomic.Pointer[zap.Logger]
	limiter    *rate.Limiter
	enabled    atomic.Bool
	reported   atomic.Uint64
	suppressed atomic.Uint64
}

// NewDiagnostics creates a diagnostics channel writing to z.
// A nil z selects a console encoder on stderr.
func NewDiagnostics(z *zap.Logger) *Diagnostics {
	if z == nil {
		z = newStderrLogger()
	}
	d := &Diagnostics{
		limiter: rate.NewLimiter(rate.Limit(diagRatePerSec), diagBurst),
	}
	d.logger.Store(z)
	d.enabled.Store(true)
	return d
}

// newStderrLogger builds the default fallback logger
func newStderrLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("pebble")
}

// SetLogger replaces the destination logger
func (d *Diagnostics) SetLogger(z *zap.Logger) {
	if d == nil || z == nil {
		return
	}
	d.logger.Store(z)
}

// SetEnabled turns reporting on or off
func (d *Diagnostics) SetEnabled(enabled bool) {
	if d == nil {
		return
	}
	d.enabled.Store(enabled)
}

// Report emits msg with err and fields, subject to the rate limit.
func (d *Diagnostics) Report(msg string, err error, fields ...zap.Field) {
	if d == nil || !d.enabled.Load() {
		return
	}
	if !d.limiter.Allow() {
		d.suppressed.Add(1)
		return
	}
	d.reported.Add(1)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	d.logger.Load().Error(msg, fields...)
}

// Reported returns how many reports were emitted
func (d *Diagnostics) Reported() uint64 {
	if d == nil {
		return 0
	}
	return d.reported.Load()
}

// Suppressed returns how many reports were dropped by the rate limit
func (d *Diagnostics) Suppressed() uint64 {
	if d == nil {
		return 0
	}
	return d.suppressed.Load()
}

// Sync flushes the destination logger
func (d *Diagnostics) Sync() error {
	if d == nil {
		return nil
	}
	return d.logger.Load().Sync()
}
