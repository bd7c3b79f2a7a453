// FILE: lixenwraith/pebble/builder.go
package pebble

import (
	"io"

	"go.uber.org/zap"
)

// Builder provides a fluent API for building loggers.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg        *Config
	steps      []Middleware
	console    io.Writer
	diagnostic *zap.Logger
	err        error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration and
// applies the collected middleware. The logger is not started.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	// Create a new logger.
	logger := NewLogger()

	if b.diagnostic != nil {
		logger.SetDiagnostics(b.diagnostic)
	}
	if b.console != nil {
		logger.SetConsoleWriter(b.console)
	}

	// Apply the built configuration. ApplyConfig handles all initialization and validation.
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	if len(b.steps) > 0 {
		if err := logger.Middleware().Add(b.steps...).Apply(); err != nil {
			return nil, err
		}
	}

	return logger, nil
}

// Config replaces the whole configuration.
func (b *Builder) Config(cfg *Config) *Builder {
	if cfg == nil {
		b.err = combineErrors(b.err, fmtErrorf("configuration cannot be nil"))
		return b
	}
	b.cfg = cfg.Clone()
	return b
}

// Level sets the log level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Sink selects console, file, or both.
func (b *Builder) Sink(sink string) *Builder {
	b.cfg.Sink = sink
	return b
}

// Name sets the active log file name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// MaxFileBytes sets the rotation threshold; 0 disables rotation.
func (b *Builder) MaxFileBytes(size int64) *Builder {
	b.cfg.MaxFileBytes = size
	return b
}

// MaxFileGenerations sets how many files are kept, the active one included.
func (b *Builder) MaxFileGenerations(n int64) *Builder {
	b.cfg.MaxFileGenerations = n
	return b
}

// TimestampFormat sets the Go time layout of record timestamps.
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// ConsolePrefix sets the record prefix.
func (b *Builder) ConsolePrefix(prefix string) *Builder {
	b.cfg.ConsolePrefix = prefix
	return b
}

// EnableTrace turns the TRACE channel on or off.
func (b *Builder) EnableTrace(enable bool) *Builder {
	b.cfg.EnableTrace = enable
	return b
}

// ConsoleTarget selects stdout or stderr.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleColor toggles ANSI colors on console output.
func (b *Builder) ConsoleColor(enable bool) *Builder {
	b.cfg.ConsoleColor = enable
	return b
}

// ConsoleWriter sends console output to w instead of the configured target.
func (b *Builder) ConsoleWriter(w io.Writer) *Builder {
	b.console = w
	return b
}

// BufferSize sets the queue capacity; 0 leaves it unbounded.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// Workers sets the sink worker count; 0 writes inline, WorkersAuto uses every CPU.
func (b *Builder) Workers(n int64) *Builder {
	b.cfg.Workers = n
	return b
}

// StopTimeoutMs sets the default drain timeout of Stop and Shutdown.
func (b *Builder) StopTimeoutMs(ms int64) *Builder {
	b.cfg.StopTimeoutMs = ms
	return b
}

// InternalErrorsToStderr toggles failure reports.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Diagnostics sends failure reports to z instead of stderr.
func (b *Builder) Diagnostics(z *zap.Logger) *Builder {
	b.diagnostic = z
	return b
}

// Middleware queues steps to apply once the configuration is in place.
func (b *Builder) Middleware(steps ...Middleware) *Builder {
	b.steps = append(b.steps, steps...)
	return b
}

// Example usage:
// logger, err := pebble.NewBuilder().
//
//	Directory("/var/log/app").
//	LevelString("info").
//	Sink(pebble.SinkBoth).
//	MaxFileBytes(1 << 20).
//	Middleware(pebble.DailyFileSuffix{}, pebble.CustomTag{Tag: "api"}).
//	Build()
//
// if err == nil {
//
//	 _ = logger.Start()
//	 defer logger.Shutdown()
//	 logger.Info("Logger initialized successfully")
//
// }
