// FILE: lixenwraith/pebble/override.go
package pebble

import (
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// overrideSetter writes one string value into a Config field
type overrideSetter func(cfg *Config, value string) error

// overrideSetters maps every configuration key to its setter
var overrideSetters = map[string]overrideSetter{
	"level":     setLevelOverride,
	"sink":      stringOverride(func(c *Config) *string { return &c.Sink }, strings.ToLower),
	"directory": stringOverride(func(c *Config) *string { return &c.Directory }, nil),
	"name":      stringOverride(func(c *Config) *string { return &c.Name }, nil),

	"max_file_bytes":       intOverride("max_file_bytes", func(c *Config) *int64 { return &c.MaxFileBytes }),
	"max_file_generations": intOverride("max_file_generations", func(c *Config) *int64 { return &c.MaxFileGenerations }),

	"timestamp_format": stringOverride(func(c *Config) *string { return &c.TimestampFormat }, nil),
	"console_prefix":   stringOverride(func(c *Config) *string { return &c.ConsolePrefix }, nil),
	"enable_trace":     boolOverride("enable_trace", func(c *Config) *bool { return &c.EnableTrace }),

	"console_target": stringOverride(func(c *Config) *string { return &c.ConsoleTarget }, strings.ToLower),
	"console_color":  boolOverride("console_color", func(c *Config) *bool { return &c.ConsoleColor }),

	"buffer_size":     intOverride("buffer_size", func(c *Config) *int64 { return &c.BufferSize }),
	"workers":         setWorkersOverride,
	"stop_timeout_ms": intOverride("stop_timeout_ms", func(c *Config) *int64 { return &c.StopTimeoutMs }),

	"internal_errors_to_stderr": boolOverride("internal_errors_to_stderr", func(c *Config) *bool { return &c.InternalErrorsToStderr }),
}

// ApplyOverride applies "key=value" overrides on top of the current configuration.
// Every override is checked before anything is applied; on any error the
// configuration is left unchanged and all errors are returned together.
//
// Example:
//
//	err := logger.ApplyOverride(
//	    "directory=/var/log/app",
//	    "level=debug",
//	    "sink=both",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errs error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err == nil {
			err = applyConfigField(cfg, key, value)
		}
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return fmtErrorf("invalid overrides: %w", errs)
	}
	return l.ApplyConfig(cfg)
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	set, ok := overrideSetters[key]
	if !ok {
		return fmtErrorf("unknown configuration key '%s'", key)
	}
	return set(cfg, value)
}

// setLevelOverride accepts numeric and named levels
func setLevelOverride(cfg *Config, value string) error {
	if numVal, err := strconv.ParseInt(value, 10, 64); err == nil {
		cfg.Level = numVal
		return nil
	}
	levelVal, err := Level(value)
	if err != nil {
		return fmtErrorf("invalid level value '%s': %w", value, err)
	}
	cfg.Level = levelVal
	return nil
}

// setWorkersOverride accepts "auto" or an integer
func setWorkersOverride(cfg *Config, value string) error {
	if strings.EqualFold(value, "auto") {
		cfg.Workers = WorkersAuto
		return nil
	}
	return intOverride("workers", func(c *Config) *int64 { return &c.Workers })(cfg, value)
}

func stringOverride(field func(*Config) *string, normalize func(string) string) overrideSetter {
	return func(cfg *Config, value string) error {
		if normalize != nil {
			value = normalize(value)
		}
		*field(cfg) = value
		return nil
	}
}

func intOverride(key string, field func(*Config) *int64) overrideSetter {
	return func(cfg *Config, value string) error {
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
		}
		*field(cfg) = intVal
		return nil
	}
}

func boolOverride(key string, field func(*Config) *bool) overrideSetter {
	return func(cfg *Config, value string) error {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
		}
		*field(cfg) = boolVal
		return nil
	}
}
