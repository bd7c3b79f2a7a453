// FILE: lixenwraith/pebble/config.go
package pebble

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level     int64  `toml:"level"`
	Sink      string `toml:"sink"` // "console", "file", or "both"
	Directory string `toml:"directory"`
	Name      string `toml:"name"` // Active log file name, rotated generations append .N

	// Rotation limits
	MaxFileBytes       int64 `toml:"max_file_bytes"`       // Rotate once the active file reaches this size (0=never)
	MaxFileGenerations int64 `toml:"max_file_generations"` // Active file plus rotated generations

	// Formatting
	TimestampFormat string `toml:"timestamp_format"` // Go time layout for record timestamps
	ConsolePrefix   string `toml:"console_prefix"`   // Prefix placed before the level tag
	EnableTrace     bool   `toml:"enable_trace"`     // TRACE channel on/off, independent of level

	// Console output settings
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"
	ConsoleColor  bool   `toml:"console_color"`  // ANSI color per level

	// Pipeline
	BufferSize    int64 `toml:"buffer_size"`     // Queue capacity (0=unbounded)
	Workers       int64 `toml:"workers"`         // Sink worker pool size (0=inline, -1=NumCPU)
	StopTimeoutMs int64 `toml:"stop_timeout_ms"` // Default drain timeout for Stop/Shutdown

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Report I/O failures to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Basic settings
	Level:     LevelDebug,
	Sink:      SinkConsole,
	Directory: "./logs",
	Name:      "app.log",

	// Rotation limits
	MaxFileBytes:       10 * 1024 * 1024,
	MaxFileGenerations: 5,

	// Formatting
	TimestampFormat: defaultTimeLayout,
	ConsolePrefix:   "",
	EnableTrace:     true,

	// Console output settings
	ConsoleTarget: TargetStdout,
	ConsoleColor:  true,

	// Pipeline
	BufferSize:    0,
	Workers:       0,
	StopTimeoutMs: 2000,

	// Internal error handling
	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// Keys live under the [pebble] table; a missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("pebble.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "pebble.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		// Level may be written by name in the file
		if name, ok := val.(string); ok && tomlTag == "level" {
			level, err := Level(name)
			if err != nil {
				return err
			}
			val = level
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	// String validations
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("log name cannot be empty")
	}

	if strings.ContainsRune(c.Name, filepath.Separator) || strings.ContainsRune(c.Name, '/') {
		return fmtErrorf("log name must not contain path separators: %s", c.Name)
	}

	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if c.Sink != SinkConsole && c.Sink != SinkFile && c.Sink != SinkBoth {
		return fmtErrorf("invalid sink: '%s' (use console, file, or both)", c.Sink)
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.ConsoleTarget != TargetStdout && c.ConsoleTarget != TargetStderr {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	// Numeric validations
	if _, ok := levelNames[c.Level]; !ok || c.Level == LevelTrace {
		return fmtErrorf("invalid level: %d (use debug, info, warn, error, or fatal)", c.Level)
	}

	if c.MaxFileBytes < 0 {
		return fmtErrorf("max_file_bytes cannot be negative: %d", c.MaxFileBytes)
	}

	if c.MaxFileGenerations < 1 {
		return fmtErrorf("max_file_generations must be at least 1: %d", c.MaxFileGenerations)
	}

	if c.BufferSize < 0 {
		return fmtErrorf("buffer_size cannot be negative: %d", c.BufferSize)
	}

	if c.Workers < WorkersAuto {
		return fmtErrorf("workers must be -1 (auto), 0 (inline), or positive: %d", c.Workers)
	}

	if c.StopTimeoutMs <= 0 {
		return fmtErrorf("stop_timeout_ms must be positive: %d", c.StopTimeoutMs)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// configRequiresRestart reports whether the pipeline must be rebuilt for the new config
func configRequiresRestart(oldCfg, newCfg *Config) bool {
	return oldCfg.BufferSize != newCfg.BufferSize ||
		oldCfg.Workers != newCfg.Workers
}
