// FILE: lixenwraith/pebble/utility.go
package pebble

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"go.uber.org/multierr"
)

// levelNames maps level constants to their display names
var levelNames = map[int64]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelTrace: "TRACE",
}

// levelName returns the display name of a level
func levelName(level int64) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "UNKNOWN"
}

// Level converts level string to numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "trace":
		return LevelTrace, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use debug, info, warn, error, fatal, trace)", levelStr)
	}
}

// callSite describes the location of a function call
type callSite struct {
	File     string
	Line     int
	Function string
}

// getCallSite resolves the caller skip frames above getCallSite itself
func getCallSite(skip int) callSite {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return callSite{File: "(unknown)", Function: "(unknown)"}
	}
	site := callSite{File: filepath.Base(file), Line: line, Function: "(unknown)"}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = shortFuncName(fn.Name())
	}
	return site
}

// shortFuncName trims the package path and names closures after their parent
func shortFuncName(full string) string {
	funcName := filepath.Base(full)
	parts := strings.Split(funcName, ".")
	lastPart := parts[len(parts)-1]
	if strings.HasPrefix(lastPart, "func") && len(lastPart) > 4 {
		for _, r := range lastPart[4:] {
			if !unicode.IsDigit(r) {
				return lastPart
			}
		}
		return fmt.Sprintf("(anonymous in %s)", strings.Join(parts[:len(parts)-1], "."))
	}
	return lastPart
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "pebble: ") {
		format = "pebble: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	return multierr.Append(err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
