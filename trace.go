// FILE: lixenwraith/pebble/trace.go
package pebble

import (
	"strconv"
	"strings"
)

// TraceCall logs the caller's location and fn's arguments on the trace channel,
// runs fn, then logs its return value. args are only described, never passed to fn.
func TraceCall[R any](l *Logger, fn func() R, args ...any) R {
	if l.format.Snapshot().TraceEnabled {
		site := getCallSite(1)
		l.Log(LevelTrace, describeCall(site, args))
	}

	result := fn()

	if l.format.Snapshot().TraceEnabled {
		l.Log(LevelTrace, "Return: "+describeValue(result))
	}
	return result
}

// describeCall renders "File: f, Line: n, Function: fn | Args: v (type), ..."
func describeCall(site callSite, args []any) string {
	var sb strings.Builder
	sb.WriteString("File: ")
	sb.WriteString(site.File)
	sb.WriteString(", Line: ")
	sb.WriteString(strconv.Itoa(site.Line))
	sb.WriteString(", Function: ")
	sb.WriteString(site.Function)
	sb.WriteString(" | Args: ")
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(describeValue(arg))
	}
	return sb.String()
}

// describeValue renders "v (type)"
func describeValue(v any) string {
	return string(appendValue(nil, v)) + " (" + typeName(v) + ")"
}
