// FILE: lixenwraith/pebble/format.go
package pebble

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// dumper renders composite values compactly on a single record
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true, // Cleaner for logs
	DisableCapacities:       true, // Less noise
	SortKeys:                true, // Consistent map output
}

// renderLine builds "[time] prefix [LEVEL] message" from a format snapshot
func renderLine(f *Format, now time.Time, level int64, msg string) string {
	buf := make([]byte, 0, len(f.ConsolePrefix)+len(msg)+48)

	buf = append(buf, '[')
	buf = now.AppendFormat(buf, f.TimeFormat)
	buf = append(buf, ']', ' ')

	if prefix := strings.TrimRight(f.ConsolePrefix, " "); prefix != "" {
		buf = append(buf, prefix...)
		buf = append(buf, ' ')
	}

	buf = append(buf, '[')
	buf = append(buf, levelName(level)...)
	buf = append(buf, ']', ' ')
	buf = append(buf, msg...)

	return string(buf)
}

// formatArgs joins args with single spaces
func formatArgs(args []any) string {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}

	var buf []byte
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf)
}

// appendValue converts any value to its text representation.
// Types without a direct rendering fall back to go-spew.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		return hex.AppendEncode(buf, val) // prevent special character corruption
	default:
		var b bytes.Buffer
		dumper.Fdump(&b, val)
		// Collapse spew's multi-line dump so one record stays one line
		return append(buf, strings.Join(strings.Fields(b.String()), " ")...)
	}
}

// typeName names the dynamic type of v for trace records
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
