// FILE: lixenwraith/pebble/trace_test.go
package pebble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCall(t *testing.T) {
	logger, out := createConsoleLogger(t)

	result := TraceCall(logger, func() int { return 42 }, "x", 3)
	assert.Equal(t, 42, result)

	require.NoError(t, logger.Flush(time.Second))
	lines := out.lines()
	require.Len(t, lines, 2)

	assert.Regexp(t, `\[TRACE\] File: trace_test\.go, Line: \d+, Function: TestTraceCall \| Args: x \(string\), 3 \(int\)$`, lines[0])
	assert.Regexp(t, `\[TRACE\] Return: 42 \(int\)$`, lines[1])
}

func TestTraceCallDisabled(t *testing.T) {
	logger, out := createConsoleLogger(t, func(b *Builder) {
		b.EnableTrace(false)
	})

	called := false
	result := TraceCall(logger, func() string {
		called = true
		return "ok"
	})

	// fn still runs, nothing is logged
	assert.True(t, called)
	assert.Equal(t, "ok", result)
	require.NoError(t, logger.Flush(time.Second))
	assert.Empty(t, out.String())
}

func TestDescribeCall(t *testing.T) {
	site := callSite{File: "f.go", Line: 12, Function: "run"}

	assert.Equal(t, "File: f.go, Line: 12, Function: run | Args: ", describeCall(site, nil))
	assert.Equal(t, "File: f.go, Line: 12, Function: run | Args: a (string), nil (nil)",
		describeCall(site, []any{"a", nil}))
}

func TestDescribeValue(t *testing.T) {
	assert.Equal(t, "1.5 (float64)", describeValue(1.5))
	assert.Equal(t, "true (bool)", describeValue(true))
}
