// FILE: lixenwraith/pebble/middleware.go
package pebble

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Middleware is one step of a Chain. Process mutates the logger's formatting
// state, taking the FormatState lock only for its own change.
type Middleware interface {
	Process(l *Logger) error
}

// Chain runs middleware steps in insertion order
type Chain struct {
	mu     sync.Mutex
	logger *Logger
	steps  []Middleware
}

// newChain creates an empty chain bound to l
func newChain(l *Logger) *Chain {
	return &Chain{logger: l}
}

// Add appends steps to the chain and returns it for chaining.
func (c *Chain) Add(steps ...Middleware) *Chain {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, step := range steps {
		if step != nil {
			c.steps = append(c.steps, step)
		}
	}
	return c
}

// Apply runs every step once on the calling goroutine. The first failure stops
// the chain; effects of earlier steps remain. Applying again re-runs every step,
// so effects such as name suffixes accumulate.
func (c *Chain) Apply() error {
	c.mu.Lock()
	steps := make([]Middleware, len(c.steps))
	copy(steps, c.steps)
	c.mu.Unlock()

	for i, step := range steps {
		if err := step.Process(c.logger); err != nil {
			return fmtErrorf("middleware %d (%s) failed: %w", i, stepName(step), err)
		}
	}
	return nil
}

// Clear removes every step
func (c *Chain) Clear() {
	c.mu.Lock()
	c.steps = nil
	c.mu.Unlock()
}

// Len returns the number of steps
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.steps)
}

// stepName names a step for error messages
func stepName(step Middleware) string {
	name := fmt.Sprintf("%T", step)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// TimestampTag appends "[<now>]" to the log name and makes Layout the record time format.
type TimestampTag struct {
	Layout   string
	explicit bool
}

// NewTimestampTag creates a TimestampTag with an explicit layout; an empty layout fails on Apply.
func NewTimestampTag(layout string) TimestampTag {
	return TimestampTag{Layout: layout, explicit: true}
}

// Process implements Middleware
func (m TimestampTag) Process(l *Logger) error {
	layout := m.Layout
	if layout == "" {
		if m.explicit {
			return fmtErrorf("timestamp layout cannot be empty")
		}
		layout = defaultTimeLayout
	}

	stamp := time.Now().Format(layout)
	return l.format.Update(func(f *Format) error {
		f.Name += "[" + stamp + "]"
		f.TimeFormat = layout
		return nil
	})
}

// DailyFileSuffix inserts "_YYYY-MM-DD" before the name's extension.
type DailyFileSuffix struct{}

// Process implements Middleware
func (m DailyFileSuffix) Process(l *Logger) error {
	day := time.Now().Format(dailyLayout)
	return l.format.Update(func(f *Format) error {
		f.Name = insertSuffix(f.Name, "_"+day)
		return nil
	})
}

// insertSuffix places suffix before the last '.' of name, or at the end when there is none.
// A name that is only an extension gets the suffix in front: ".log" becomes "_x.log".
func insertSuffix(name, suffix string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i] + suffix + name[i:]
	}
	return name + suffix
}

// FileNamePrefix prepends Prefix to the log name.
type FileNamePrefix struct {
	Prefix string
}

// Process implements Middleware
func (m FileNamePrefix) Process(l *Logger) error {
	if m.Prefix == "" {
		return fmtErrorf("file name prefix cannot be empty")
	}
	return l.format.Update(func(f *Format) error {
		f.Name = m.Prefix + f.Name
		return nil
	})
}

// ConsolePrefix replaces the record prefix.
type ConsolePrefix struct {
	Prefix string
}

// Process implements Middleware
func (m ConsolePrefix) Process(l *Logger) error {
	return l.format.Update(func(f *Format) error {
		f.ConsolePrefix = m.Prefix
		return nil
	})
}

// ThreadIDTag prepends "[ThreadID:<id>] " with the OS thread running Apply.
type ThreadIDTag struct{}

// Process implements Middleware
func (m ThreadIDTag) Process(l *Logger) error {
	tag := "[ThreadID:" + strconv.Itoa(threadID()) + "] "
	return l.format.Update(func(f *Format) error {
		f.ConsolePrefix = tag + f.ConsolePrefix
		return nil
	})
}

// CustomTag prepends "[Tag] " to the record prefix.
type CustomTag struct {
	Tag string
}

// Process implements Middleware
func (m CustomTag) Process(l *Logger) error {
	if m.Tag == "" {
		return fmtErrorf("custom tag cannot be empty")
	}
	return l.format.Update(func(f *Format) error {
		f.ConsolePrefix = "[" + m.Tag + "] " + f.ConsolePrefix
		return nil
	})
}

// TraceEvent logs one INFO record describing a call site.
type TraceEvent struct {
	File     string
	Line     int
	Function string
	Args     string
}

// TraceHere creates a TraceEvent for the caller's location
func TraceHere(args string) TraceEvent {
	site := getCallSite(1)
	return TraceEvent{File: site.File, Line: site.Line, Function: site.Function, Args: args}
}

// Process implements Middleware
func (m TraceEvent) Process(l *Logger) error {
	l.Infof("[Trace] File: %s, Line: %d, Function: %s, Args: %s", m.File, m.Line, m.Function, m.Args)
	return nil
}
