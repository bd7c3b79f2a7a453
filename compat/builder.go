// FILE: lixenwraith/pebble/compat/builder.go
package compat

import (
	"errors"

	"github.com/lixenwraith/pebble"
)

// Source tags placed before adapter messages
const (
	sourceGnet     = "[gnet]"
	sourceFastHTTP = "[fasthttp]"
)

var errNilLogger = errors.New("pebble/compat: provided logger cannot be nil")

// Builder creates gnet and fasthttp adapters sharing one logger.
// The logger is either supplied with WithLogger or created on first use from
// WithConfig and WithMiddleware.
type Builder struct {
	logger *pebble.Logger
	cfg    *pebble.Config
	steps  []pebble.Middleware
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger shares an existing, already started logger. WithConfig and
// WithMiddleware are then ignored.
func (b *Builder) WithLogger(l *pebble.Logger) *Builder {
	if l == nil {
		b.err = errNilLogger
		return b
	}
	b.logger = l
	return b
}

// WithConfig sets the configuration of a logger created by the builder
func (b *Builder) WithConfig(cfg *pebble.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithMiddleware queues steps applied to a logger created by the builder
func (b *Builder) WithMiddleware(steps ...pebble.Middleware) *Builder {
	b.steps = append(b.steps, steps...)
	return b
}

// resolve returns the shared logger, building and starting it once
func (b *Builder) resolve() (*pebble.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}

	pb := pebble.NewBuilder().Middleware(b.steps...)
	if b.cfg != nil {
		pb = pb.Config(b.cfg)
	}
	l, err := pb.Build()
	if err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}

	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.resolve()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.resolve()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the shared logger, creating it if needed
func (b *Builder) GetLogger() (*pebble.Logger, error) {
	return b.resolve()
}

// Example:
//
//	appLogger, _ := pebble.NewBuilder().LevelString("info").Build()
//	_ = appLogger.Start()
//	defer appLogger.Shutdown()
//
//	adapters := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := adapters.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := adapters.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
