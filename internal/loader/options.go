package loader

import (
	"context"

	"travel-discovery/internal/common/dispatch"
	httpc "travel-discovery/internal/common/http"
	"travel-discovery/internal/common/logger"
)

// Instrument is told about each fetch attempt. Start returns the context the
// fetch should run under and a func called once with the outcome
// ("loaded" or "failed") and the classified error, if any.
type Instrument interface {
	Start(ctx context.Context, resource, target string) (context.Context, func(outcome string, err error))
}

type nopInstrument struct{}

func (nopInstrument) Start(ctx context.Context, _, _ string) (context.Context, func(string, error)) {
	return ctx, func(string, error) {}
}

// Instruments fans one attempt out to several instruments.
type Instruments []Instrument

func (is Instruments) Start(ctx context.Context, resource, target string) (context.Context, func(string, error)) {
	finishers := make([]func(string, error), 0, len(is))
	for _, in := range is {
		var fin func(string, error)
		ctx, fin = in.Start(ctx, resource, target)
		finishers = append(finishers, fin)
	}
	return ctx, func(outcome string, err error) {
		for i := len(finishers) - 1; i >= 0; i-- {
			finishers[i](outcome, err)
		}
	}
}

type options struct {
	fetcher    httpc.Fetcher
	dispatcher dispatch.Dispatcher
	log        logger.Logger
	instrument Instrument
	name       string
}

// Option configures a Loader.
type Option func(*options)

// WithFetcher sets the transport. Defaults to the shared http client.
func WithFetcher(f httpc.Fetcher) Option {
	return func(o *options) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithDispatcher sets the UI-affine context. Defaults to dispatch.Inline.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(o *options) {
		if d != nil {
			o.dispatcher = d
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func WithInstrument(in Instrument) Option {
	return func(o *options) {
		if in != nil {
			o.instrument = in
		}
	}
}

// WithName labels the loader's resource in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		fetcher:    httpc.Default,
		dispatcher: dispatch.Inline{},
		log:        logger.NewNoOpLogger(),
		instrument: nopInstrument{},
		name:       "resource",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
