package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"travel-discovery/internal/common/errors"
	"travel-discovery/internal/common/logger"
)

// Observability owns the OpenTelemetry meter and tracer providers. It
// satisfies loader.Instrument: every fetch gets a span and is counted.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	fetchCounter   otelmetric.Int64Counter
	fetchDuration  otelmetric.Float64Histogram
}

type settings struct {
	registerer promclient.Registerer
	reader     metric.Reader
	processors []sdktrace.SpanProcessor
	log        logger.Logger
	global     bool
}

type Option func(*settings)

// WithRegisterer registers the Prometheus exporter somewhere other than the
// default registry.
func WithRegisterer(r promclient.Registerer) Option {
	return func(s *settings) { s.registerer = r }
}

// WithReader replaces the Prometheus exporter with another metric reader.
func WithReader(r metric.Reader) Option {
	return func(s *settings) { s.reader = r }
}

// WithSpanProcessor adds a processor that receives every finished span.
func WithSpanProcessor(p sdktrace.SpanProcessor) Option {
	return func(s *settings) { s.processors = append(s.processors, p) }
}

func WithLogger(l logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGlobal installs the providers as the otel globals.
func WithGlobal() Option {
	return func(s *settings) { s.global = true }
}

func New(serviceName string, opts ...Option) *Observability {
	s := &settings{log: logger.NewNoOpLogger()}
	for _, opt := range opts {
		opt(s)
	}

	reader := s.reader
	if reader == nil {
		var exporterOpts []prometheus.Option
		if s.registerer != nil {
			exporterOpts = append(exporterOpts, prometheus.WithRegisterer(s.registerer))
		}
		exporter, err := prometheus.New(exporterOpts...)
		if err != nil {
			s.log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		} else {
			reader = exporter
		}
	}

	var meterOpts []metric.Option
	if reader != nil {
		meterOpts = append(meterOpts, metric.WithReader(reader))
	}
	mp := metric.NewMeterProvider(meterOpts...)

	var traceOpts []sdktrace.TracerProviderOption
	for _, p := range s.processors {
		traceOpts = append(traceOpts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(traceOpts...)

	if s.global {
		otel.SetMeterProvider(mp)
		otel.SetTracerProvider(tp)
	}

	meter := mp.Meter(serviceName)

	fetchCounter, _ := meter.Int64Counter(
		"discovery.loader.fetches",
		otelmetric.WithDescription("Number of loader fetches by outcome"),
	)

	fetchDuration, _ := meter.Float64Histogram(
		"discovery.loader.fetch.duration",
		otelmetric.WithDescription("Fetch and decode duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  mp,
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
		fetchCounter:   fetchCounter,
		fetchDuration:  fetchDuration,
	}
}

// Start opens a span for one fetch. The returned func ends it.
func (o *Observability) Start(ctx context.Context, resource, target string) (context.Context, func(string, error)) {
	started := time.Now()
	ctx, span := o.tracer.Start(ctx, "loader.fetch "+resource,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("loader.resource", resource),
			attribute.String("url.full", target),
		),
	)

	return ctx, func(outcome string, err error) {
		defer span.End()

		attrs := []attribute.KeyValue{
			attribute.String("resource", resource),
			attribute.String("outcome", outcome),
		}
		span.SetAttributes(attribute.String("loader.outcome", outcome))
		if err != nil {
			le := errors.Normalize(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, string(le.Code))
			span.SetAttributes(attribute.String("error.code", string(le.Code)))
			if le.StatusCode != 0 {
				span.SetAttributes(attribute.Int("http.response.status_code", le.StatusCode))
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}

		o.RecordFetch(ctx, time.Since(started), attrs...)
	}
}

func (o *Observability) RecordFetch(ctx context.Context, duration time.Duration, attrs ...attribute.KeyValue) {
	if o.fetchCounter != nil {
		o.fetchCounter.Add(ctx, 1, otelmetric.WithAttributes(attrs...))
	}
	if o.fetchDuration != nil {
		o.fetchDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(attrs...))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
