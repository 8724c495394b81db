// Package otelsink forwards event source writes to OpenTelemetry: one span
// per written event and a counter of written events.
package otelsink

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"eventsource-adapter/sink"
)

const instrumentationName = "eventsource-adapter/sink/otelsink"

// Attribute keys set on spans and counter points.
const (
	AttrSourceName    = attribute.Key("eventsource.name")
	AttrSourceGUID    = attribute.Key("eventsource.guid")
	AttrEventID       = attribute.Key("event.id")
	AttrPayloadPrefix = "event.payload."
)

// Listener is a sink.Listener reporting to OpenTelemetry.
type Listener struct {
	tracer  trace.Tracer
	written metric.Int64Counter
}

type options struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures a Listener.
type Option func(*options)

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// New creates a Listener.
func New(opts ...Option) (*Listener, error) {
	o := options{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	written, err := o.meterProvider.Meter(instrumentationName).Int64Counter(
		"eventsource_events_written_total",
		metric.WithDescription("Total events written by event sources"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating counter: %w", err)
	}

	return &Listener{
		tracer:  o.tracerProvider.Tracer(instrumentationName),
		written: written,
	}, nil
}

// OnEventWritten records e as a span named "<source>/<id>".
func (l *Listener) OnEventWritten(e sink.EventWritten) {
	ctx := context.Background()

	common := []attribute.KeyValue{
		AttrSourceName.String(e.SourceName),
		AttrEventID.Int(e.EventID),
	}

	attrs := make([]attribute.KeyValue, 0, len(common)+1+len(e.Payload))
	attrs = append(attrs, common...)
	attrs = append(attrs, AttrSourceGUID.String(e.SourceGUID.String()))

	for i, v := range e.Payload {
		attrs = append(attrs, payloadAttribute(AttrPayloadPrefix+strconv.Itoa(i), v))
	}

	_, span := l.tracer.Start(ctx, e.SourceName+"/"+strconv.Itoa(e.EventID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
	span.End()

	l.written.Add(ctx, 1, metric.WithAttributes(common...))
}

func payloadAttribute(key string, v any) attribute.KeyValue {
	k := attribute.Key(key)

	switch x := v.(type) {
	case string:
		return k.String(x)
	case bool:
		return k.Bool(x)
	case int:
		return k.Int(x)
	case int64:
		return k.Int64(x)
	case float64:
		return k.Float64(x)
	case float32:
		return k.Float64(float64(x))
	case []byte:
		return k.String(base64.StdEncoding.EncodeToString(x))
	default:
		// fmt handles Stringers, including nil pointer receivers.
		return k.String(fmt.Sprint(x))
	}
}
