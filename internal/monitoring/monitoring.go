package monitoring

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

var (
	initProvider     sync.Once
	shutdownProvider sync.Once

	traceProvider *sdktrace.TracerProvider
	shutdownErr   error
)

// InitTraceProvider using the given exporter and resource, this will be configured
// as the default provider for all otel calls
func InitTraceProvider(exp sdktrace.SpanExporter, res *resource.Resource) bool {
	var firstInit bool
	initProvider.Do(func() {
		traceProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
		firstInit = true
		otel.SetTracerProvider(traceProvider)
	})
	return firstInit
}

func ShutdownProvider(ctx context.Context) error {
	shutdownProvider.Do(func() {
		if traceProvider == nil {
			return
		}
		shutdownErr = traceProvider.Shutdown(ctx)
	})
	return shutdownErr
}

// Tracer is just a syntatic sugar for otel.Tracer(...),
// that way users don't need to worry about otel on most use-cases
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Measure method implemented by fn using the given tracer
func Measure(ctx context.Context, t trace.Tracer, method string, fn func(context.Context)) {
	ctx, span := t.Start(ctx, method)
	defer recordResult(span)()
	fn(ctx)
}

// MeasureErr works like Measure but records the error returned by fn,
// which is how the demos make acquire/use/release failures visible in
// the exported spans.
func MeasureErr(ctx context.Context, t trace.Tracer, method string, fn func(context.Context) error) error {
	ctx, span := t.Start(ctx, method)
	defer recordResult(span)()
	err := fn(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func recordResult(span trace.Span) func() {
	return func() {
		err := recover()
		if err != nil {
			span.SetStatus(codes.Error, fmt.Sprintf("%v", err))
			span.SetAttributes(attribute.Bool("github.com.andrebq.panic", true))
			span.End()
			panic(err)
		}
		span.End()
	}
}
