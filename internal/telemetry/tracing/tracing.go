package tracing

import (
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("fittrack")

// HoneycombSetup configures the OpenTelemetry SDK to export to honeycomb.
// HONEYCOMB_API_KEY and friends are read from the environment by otelconfig.
// Returns a shutdown func that is safe to call when tracing is disabled.
func HoneycombSetup(enabled bool, serviceName string) (func(), error) {
	if !enabled {
		log.Debugln("tracing disabled, using no-op tracer")
		return func() {}, nil
	}

	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(bsp),
	)
	if err != nil {
		return nil, err
	}

	// tracer has to be re-fetched after the global provider is set
	GlobalTracer = otel.Tracer(serviceName)
	log.Infof("honeycomb tracing set up for service [%s]", serviceName)

	return otelShutdown, nil
}

// EndSpanWithErrCheck records err (if any) on the span and ends it
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
