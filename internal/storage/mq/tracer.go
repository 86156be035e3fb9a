package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/mq")

// traceHooks instruments a client with kotel. It reads the global provider
// and propagator, so it must run after the tracer is initialized.
func traceHooks() kgo.Opt {
	k := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)))
	return kgo.WithHooks(k.Hooks()...)
}
