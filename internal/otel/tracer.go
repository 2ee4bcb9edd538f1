package otel

import (
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sainath-666/storefront/internal/constants"
)

var Tracer = otel.Tracer(
	constants.APP_STOREFRONT,
	trace.WithInstrumentationAttributes(
		semconv.ServiceNameKey.String(constants.APP_STOREFRONT),
	),
)
