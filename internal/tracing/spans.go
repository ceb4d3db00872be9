package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for outgoing API calls.
const (
	AttrHTTPMethod     = "http.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.status_code"
	AttrHTTPRequestID  = "http.request_id"
	AttrServerAddress  = "server.address"
)

// SpanPrefixAPI prefixes the name of every API client span.
const SpanPrefixAPI = "api."

// StartRequest opens a client span for an API call. A nil tracer yields a
// non-recording span.
func StartRequest(ctx context.Context, tracer trace.Tracer, method, route, requestID string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	ctx, span := tracer.Start(ctx, SpanPrefixAPI+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPRoute, route),
		attribute.String(AttrHTTPRequestID, requestID),
	)
	return ctx, span
}

// EndRequest records the response status and any error, then ends span.
func EndRequest(span trace.Span, status int, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int(AttrHTTPStatusCode, status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
