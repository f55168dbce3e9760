package event

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestWithTraceContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	if err != nil {
		t.Fatalf("trace id parse failed: %v", err)
	}
	spanID, err := trace.SpanIDFromHex("b7ad6b7169203331")
	if err != nil {
		t.Fatalf("span id parse failed: %v", err)
	}
	spanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext)

	candidate := NewCandidate("https://example.com", "/books/42", "com.example.book-acquired", nil).
		WithTraceContext(ctx)

	want := "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"
	if candidate.TraceParent != want {
		t.Fatalf("expected traceparent %s, got %s", want, candidate.TraceParent)
	}
	if err := candidate.Validate(); err != nil {
		t.Fatalf("traced candidate must validate, got %v", err)
	}
}

func TestWithTraceContextWithoutSpan(t *testing.T) {
	candidate := NewCandidate("https://example.com", "/books/42", "com.example.book-acquired", nil).
		WithTraceContext(context.Background())

	if candidate.TraceParent != "" || candidate.TraceState != "" {
		t.Fatalf("expected no trace context, got %+v", candidate)
	}
}
