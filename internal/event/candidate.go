package event

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

// Candidate is an event the caller wants to write. The store assigns id,
// time, hash, and predecessor hash on acceptance.
type Candidate struct {
	// Source identifies the producer. Must be non-empty; by convention a URI.
	Source string `json:"source"`

	// Subject is the hierarchical path the event belongs to.
	Subject string `json:"subject"`

	// Type is the event type in reverse domain notation, e.g.
	// "io.eventsourcingdb.test.logged-in".
	Type string `json:"type"`

	// Data is the event payload. Anything JSON-serializable.
	Data any `json:"data"`

	// TraceParent optionally carries W3C trace context for the write.
	TraceParent string `json:"traceparent,omitempty"`

	// TraceState optionally refines TraceParent. Setting it without a
	// TraceParent is a validation error.
	TraceState string `json:"tracestate,omitempty"`
}

// NewCandidate builds a candidate with the required fields populated.
func NewCandidate(source, subject, eventType string, data any) Candidate {
	return Candidate{
		Source:  source,
		Subject: subject,
		Type:    eventType,
		Data:    data,
	}
}

// WithTraceContext copies the W3C trace context of the span in ctx onto the
// candidate, so the write shows up as part of the caller's trace. A context
// without a valid span leaves the candidate unchanged.
func (c Candidate) WithTraceContext(ctx context.Context) Candidate {
	span := trace.SpanContextFromContext(ctx)
	if !span.IsValid() {
		return c
	}

	flags := "00"
	if span.IsSampled() {
		flags = "01"
	}
	c.TraceParent = fmt.Sprintf("00-%s-%s-%s", span.TraceID(), span.SpanID(), flags)
	c.TraceState = span.TraceState().String()
	return c
}

// Validate checks the candidate against the store's write rules. Violations
// are reported before any network round trip.
func (c Candidate) Validate() error {
	if c.Source == "" {
		return errspkg.NewRequestError("event candidate needs a source")
	}
	if err := ValidateSubject(c.Subject); err != nil {
		return err
	}
	if err := ValidateType(c.Type); err != nil {
		return err
	}
	if c.TraceState != "" && c.TraceParent == "" {
		return errspkg.NewRequestError("tracestate requires a traceparent")
	}
	if _, err := jsoncodec.Marshal(c.Data); err != nil {
		return errspkg.NewRequestError("event data is not JSON-serializable: " + err.Error())
	}
	return nil
}
