package request

import (
	"encoding/json"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

// WriteEvents assembles the write-events body. The candidate list must be
// non-empty and every candidate and precondition must validate.
func WriteEvents(candidates []event.Candidate, preconditions []Precondition) ([]byte, error) {
	if len(candidates) == 0 {
		return nil, errspkg.NewRequestError("write needs at least one event candidate")
	}
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
	}
	for _, precondition := range preconditions {
		if err := precondition.Validate(); err != nil {
			return nil, err
		}
	}
	if preconditions == nil {
		preconditions = []Precondition{}
	}

	return jsoncodec.Marshal(struct {
		Events        []event.Candidate `json:"events"`
		Preconditions []Precondition    `json:"preconditions"`
	}{candidates, preconditions})
}

type readEventsBody struct {
	Subject string `json:"subject"`
	ReadEventsOptions
}

// ReadEvents assembles the read-events body.
func ReadEvents(subject string, options ReadEventsOptions) ([]byte, error) {
	if err := event.ValidateSubject(subject); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return jsoncodec.Marshal(readEventsBody{subject, options})
}

type observeEventsBody struct {
	Subject string `json:"subject"`
	ObserveEventsOptions
}

// ObserveEvents assembles the observe-events body.
func ObserveEvents(subject string, options ObserveEventsOptions) ([]byte, error) {
	if err := event.ValidateSubject(subject); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return jsoncodec.Marshal(observeEventsBody{subject, options})
}

// RunEventQLQuery assembles the run-eventql-query body.
func RunEventQLQuery(query string) ([]byte, error) {
	if query == "" {
		return nil, errspkg.NewRequestError("query must not be empty")
	}
	return jsoncodec.Marshal(struct {
		Query string `json:"query"`
	}{query})
}

// ReadSubjects assembles the read-subjects body.
func ReadSubjects(baseSubject string) ([]byte, error) {
	if err := event.ValidateSubject(baseSubject); err != nil {
		return nil, err
	}
	return jsoncodec.Marshal(struct {
		BaseSubject string `json:"baseSubject"`
	}{baseSubject})
}

// ReadEventType assembles the read-event-type body.
func ReadEventType(eventType string) ([]byte, error) {
	if err := event.ValidateType(eventType); err != nil {
		return nil, err
	}
	return jsoncodec.Marshal(struct {
		EventType string `json:"eventType"`
	}{eventType})
}

// RegisterEventSchema assembles the register-event-schema body. The schema
// must be well-formed JSON; schema semantics are validated server-side.
func RegisterEventSchema(eventType string, schema json.RawMessage) ([]byte, error) {
	if err := event.ValidateType(eventType); err != nil {
		return nil, err
	}
	if len(schema) == 0 || !jsoncodec.Valid(schema) {
		return nil, errspkg.NewRequestError("schema must be well-formed JSON")
	}
	return jsoncodec.Marshal(struct {
		EventType string          `json:"eventType"`
		Schema    json.RawMessage `json:"schema"`
	}{eventType, schema})
}
