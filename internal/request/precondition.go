// Package request encodes validated domain inputs into the wire shapes the
// database expects. Everything here is pure: validation failures surface
// before any I/O, and encoding is deterministic.
package request

import (
	"encoding/json"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

// Precondition is a server-evaluated guard on a write. All preconditions of a
// request are evaluated atomically with the write; any unmet precondition
// aborts the whole write with no partial effect.
type Precondition interface {
	json.Marshaler

	// Validate catches malformed preconditions before the request is sent.
	Validate() error
}

type preconditionEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// IsSubjectPristine requires that the subject has never carried an event.
type IsSubjectPristine struct {
	Subject string
}

func (p IsSubjectPristine) Validate() error {
	return event.ValidateSubject(p.Subject)
}

func (p IsSubjectPristine) MarshalJSON() ([]byte, error) {
	return jsoncodec.Marshal(preconditionEnvelope{
		Type: "isSubjectPristine",
		Payload: struct {
			Subject string `json:"subject"`
		}{p.Subject},
	})
}

// IsSubjectOnEventID requires that the subject's latest event id equals
// EventID.
type IsSubjectOnEventID struct {
	Subject string
	EventID string
}

func (p IsSubjectOnEventID) Validate() error {
	if err := event.ValidateSubject(p.Subject); err != nil {
		return err
	}
	if p.EventID == "" {
		return errspkg.NewRequestError("precondition needs an event id")
	}
	return nil
}

func (p IsSubjectOnEventID) MarshalJSON() ([]byte, error) {
	return jsoncodec.Marshal(preconditionEnvelope{
		Type: "isSubjectOnEventId",
		Payload: struct {
			Subject string `json:"subject"`
			EventID string `json:"eventId"`
		}{p.Subject, p.EventID},
	})
}

// IsEventQLTrue requires that an EventQL query evaluates to true at write
// time.
type IsEventQLTrue struct {
	Query string
}

func (p IsEventQLTrue) Validate() error {
	if p.Query == "" {
		return errspkg.NewRequestError("precondition needs a query")
	}
	return nil
}

func (p IsEventQLTrue) MarshalJSON() ([]byte, error) {
	return jsoncodec.Marshal(preconditionEnvelope{
		Type: "isEventQlTrue",
		Payload: struct {
			Query string `json:"query"`
		}{p.Query},
	})
}
