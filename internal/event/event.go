// Package event models events as they travel to and from EventSourcingDB.
// Events are CloudEvents v1.0 documents with store-assigned integrity fields
// (id, hash, predecessorhash, optional signature). An EventCandidate is the
// caller-supplied subset that exists before the store has accepted the write.
package event

import (
	"encoding/json"
	"time"

	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

// SpecVersion is the CloudEvents specification version the store emits.
const SpecVersion = "1.0"

// Event is an event read back from the database. All fields are set by the
// server and immutable once decoded; Data stays raw so integrity checks can
// hash the exact bytes the server hashed.
type Event struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Time            time.Time       `json:"time"`
	Source          string          `json:"source"`
	Subject         string          `json:"subject"`
	Type            string          `json:"type"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
	Hash            string          `json:"hash"`
	PredecessorHash string          `json:"predecessorhash"`
	TraceParent     string          `json:"traceparent,omitempty"`
	TraceState      string          `json:"tracestate,omitempty"`
	Signature       string          `json:"signature,omitempty"`
}

// UnmarshalData decodes the event payload into v.
func (e Event) UnmarshalData(v any) error {
	return jsoncodec.Unmarshal(e.Data, v)
}

// Candidate turns a stored event back into a candidate, for replaying it onto
// another subject or instance.
func (e Event) Candidate() Candidate {
	return Candidate{
		Source:      e.Source,
		Subject:     e.Subject,
		Type:        e.Type,
		Data:        e.Data,
		TraceParent: e.TraceParent,
		TraceState:  e.TraceState,
	}
}
