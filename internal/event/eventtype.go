package event

import "encoding/json"

// TypeDescriptor describes an event type known to the store. Phantom types
// have a registered schema but no events yet.
type TypeDescriptor struct {
	EventType string          `json:"eventType"`
	IsPhantom bool            `json:"isPhantom"`
	Schema    json.RawMessage `json:"schema,omitempty"`
}
