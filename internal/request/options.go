package request

import (
	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
)

// Order selects the delivery order of a read. Observing is always
// chronological, so observe requests carry no order.
type Order string

const (
	OrderChronological     Order = "chronological"
	OrderAntichronological Order = "antichronological"
)

// BoundType states whether the bound id itself is part of the range.
type BoundType string

const (
	BoundInclusive BoundType = "inclusive"
	BoundExclusive BoundType = "exclusive"
)

// Bound is an id cutoff for a range-limited read or observe. Interpretation
// is purely server-side; the client only transmits it and never re-filters
// the result stream.
type Bound struct {
	ID   string    `json:"id"`
	Type BoundType `json:"type"`
}

func (b Bound) validate() error {
	if b.ID == "" {
		return errspkg.NewRequestError("bound needs an event id")
	}
	if b.Type != BoundInclusive && b.Type != BoundExclusive {
		return errspkg.NewRequestError("bound type must be inclusive or exclusive")
	}
	return nil
}

// ReadIfEventIsMissing states what a read does when the from-latest-event
// anchor does not exist yet.
type ReadIfEventIsMissing string

const (
	ReadEverything ReadIfEventIsMissing = "read-everything"
	ReadNothing    ReadIfEventIsMissing = "read-nothing"
)

// ObserveIfEventIsMissing states what an observe does when the
// from-latest-event anchor does not exist yet.
type ObserveIfEventIsMissing string

const (
	ObserveEverything ObserveIfEventIsMissing = "observe-everything"
	WaitForEvent      ObserveIfEventIsMissing = "wait-for-event"
)

// ReadFromLatestEvent starts a read at the latest event of the given subject
// and type instead of at an explicit lower bound.
type ReadFromLatestEvent struct {
	Subject          string               `json:"subject"`
	Type             string               `json:"type"`
	IfEventIsMissing ReadIfEventIsMissing `json:"ifEventIsMissing"`
}

// ObserveFromLatestEvent starts an observe at the latest event of the given
// subject and type instead of at an explicit lower bound.
type ObserveFromLatestEvent struct {
	Subject          string                  `json:"subject"`
	Type             string                  `json:"type"`
	IfEventIsMissing ObserveIfEventIsMissing `json:"ifEventIsMissing"`
}

// ReadEventsOptions configures a read. The zero value reads non-recursively
// in chronological order with no bounds; Recursive must always be chosen
// deliberately by the caller.
type ReadEventsOptions struct {
	Recursive       bool                 `json:"recursive"`
	Order           Order                `json:"order,omitempty"`
	LowerBound      *Bound               `json:"lowerBound,omitempty"`
	UpperBound      *Bound               `json:"upperBound,omitempty"`
	FromLatestEvent *ReadFromLatestEvent `json:"fromLatestEvent,omitempty"`
}

// Validate checks the option combination before any I/O happens.
func (o ReadEventsOptions) Validate() error {
	if o.Order != "" && o.Order != OrderChronological && o.Order != OrderAntichronological {
		return errspkg.NewRequestError("order must be chronological or antichronological")
	}
	if o.LowerBound != nil {
		if err := o.LowerBound.validate(); err != nil {
			return err
		}
	}
	if o.UpperBound != nil {
		if err := o.UpperBound.validate(); err != nil {
			return err
		}
	}
	if o.FromLatestEvent != nil {
		if o.LowerBound != nil {
			return errspkg.NewRequestError("fromLatestEvent and lowerBound are mutually exclusive")
		}
		if err := event.ValidateSubject(o.FromLatestEvent.Subject); err != nil {
			return err
		}
		if err := event.ValidateType(o.FromLatestEvent.Type); err != nil {
			return err
		}
		switch o.FromLatestEvent.IfEventIsMissing {
		case ReadEverything, ReadNothing:
		default:
			return errspkg.NewRequestError("ifEventIsMissing must be read-everything or read-nothing")
		}
	}
	return nil
}

// ObserveEventsOptions configures an observe. Observes are forward-only, so
// there is no order and no upper bound.
type ObserveEventsOptions struct {
	Recursive       bool                    `json:"recursive"`
	LowerBound      *Bound                  `json:"lowerBound,omitempty"`
	FromLatestEvent *ObserveFromLatestEvent `json:"fromLatestEvent,omitempty"`
}

// Validate checks the option combination before any I/O happens.
func (o ObserveEventsOptions) Validate() error {
	if o.LowerBound != nil {
		if err := o.LowerBound.validate(); err != nil {
			return err
		}
	}
	if o.FromLatestEvent != nil {
		if o.LowerBound != nil {
			return errspkg.NewRequestError("fromLatestEvent and lowerBound are mutually exclusive")
		}
		if err := event.ValidateSubject(o.FromLatestEvent.Subject); err != nil {
			return err
		}
		if err := event.ValidateType(o.FromLatestEvent.Type); err != nil {
			return err
		}
		switch o.FromLatestEvent.IfEventIsMissing {
		case ObserveEverything, WaitForEvent:
		default:
			return errspkg.NewRequestError("ifEventIsMissing must be observe-everything or wait-for-event")
		}
	}
	return nil
}
