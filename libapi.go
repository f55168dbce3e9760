package eventsourcingdb

import (
	clientpkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/client"
	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	eventpkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	requestpkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/request"
)

type (
	Client = clientpkg.Client
	Config = clientpkg.Config

	Event          = eventpkg.Event
	EventCandidate = eventpkg.Candidate
	EventType      = eventpkg.TypeDescriptor

	Precondition       = requestpkg.Precondition
	IsSubjectPristine  = requestpkg.IsSubjectPristine
	IsSubjectOnEventID = requestpkg.IsSubjectOnEventID
	IsEventQLTrue      = requestpkg.IsEventQLTrue

	Order                   = requestpkg.Order
	Bound                   = requestpkg.Bound
	BoundType               = requestpkg.BoundType
	ReadEventsOptions       = requestpkg.ReadEventsOptions
	ObserveEventsOptions    = requestpkg.ObserveEventsOptions
	ReadFromLatestEvent     = requestpkg.ReadFromLatestEvent
	ObserveFromLatestEvent  = requestpkg.ObserveFromLatestEvent
	ReadIfEventIsMissing    = requestpkg.ReadIfEventIsMissing
	ObserveIfEventIsMissing = requestpkg.ObserveIfEventIsMissing

	EventStream     = clientpkg.EventStream
	RowStream       = clientpkg.RowStream
	SubjectStream   = clientpkg.SubjectStream
	EventTypeStream = clientpkg.EventTypeStream
)

const (
	OrderChronological     = requestpkg.OrderChronological
	OrderAntichronological = requestpkg.OrderAntichronological

	BoundInclusive = requestpkg.BoundInclusive
	BoundExclusive = requestpkg.BoundExclusive

	ReadEverything    = requestpkg.ReadEverything
	ReadNothing       = requestpkg.ReadNothing
	ObserveEverything = requestpkg.ObserveEverything
	WaitForEvent      = requestpkg.WaitForEvent
)

var (
	NewClient         = clientpkg.New
	NewEventCandidate = eventpkg.NewCandidate

	ErrInvalidRequest = errspkg.ErrInvalidRequest
	ErrTransport      = errspkg.ErrTransport
	ErrProtocol       = errspkg.ErrProtocol
	ErrServer         = errspkg.ErrServer
	ErrStreamDisposed = errspkg.ErrStreamDisposed
)

// ServerError carries the message and, for non-2xx responses, the HTTP
// status of an error the database reported. Match it with errors.As, or
// match the ErrServer sentinel with errors.Is.
type ServerError = errspkg.ServerError
