package client

import (
	"context"
	"encoding/json"
	"net/http"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/ndjson"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/request"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/stream"
)

// EventStream delivers events from a read or observe call. Read streams end
// normally after the last matching event; observe streams stay open until an
// error, a disconnect, or Close.
type EventStream = stream.Stream[event.Event]

// RowStream delivers the rows of an EventQL query, each row an undecoded
// JSON value.
type RowStream = stream.Stream[json.RawMessage]

// SubjectStream delivers subject paths.
type SubjectStream = stream.Stream[string]

// EventTypeStream delivers event type descriptors.
type EventTypeStream = stream.Stream[event.TypeDescriptor]

func decodeEvent(payload []byte) (event.Event, error) {
	var e event.Event
	if err := jsoncodec.Unmarshal(payload, &e); err != nil {
		return event.Event{}, err
	}
	if e.ID == "" || e.Subject == "" || e.Type == "" {
		return event.Event{}, errspkg.NewProtocolError("event payload misses required fields")
	}
	return e, nil
}

func decodeRow(payload []byte) (json.RawMessage, error) {
	if !jsoncodec.Valid(payload) {
		return nil, errspkg.NewProtocolError("row payload is not valid JSON")
	}
	return json.RawMessage(payload), nil
}

func decodeSubject(payload []byte) (string, error) {
	var p struct {
		Subject string `json:"subject"`
	}
	if err := jsoncodec.Unmarshal(payload, &p); err != nil {
		return "", err
	}
	if p.Subject == "" {
		return "", errspkg.NewProtocolError("subject payload misses the subject")
	}
	return p.Subject, nil
}

func decodeEventType(payload []byte) (event.TypeDescriptor, error) {
	var d event.TypeDescriptor
	if err := jsoncodec.Unmarshal(payload, &d); err != nil {
		return event.TypeDescriptor{}, err
	}
	if d.EventType == "" {
		return event.TypeDescriptor{}, errspkg.NewProtocolError("event type payload misses the name")
	}
	return d, nil
}

// ReadEvents reads the events of subject as a finite stream. With
// options.Recursive the subject's whole hierarchy is read. The returned
// stream owns its connection; close it (or cancel ctx) to release the
// connection early.
func (c *Client) ReadEvents(ctx context.Context, subject string, options request.ReadEventsOptions) (*EventStream, error) {
	body, err := request.ReadEvents(subject, options)
	if err != nil {
		return nil, err
	}
	return openStreamVerb(c, ctx, "read-events", ndjson.TagEvent, body, decodeEvent)
}

// ObserveEvents observes subject as an unbounded stream: the connection
// stays open and new events are pushed as they are written, interleaved with
// server heartbeats. It terminates only on an error, a disconnect, or when
// the caller closes the stream or cancels ctx.
func (c *Client) ObserveEvents(ctx context.Context, subject string, options request.ObserveEventsOptions) (*EventStream, error) {
	body, err := request.ObserveEvents(subject, options)
	if err != nil {
		return nil, err
	}
	return openStreamVerb(c, ctx, "observe-events", ndjson.TagEvent, body, decodeEvent)
}

// RunEventQLQuery runs an EventQL query and streams its result rows.
func (c *Client) RunEventQLQuery(ctx context.Context, query string) (*RowStream, error) {
	body, err := request.RunEventQLQuery(query)
	if err != nil {
		return nil, err
	}
	return openStreamVerb(c, ctx, "run-eventql-query", ndjson.TagRow, body, decodeRow)
}

// ReadSubjects streams all subjects below baseSubject, the root "/"
// included.
func (c *Client) ReadSubjects(ctx context.Context, baseSubject string) (*SubjectStream, error) {
	body, err := request.ReadSubjects(baseSubject)
	if err != nil {
		return nil, err
	}
	return openStreamVerb(c, ctx, "read-subjects", ndjson.TagSubject, body, decodeSubject)
}

// ReadEventTypes streams the descriptors of all known event types.
func (c *Client) ReadEventTypes(ctx context.Context) (*EventTypeStream, error) {
	return openStreamVerb(c, ctx, "read-event-types", ndjson.TagEventType, nil, decodeEventType)
}

func openStreamVerb[T any](c *Client, ctx context.Context, verb, dataTag string, body []byte, decode stream.Decoder[T]) (*stream.Stream[T], error) {
	resp, cancel, err := c.issue(ctx, endpoint{verb: verb, method: http.MethodPost, authorize: true}, body)
	if err != nil {
		return nil, err
	}
	return stream.New(verb, dataTag, resp.Body, cancel, decode, c.log, c.metrics), nil
}
