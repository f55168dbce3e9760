package client

import (
	"context"
	"encoding/json"
	"net/http"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/request"
)

// Management responses are CloudEvents-shaped; only the type tag matters for
// confirming the operation.
type managementEvent struct {
	Type string `json:"type"`
}

const (
	pingReceivedType     = "io.eventsourcingdb.api.ping-received"
	apiTokenVerifiedType = "io.eventsourcingdb.api.api-token-verified"
	schemaRegisteredType = "io.eventsourcingdb.api.event-schema-registered"
)

// Ping checks that the instance is reachable. It deliberately sends no
// credentials: liveness must be checkable even with an invalid or missing
// token.
func (c *Client) Ping(ctx context.Context) error {
	var confirmation managementEvent
	err := c.requestJSON(ctx, endpoint{verb: "ping", method: http.MethodGet}, nil, &confirmation)
	if err != nil {
		return err
	}
	if confirmation.Type != pingReceivedType {
		return errspkg.NewProtocolError("unexpected ping confirmation " + confirmation.Type)
	}
	return nil
}

// VerifyAPIToken checks that the configured token is accepted.
func (c *Client) VerifyAPIToken(ctx context.Context) error {
	var confirmation managementEvent
	err := c.requestJSON(ctx, endpoint{verb: "verify-api-token", method: http.MethodPost, authorize: true}, nil, &confirmation)
	if err != nil {
		return err
	}
	if confirmation.Type != apiTokenVerifiedType {
		return errspkg.NewProtocolError("unexpected token confirmation " + confirmation.Type)
	}
	return nil
}

// RegisterEventSchema registers a JSON schema for eventType. Future writes of
// that type are validated against it server-side.
func (c *Client) RegisterEventSchema(ctx context.Context, eventType string, schema json.RawMessage) error {
	body, err := request.RegisterEventSchema(eventType, schema)
	if err != nil {
		return err
	}
	var confirmation managementEvent
	err = c.requestJSON(ctx, endpoint{verb: "register-event-schema", method: http.MethodPost, authorize: true}, body, &confirmation)
	if err != nil {
		return err
	}
	if confirmation.Type != schemaRegisteredType {
		return errspkg.NewProtocolError("unexpected schema confirmation " + confirmation.Type)
	}
	return nil
}

// ReadEventType looks up a single event type descriptor.
func (c *Client) ReadEventType(ctx context.Context, eventType string) (event.TypeDescriptor, error) {
	body, err := request.ReadEventType(eventType)
	if err != nil {
		return event.TypeDescriptor{}, err
	}
	var descriptor event.TypeDescriptor
	err = c.requestJSON(ctx, endpoint{verb: "read-event-type", method: http.MethodPost, authorize: true}, body, &descriptor)
	if err != nil {
		return event.TypeDescriptor{}, err
	}
	return descriptor, nil
}
