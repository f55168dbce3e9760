package client

import (
	"context"
	"net/http"

	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/request"
)

// WriteEvents writes candidates atomically. The server evaluates all
// preconditions together with the write; any unmet precondition aborts the
// whole batch, so a returned error means nothing was written. On success the
// stored events come back in candidate order, with strictly increasing ids.
func (c *Client) WriteEvents(ctx context.Context, candidates []event.Candidate, preconditions []request.Precondition) ([]event.Event, error) {
	body, err := request.WriteEvents(candidates, preconditions)
	if err != nil {
		return nil, err
	}

	var written []event.Event
	err = c.requestJSON(ctx, endpoint{verb: "write-events", method: http.MethodPost, authorize: true}, body, &written)
	if err != nil {
		return nil, err
	}
	return written, nil
}
