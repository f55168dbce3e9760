// Package eventsourcingdb is a client SDK for the EventSourcingDB API. It
// translates typed, validated requests (write, read, observe, query, schema
// registration, listing) into HTTP calls and decodes the server's streaming
// NDJSON responses back into typed records, enforcing the store's
// consistency contracts along the way: write preconditions, read bounds and
// ordering, resumption from the latest event, and the cancellation contract
// of long-lived observe streams.
//
// A Client is configured with a base URL and an API token and exposes one
// method per protocol verb. Single-shot verbs (WriteEvents, Ping,
// VerifyAPIToken, RegisterEventSchema, ReadEventType) return decoded values
// directly. Streaming verbs (ReadEvents, ObserveEvents, RunEventQLQuery,
// ReadSubjects, ReadEventTypes) return pull-based streams used like a
// bufio.Scanner:
//
//	events, err := client.ReadEvents(ctx, "/books/42", eventsourcingdb.ReadEventsOptions{Recursive: true})
//	if err != nil {
//		return err
//	}
//	defer events.Close()
//	for events.Next() {
//		fmt.Println(events.Item().Subject)
//	}
//	if err := events.Err(); err != nil {
//		return err
//	}
//
// A stream owns its connection exclusively. Closing it, or canceling the
// context the call was made with, releases the connection and aborts any
// server-side subscription within one round trip; that is how an observe is
// stopped. Heartbeat lines the server sends on idle observe connections are
// consumed internally and never become items.
//
// Validation failures (contradictory options, malformed subjects, empty
// write batches) never touch the network and satisfy
// errors.Is(err, ErrInvalidRequest). Streaming failures are terminal for
// their stream: once a line fails to classify or decode, the rest of the
// connection is abandoned.
//
// Writes are atomic. All preconditions of a WriteEvents call are evaluated
// together with the write, and any unmet precondition aborts the whole batch
// with no partial effect.
//
// The bridge subpackage relays observed events into a Watermill publisher
// for fan-out to message brokers.
package eventsourcingdb
