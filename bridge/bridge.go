// Package bridge relays EventSourcingDB event streams into Watermill
// publishers, so observed events can fan out to whatever broker the
// application already runs on.
package bridge

import (
	"github.com/ThreeDotsLabs/watermill/message"

	eventsourcingdb "github.com/thenativeweb/eventsourcingdb-client-golang"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

// Metadata keys set on every relayed message.
const (
	MetadataSubject = "esdb_subject"
	MetadataType    = "esdb_type"
	MetadataSource  = "esdb_source"
)

// Relay pulls events from the stream and publishes each one to topic. The
// message UUID is the store-assigned event id, so downstream consumers can
// deduplicate across reconnects; the payload is the full event as JSON.
//
// Relay drives the stream to its end and returns the stream's terminal
// error, nil for a normal end. Canceling the context the stream was opened
// with, or closing the stream from another goroutine, stops the relay. The
// publisher is not closed.
func Relay(events *eventsourcingdb.EventStream, publisher message.Publisher, topic string) error {
	defer events.Close()

	for events.Next() {
		event := events.Item()

		payload, err := jsoncodec.Marshal(event)
		if err != nil {
			return err
		}

		msg := message.NewMessage(event.ID, payload)
		msg.Metadata.Set(MetadataSubject, event.Subject)
		msg.Metadata.Set(MetadataType, event.Type)
		msg.Metadata.Set(MetadataSource, event.Source)

		if err := publisher.Publish(topic, msg); err != nil {
			return err
		}
	}
	return events.Err()
}
