package eventsourcingdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	eventsourcingdb "github.com/thenativeweb/eventsourcingdb-client-golang"
)

// TestFacadeRoundTrip drives the public surface end to end: construct a
// client, write guarded events, read them back as a stream.
func TestFacadeRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "EventSourcingDB/1.0.0")
		switch r.URL.Path {
		case "/api/v1/ping":
			io.WriteString(w, `{"type":"io.eventsourcingdb.api.ping-received"}`)
		case "/api/v1/write-events":
			io.WriteString(w, `[{"specversion":"1.0","id":"0","time":"2024-05-17T09:30:00.000000000Z","source":"https://example.com","subject":"/books/42","type":"com.example.book-acquired","data":{"title":"t"}}]`)
		case "/api/v1/read-events":
			io.WriteString(w, `{"type":"event","payload":{"specversion":"1.0","id":"0","time":"2024-05-17T09:30:00.000000000Z","source":"https://example.com","subject":"/books/42","type":"com.example.book-acquired","data":{"title":"t"}}}`+"\n")
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := eventsourcingdb.NewClient(eventsourcingdb.Config{
		BaseURL:  server.URL,
		APIToken: "secret",
	})
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	written, err := client.WriteEvents(ctx,
		[]eventsourcingdb.EventCandidate{
			eventsourcingdb.NewEventCandidate("https://example.com", "/books/42", "com.example.book-acquired", map[string]string{"title": "t"}),
		},
		[]eventsourcingdb.Precondition{
			eventsourcingdb.IsSubjectPristine{Subject: "/books/42"},
		},
	)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if len(written) != 1 || written[0].ID != "0" {
		t.Fatalf("unexpected write result %+v", written)
	}

	events, err := client.ReadEvents(ctx, "/books/42", eventsourcingdb.ReadEventsOptions{
		Order: eventsourcingdb.OrderChronological,
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	defer events.Close()

	var count int
	for events.Next() {
		count++
		var data struct {
			Title string `json:"title"`
		}
		if err := events.Item().UnmarshalData(&data); err != nil {
			t.Fatalf("event data must decode: %v", err)
		}
		if data.Title != "t" {
			t.Fatalf("unexpected data %+v", data)
		}
	}
	if err := events.Err(); err != nil {
		t.Fatalf("expected clean end, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 event, got %d", count)
	}
}

func TestFacadeRejectsInvalidConfig(t *testing.T) {
	_, err := eventsourcingdb.NewClient(eventsourcingdb.Config{BaseURL: "http://localhost:3000"})
	if !errors.Is(err, eventsourcingdb.ErrInvalidRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
}
