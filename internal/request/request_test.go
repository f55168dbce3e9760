package request

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/event"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

func TestPreconditionEncoding(t *testing.T) {
	tests := []struct {
		name         string
		precondition Precondition
		want         string
	}{
		{
			name:         "pristine subject",
			precondition: IsSubjectPristine{Subject: "/books/42"},
			want:         `{"type":"isSubjectPristine","payload":{"subject":"/books/42"}}`,
		},
		{
			name:         "subject on event id",
			precondition: IsSubjectOnEventID{Subject: "/books/42", EventID: "7"},
			want:         `{"type":"isSubjectOnEventId","payload":{"subject":"/books/42","eventId":"7"}}`,
		},
		{
			name:         "eventql is true",
			precondition: IsEventQLTrue{Query: "FROM e IN events PROJECT INTO COUNT() < 10"},
			want:         `{"type":"isEventQlTrue","payload":{"query":"FROM e IN events PROJECT INTO COUNT() < 10"}}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.precondition.Validate(); err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
			got, err := jsoncodec.Marshal(test.precondition)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(got) != test.want {
				t.Fatalf("expected %s, got %s", test.want, got)
			}
		})
	}
}

func TestPreconditionValidation(t *testing.T) {
	tests := []struct {
		name         string
		precondition Precondition
	}{
		{"pristine with relative subject", IsSubjectPristine{Subject: "books/42"}},
		{"on event id without id", IsSubjectOnEventID{Subject: "/books/42"}},
		{"eventql without query", IsEventQLTrue{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.precondition.Validate(); !errors.Is(err, errspkg.ErrInvalidRequest) {
				t.Fatalf("expected request error, got %v", err)
			}
		})
	}
}

func TestReadEventsOptionsValidate(t *testing.T) {
	anchor := &ReadFromLatestEvent{
		Subject:          "/books/42",
		Type:             "com.example.book-acquired",
		IfEventIsMissing: ReadEverything,
	}

	tests := []struct {
		name    string
		options ReadEventsOptions
		wantErr bool
	}{
		{"zero value", ReadEventsOptions{}, false},
		{"explicit order", ReadEventsOptions{Order: OrderAntichronological}, false},
		{"unknown order", ReadEventsOptions{Order: "newest-first"}, true},
		{"valid bounds", ReadEventsOptions{
			LowerBound: &Bound{ID: "3", Type: BoundInclusive},
			UpperBound: &Bound{ID: "9", Type: BoundExclusive},
		}, false},
		{"bound without id", ReadEventsOptions{LowerBound: &Bound{Type: BoundInclusive}}, true},
		{"bound with unknown type", ReadEventsOptions{UpperBound: &Bound{ID: "9", Type: "open"}}, true},
		{"from latest event", ReadEventsOptions{FromLatestEvent: anchor}, false},
		{"from latest event with lower bound", ReadEventsOptions{
			LowerBound:      &Bound{ID: "3", Type: BoundInclusive},
			FromLatestEvent: anchor,
		}, true},
		{"from latest event with observe fallback", ReadEventsOptions{
			FromLatestEvent: &ReadFromLatestEvent{
				Subject:          "/books/42",
				Type:             "com.example.book-acquired",
				IfEventIsMissing: "wait-for-event",
			},
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.options.Validate()
			if test.wantErr {
				if !errors.Is(err, errspkg.ErrInvalidRequest) {
					t.Fatalf("expected request error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestObserveEventsOptionsValidate(t *testing.T) {
	anchor := &ObserveFromLatestEvent{
		Subject:          "/books/42",
		Type:             "com.example.book-acquired",
		IfEventIsMissing: WaitForEvent,
	}

	tests := []struct {
		name    string
		options ObserveEventsOptions
		wantErr bool
	}{
		{"zero value", ObserveEventsOptions{}, false},
		{"lower bound", ObserveEventsOptions{LowerBound: &Bound{ID: "3", Type: BoundExclusive}}, false},
		{"from latest event", ObserveEventsOptions{FromLatestEvent: anchor}, false},
		{"from latest event with lower bound", ObserveEventsOptions{
			LowerBound:      &Bound{ID: "3", Type: BoundInclusive},
			FromLatestEvent: anchor,
		}, true},
		{"from latest event with read fallback", ObserveEventsOptions{
			FromLatestEvent: &ObserveFromLatestEvent{
				Subject:          "/books/42",
				Type:             "com.example.book-acquired",
				IfEventIsMissing: "read-nothing",
			},
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.options.Validate()
			if test.wantErr {
				if !errors.Is(err, errspkg.ErrInvalidRequest) {
					t.Fatalf("expected request error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWriteEventsBody(t *testing.T) {
	candidates := []event.Candidate{
		event.NewCandidate("https://example.com", "/books/42", "com.example.book-acquired", map[string]string{"title": "t"}),
	}

	body, err := WriteEvents(candidates, []Precondition{IsSubjectPristine{Subject: "/books/42"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Events        []map[string]any  `json:"events"`
		Preconditions []json.RawMessage `json:"preconditions"`
	}
	if err := jsoncodec.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if len(decoded.Events) != 1 || len(decoded.Preconditions) != 1 {
		t.Fatalf("unexpected body shape: %s", body)
	}
	if decoded.Events[0]["subject"] != "/books/42" {
		t.Fatalf("expected candidate subject in body, got %s", body)
	}
}

func TestWriteEventsRejectsEmptyList(t *testing.T) {
	if _, err := WriteEvents(nil, nil); !errors.Is(err, errspkg.ErrInvalidRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestWriteEventsEncodesNilPreconditionsAsEmptyList(t *testing.T) {
	candidates := []event.Candidate{
		event.NewCandidate("https://example.com", "/books/42", "com.example.book-acquired", nil),
	}
	body, err := WriteEvents(candidates, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(body), `"preconditions":[]`) {
		t.Fatalf("expected empty precondition list, got %s", body)
	}
}

func TestReadEventsBodyIsFlat(t *testing.T) {
	body, err := ReadEvents("/books", ReadEventsOptions{
		Recursive:  true,
		Order:      OrderChronological,
		LowerBound: &Bound{ID: "3", Type: BoundInclusive},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := jsoncodec.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	for _, key := range []string{"subject", "recursive", "order", "lowerBound"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected top-level key %q in %s", key, body)
		}
	}
	if _, ok := decoded["upperBound"]; ok {
		t.Fatalf("unset upper bound must be omitted, got %s", body)
	}
}

func TestObserveEventsBodyOmitsUnsetOptions(t *testing.T) {
	body, err := ObserveEvents("/books", ObserveEventsOptions{Recursive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := jsoncodec.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected only subject and recursive, got %s", body)
	}
}

func TestSimpleBodies(t *testing.T) {
	tests := []struct {
		name  string
		build func() ([]byte, error)
		want  string
	}{
		{
			name:  "eventql query",
			build: func() ([]byte, error) { return RunEventQLQuery("FROM e IN events PROJECT INTO e") },
			want:  `{"query":"FROM e IN events PROJECT INTO e"}`,
		},
		{
			name:  "read subjects",
			build: func() ([]byte, error) { return ReadSubjects("/books") },
			want:  `{"baseSubject":"/books"}`,
		},
		{
			name:  "read event type",
			build: func() ([]byte, error) { return ReadEventType("com.example.book-acquired") },
			want:  `{"eventType":"com.example.book-acquired"}`,
		},
		{
			name: "register event schema",
			build: func() ([]byte, error) {
				return RegisterEventSchema("com.example.book-acquired", json.RawMessage(`{"type":"object"}`))
			},
			want: `{"eventType":"com.example.book-acquired","schema":{"type":"object"}}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != test.want {
				t.Fatalf("expected %s, got %s", test.want, got)
			}
		})
	}
}

func TestBodyValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		build func() ([]byte, error)
	}{
		{"read with relative subject", func() ([]byte, error) { return ReadEvents("books", ReadEventsOptions{}) }},
		{"observe with bad options", func() ([]byte, error) {
			return ObserveEvents("/books", ObserveEventsOptions{LowerBound: &Bound{}})
		}},
		{"empty query", func() ([]byte, error) { return RunEventQLQuery("") }},
		{"subjects with trailing slash", func() ([]byte, error) { return ReadSubjects("/books/") }},
		{"event type without dot", func() ([]byte, error) { return ReadEventType("bookacquired") }},
		{"schema that is not JSON", func() ([]byte, error) {
			return RegisterEventSchema("com.example.book-acquired", json.RawMessage(`{`))
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := test.build(); !errors.Is(err, errspkg.ErrInvalidRequest) {
				t.Fatalf("expected request error, got %v", err)
			}
		})
	}
}
