// Package stream turns an NDJSON response body into a pull-based, cancelable
// sequence of typed items. The caller drives all progress: no goroutines run
// behind the scenes, and the only suspension point is the read on the
// response body. A stream owns its connection exclusively and releases it on
// every exit path.
package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/ids"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/metrics"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/ndjson"
)

type state int

const (
	stateActive state = iota
	stateEnded
	stateFailed
	stateDisposed
)

// Decoder turns the payload of a data-tagged line into an item.
type Decoder[T any] func(payload []byte) (T, error)

// Stream is a single-consumer sequence of items decoded from one NDJSON
// connection. Use it like a bufio.Scanner: call Next until it returns false,
// then consult Err. Heartbeat lines are consumed internally and never become
// items. A consumed stream cannot be rewound.
type Stream[T any] struct {
	verb    string
	dataTag string
	decode  Decoder[T]

	body    io.ReadCloser
	lines   *ndjson.Reader
	cancel  context.CancelFunc
	log     *slog.Logger
	metrics *metrics.Collector

	id       string
	current  T
	err      error
	state    state
	released bool
}

// New wraps an open response body. cancel aborts the underlying request and
// is invoked, together with closing body, as soon as the stream terminates
// for any reason.
func New[T any](verb, dataTag string, body io.ReadCloser, cancel context.CancelFunc, decode Decoder[T], log *slog.Logger, collector *metrics.Collector) *Stream[T] {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Stream[T]{
		verb:    verb,
		dataTag: dataTag,
		decode:  decode,
		body:    body,
		lines:   ndjson.NewReader(body),
		cancel:  cancel,
		log:     log,
		metrics: collector,
		id:      ids.NewStreamID(),
	}
	collector.StreamOpened()
	s.log.Debug("stream opened", "verb", verb, "stream_id", s.id)
	return s
}

// ID returns the client-side correlation id of this stream.
func (s *Stream[T]) ID() string {
	return s.id
}

// Next advances to the next data item. It returns false when the stream has
// terminated; Err then reports nil for a normal end or the terminal error.
// Calling Next again after termination is a misuse and surfaces
// ErrStreamDisposed, unless a terminal error is already pending.
func (s *Stream[T]) Next() bool {
	if s.state != stateActive {
		if s.err == nil {
			s.err = errspkg.ErrStreamDisposed
		}
		return false
	}

	for {
		line, err := s.lines.Next()
		if err != nil {
			if err == io.EOF {
				s.finish(stateEnded, nil)
			} else if errors.Is(err, errspkg.ErrProtocol) {
				s.finish(stateFailed, err)
			} else {
				s.finish(stateFailed, errspkg.NewTransportError(err))
			}
			return false
		}

		envelope, err := ndjson.DecodeEnvelope(line)
		if err != nil {
			s.finish(stateFailed, err)
			return false
		}
		s.metrics.ObserveItem(s.verb, envelope.Type)

		switch envelope.Type {
		case ndjson.TagHeartbeat:
			// Keep-alive only, invisible to the caller.
			continue

		case ndjson.TagError:
			s.finish(stateFailed, envelope.ServerError())
			return false

		case s.dataTag:
			item, err := s.decode(envelope.Payload)
			if err != nil {
				s.finish(stateFailed, errspkg.NewProtocolError("undecodable "+s.dataTag+" payload: "+err.Error()))
				return false
			}
			s.current = item
			return true

		default:
			s.finish(stateFailed, errspkg.NewProtocolError("unexpected line tag "+envelope.Type))
			return false
		}
	}
}

// Item returns the item the last successful Next advanced to.
func (s *Stream[T]) Item() T {
	return s.current
}

// Err returns the terminal error of the stream, or nil while it is active or
// after it ended normally.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close releases the underlying connection. It is safe to call at any time
// and more than once; closing an active stream cancels the server-side
// subscription within one round trip. This is how an observe is aborted.
func (s *Stream[T]) Close() error {
	if s.state == stateActive {
		s.state = stateDisposed
	}
	s.release()
	return nil
}

func (s *Stream[T]) finish(st state, err error) {
	s.state = st
	s.err = err
	s.release()
}

func (s *Stream[T]) release() {
	if s.released {
		return
	}
	s.released = true
	s.cancel()
	_ = s.body.Close()
	s.metrics.StreamClosed()
	s.log.Debug("stream closed", "verb", s.verb, "stream_id", s.id, "err", s.err)
}
