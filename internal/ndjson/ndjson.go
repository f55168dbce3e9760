// Package ndjson frames and classifies the newline-delimited JSON streams
// the database answers streaming requests with. The Reader turns an
// arbitrarily chunked byte stream into complete lines; the Envelope maps each
// line onto the closed set of discriminant tags the protocol defines. Neither
// layer interprets payload semantics.
package ndjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
	"github.com/thenativeweb/eventsourcingdb-client-golang/internal/jsoncodec"
)

// Discriminant tags of the stream envelope.
const (
	TagEvent     = "event"
	TagHeartbeat = "heartbeat"
	TagError     = "error"
	TagRow       = "row"
	TagSubject   = "subject"
	TagEventType = "eventType"
)

// Reader yields complete NDJSON lines from a byte stream, buffering across
// chunk boundaries until a terminator appears. Empty lines are keep-alive
// padding and skipped. A stream that ends mid-line yields the final partial
// content only if it is valid JSON on its own; otherwise the stream was
// truncated and that is a protocol error.
type Reader struct {
	r    *bufio.Reader
	done bool
}

// NewReader wraps r. The reader does not close r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next non-empty line without its terminator. It returns
// io.EOF once the underlying stream has cleanly ended.
func (r *Reader) Next() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}

	for {
		line, err := r.r.ReadBytes('\n')
		line = bytes.TrimRight(line, "\r\n")

		switch {
		case err == nil:
			if len(line) == 0 {
				continue
			}
			return line, nil

		case err == io.EOF:
			r.done = true
			if len(line) == 0 {
				return nil, io.EOF
			}
			if !jsoncodec.Valid(line) {
				return nil, errspkg.NewProtocolError("stream truncated mid-line")
			}
			return line, nil

		default:
			r.done = true
			return nil, err
		}
	}
}

// Envelope is one decoded stream line, still carrying its payload raw. The
// tag decides how the payload must be interpreted.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeEnvelope parses a stream line. A line without a discriminant tag is a
// protocol violation.
func DecodeEnvelope(line []byte) (Envelope, error) {
	var envelope Envelope
	if err := jsoncodec.Unmarshal(line, &envelope); err != nil {
		return Envelope{}, errspkg.NewProtocolError("malformed stream line: " + err.Error())
	}
	if envelope.Type == "" {
		return Envelope{}, errspkg.NewProtocolError("stream line carries no type tag")
	}
	return envelope, nil
}

// ServerError decodes the payload of an error-tagged envelope into the error
// the server reported.
func (e Envelope) ServerError() error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := jsoncodec.Unmarshal(e.Payload, &payload); err != nil || payload.Error == "" {
		return errspkg.NewProtocolError("error line carries no message")
	}
	return &errspkg.ServerError{Message: payload.Error}
}
