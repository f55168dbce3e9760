// Package errors defines the error taxonomy of the SDK. Validation failures
// are detected before any I/O and wrap ErrInvalidRequest; everything that goes
// wrong on an open connection wraps exactly one of the remaining sentinels, so
// callers can classify with errors.Is without string matching.
package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks request-construction failures: contradictory
	// options, malformed subjects, empty candidate lists. No network call has
	// been made when this is returned.
	ErrInvalidRequest = sterrors.New("eventsourcingdb: invalid request")

	// ErrTransport marks connection-level failures (refused, timeout, TLS).
	// The underlying error is wrapped and surfaced verbatim, never retried.
	ErrTransport = sterrors.New("eventsourcingdb: transport failure")

	// ErrProtocol marks malformed server output: truncated NDJSON lines,
	// unknown discriminant tags, payloads failing decode, or a missing
	// EventSourcingDB server header. Terminal for the current stream.
	ErrProtocol = sterrors.New("eventsourcingdb: protocol violation")

	// ErrServer marks an error the server reported explicitly, either as a
	// non-2xx status with an error body or as an error line inside a stream.
	ErrServer = sterrors.New("eventsourcingdb: server reported error")

	// ErrStreamDisposed is reported when a stream is pulled after it already
	// delivered its terminal result or was closed.
	ErrStreamDisposed = sterrors.New("eventsourcingdb: stream already disposed")
)

// NewRequestError wraps ErrInvalidRequest with a reason.
func NewRequestError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

// NewTransportError wraps a transport-level cause.
func NewTransportError(cause error) error {
	return fmt.Errorf("%w: %v", ErrTransport, cause)
}

// NewProtocolError wraps ErrProtocol with a reason.
func NewProtocolError(reason string) error {
	return fmt.Errorf("%w: %s", ErrProtocol, reason)
}

// ServerError carries a message reported by the database, together with the
// HTTP status code when the error arrived as a non-2xx response. Errors
// reported inside an NDJSON stream have StatusCode 0.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("eventsourcingdb: server reported error (status %d): %s", e.StatusCode, e.Message)
	}
	return "eventsourcingdb: server reported error: " + e.Message
}

// Is makes errors.Is(err, ErrServer) succeed for ServerError values.
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}
