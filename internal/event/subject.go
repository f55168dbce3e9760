package event

import (
	"strconv"
	"strings"

	errspkg "github.com/thenativeweb/eventsourcingdb-client-golang/internal/errors"
)

// ValidateSubject checks that subject is an absolute, slash-delimited path.
// The root "/" is valid and is an ancestor of every subject. Other subjects
// must not end in a slash and must not contain empty segments.
func ValidateSubject(subject string) error {
	if subject == "" {
		return errspkg.NewRequestError("subject must not be empty")
	}
	if !strings.HasPrefix(subject, "/") {
		return errspkg.NewRequestError("subject " + strconv.Quote(subject) + " must start with a slash")
	}
	if subject == "/" {
		return nil
	}
	if strings.HasSuffix(subject, "/") {
		return errspkg.NewRequestError("subject " + strconv.Quote(subject) + " must not end with a slash")
	}
	for _, segment := range strings.Split(subject[1:], "/") {
		if segment == "" {
			return errspkg.NewRequestError("subject " + strconv.Quote(subject) + " contains an empty segment")
		}
	}
	return nil
}

// ValidateType checks that eventType is in reverse domain notation: at least
// two non-empty segments separated by dots.
func ValidateType(eventType string) error {
	if eventType == "" {
		return errspkg.NewRequestError("event type must not be empty")
	}
	segments := strings.Split(eventType, ".")
	if len(segments) < 2 {
		return errspkg.NewRequestError("event type " + strconv.Quote(eventType) + " must be a reverse domain name")
	}
	for _, segment := range segments {
		if segment == "" {
			return errspkg.NewRequestError("event type " + strconv.Quote(eventType) + " contains an empty segment")
		}
	}
	return nil
}
