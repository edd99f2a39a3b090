package connect

import "errors"

var (
	// ErrUnreachable is returned when the REST API cannot be reached at the
	// transport level (connection refused, timeout).
	ErrUnreachable = errors.New("kafka connect api unreachable")

	// ErrUnhealthy is returned when the REST API responds with a non-200 status.
	ErrUnhealthy = errors.New("kafka connect api unhealthy")

	// ErrBadPayload is returned when a response body cannot be decoded.
	ErrBadPayload = errors.New("kafka connect api returned malformed payload")
)
