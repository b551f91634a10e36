package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned before any I/O when a caller passes an
	// unusable product id.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedResponse is returned when the catalog answers with a
	// payload whose shape does not match the resource.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrRequestFailed is returned once every attempt of a request has failed.
	ErrRequestFailed = errors.New("request failed")
)

// StatusError records a non-2xx answer from the catalog.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.Code)
}
