package vuxo

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned (wrapped in a ServiceError) when an operation
// that needs a network session is invoked before Connect or after
// Disconnect. No network call is made in that case.
var ErrNoSession = errors.New("no active session")

// ErrTooLarge is returned (wrapped in a ServiceError) when the server
// advertises an audio payload larger than the download ceiling. The body
// is never read.
var ErrTooLarge = errors.New("file too large")

// ErrNoAudioURL is returned (wrapped in a ServiceError) when a download
// is requested for a track whose page entry carried no audio locator.
var ErrNoAudioURL = errors.New("track has no audio url")

// ParseError reports a page whose markup does not match the expected
// structure: the playlist container is missing, or one of its entries
// lacks a required sub-element. A ParseError aborts the whole page;
// there are no partial results.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse page: " + e.Reason
}

// ServiceError is the single error kind surfaced by Client operations.
// It carries the failed operation and the underlying cause for logging;
// callers present only a short generic message to the end user.
type ServiceError struct {
	// Op is the operation that failed ("search", "top hits", "download").
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// statusError wraps a non-2xx HTTP response status. Status failures are
// retried like any other network-layer error.
type statusError struct {
	StatusCode int
	Status     string
}

func (e *statusError) Error() string {
	return "unexpected status: " + e.Status
}
