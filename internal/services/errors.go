package services

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyInput is returned when parsing the user's raw text produced no
// invoice numbers. This is a user input error, not a parser fault.
var ErrEmptyInput = errors.New("no invoice numbers provided")

// ErrReportNotFound is returned when an export or retrieval is attempted
// against a report ID that does not exist in the store.
var ErrReportNotFound = errors.New("report not found")

// TimeoutError indicates the remote verification call exceeded the wait
// ceiling. It is treated identically to a network failure; the in-flight
// request is abandoned from the caller's perspective.
type TimeoutError struct {
	Endpoint string
	Ceiling  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.Endpoint, e.Ceiling)
}

// RemoteHTTPError indicates a non-2xx response from the verification
// endpoint. The body is carried verbatim so remote-side problems can be
// diagnosed by the caller; no automatic retry is attempted.
type RemoteHTTPError struct {
	StatusCode int
	Body       string
}

func (e *RemoteHTTPError) Error() string {
	return fmt.Sprintf("verification endpoint returned HTTP %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError indicates the response body was not well-formed JSON.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("verification response is not valid JSON: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// InvalidShapeError indicates the response parsed as JSON but did not expose
// the expected envelope (a "results" array).
type InvalidShapeError struct {
	Detail string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("verification response has unexpected shape: %s", e.Detail)
}

// StrictCountError indicates strict reconciliation was enabled and the remote
// service returned a different number of results than was requested.
type StrictCountError struct {
	Requested int
	Returned  int
}

func (e *StrictCountError) Error() string {
	return fmt.Sprintf("requested %d invoices but remote returned %d results", e.Requested, e.Returned)
}
