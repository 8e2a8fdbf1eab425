// Package ingest fetches the published telemetry CSV and turns it into
// the canonical ride collection.
package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying load failures.
var (
	// ErrTimeout indicates the fetch exceeded the request budget.
	ErrTimeout = errors.New("request timed out, check connectivity")
	// ErrBadStatus indicates the source returned a non-success HTTP status.
	ErrBadStatus = errors.New("source returned an error status")
	// ErrWrongFormat indicates the response body is markup, not CSV.
	// Almost always a sheet published as an HTML view instead of CSV.
	ErrWrongFormat = errors.New("source returned HTML instead of CSV")
	// ErrEmptyData indicates the CSV parsed but yielded no usable rows.
	ErrEmptyData = errors.New("no ride data found")
	// ErrProcessing indicates an unclassified parse or transform failure.
	ErrProcessing = errors.New("failed to process the data; structure may be incorrect")
)

// Error carries a classified load failure with a user-actionable message.
type Error struct {
	// Code is a short machine-readable classifier.
	Code string
	// Message is safe to show to the user.
	Message string
	// Status is the HTTP status from the source, when relevant.
	Status int
	// Err is the sentinel this error wraps.
	Err error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func timeoutError() *Error {
	return &Error{
		Code:    "TIMEOUT",
		Message: "request timed out, please check your internet connection",
		Err:     ErrTimeout,
	}
}

func badStatusError(status int, statusText string) *Error {
	return &Error{
		Code:    fmt.Sprintf("HTTP_%d", status),
		Message: fmt.Sprintf("failed to fetch CSV: %d %s", status, statusText),
		Status:  status,
		Err:     ErrBadStatus,
	}
}

func wrongFormatError() *Error {
	return &Error{
		Code:    "WRONG_FORMAT",
		Message: "the URL returned HTML instead of CSV; publish the sheet via File > Share > Publish to Web > CSV",
		Err:     ErrWrongFormat,
	}
}

func emptyDataError() *Error {
	return &Error{
		Code:    "EMPTY_DATA",
		Message: "no valid ride data found, check the CSV URL",
		Err:     ErrEmptyData,
	}
}

func processingError(cause error) *Error {
	return &Error{
		Code:    "PROCESSING",
		Message: "failed to process the CSV data, structure may be incorrect",
		Err:     fmt.Errorf("%w: %w", ErrProcessing, cause),
	}
}
