// Package models provides request and response models for the scootstats API.
package models

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC7807 error response, written with
// Content-Type: application/problem+json.
type Problem struct {
	// Type is a URI reference identifying the problem type.
	Type string `json:"type"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code for this occurrence.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`

	// Instance identifies the specific occurrence, here the request path.
	Instance string `json:"instance,omitempty"`

	// Code is the ingest classifier for source errors, when known.
	Code string `json:"code,omitempty"`

	// TraceID is the request identifier for correlation.
	TraceID string `json:"traceId"`
}

// Problem type URIs.
const (
	ProblemTypeValidation      = "https://scootstats.dev/problems/validation-error"
	ProblemTypeNotFound        = "https://scootstats.dev/problems/not-found"
	ProblemTypeSourceData      = "https://scootstats.dev/problems/source-data"
	ProblemTypeSourceUpstream  = "https://scootstats.dev/problems/source-upstream"
	ProblemTypeSourceTimeout   = "https://scootstats.dev/problems/source-timeout"
	ProblemTypeTooManyRequests = "https://scootstats.dev/problems/too-many-requests"
	ProblemTypeInternal        = "https://scootstats.dev/problems/internal-error"
)

// NewProblem creates a Problem.
func NewProblem(problemType, title string, status int, traceID string) *Problem {
	return &Problem{
		Type:    problemType,
		Title:   title,
		Status:  status,
		TraceID: traceID,
	}
}

// Write writes the Problem as JSON to the ResponseWriter.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewBadRequest creates a 400 Bad Request problem.
func NewBadRequest(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeValidation, "Validation error", http.StatusBadRequest, traceID)
	p.Detail = detail
	return p
}

// NewNotFound creates a 404 Not Found problem.
func NewNotFound(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeNotFound, "Not found", http.StatusNotFound, traceID)
	p.Detail = detail
	return p
}

// NewUnprocessable creates a 422 problem for source data that fetched
// fine but could not be used (wrong format, empty sheet).
func NewUnprocessable(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeSourceData, "Unusable source data", http.StatusUnprocessableEntity, traceID)
	p.Detail = detail
	return p
}

// NewBadGateway creates a 502 problem for upstream fetch failures.
func NewBadGateway(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeSourceUpstream, "Source unavailable", http.StatusBadGateway, traceID)
	p.Detail = detail
	return p
}

// NewGatewayTimeout creates a 504 problem for fetches that exceeded the
// request budget.
func NewGatewayTimeout(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeSourceTimeout, "Source timeout", http.StatusGatewayTimeout, traceID)
	p.Detail = detail
	return p
}

// NewTooManyRequests creates a 429 Too Many Requests problem.
func NewTooManyRequests(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests, traceID)
	p.Detail = detail
	return p
}

// NewInternalError creates a 500 Internal Server Error problem.
func NewInternalError(traceID, detail string) *Problem {
	p := NewProblem(ProblemTypeInternal, "Internal server error", http.StatusInternalServerError, traceID)
	p.Detail = detail
	return p
}
