package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the stable failure taxonomy exposed to callers
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindUpstreamRateLimited   ErrorKind = "upstream_rate_limited"
	KindUpstreamQuotaExceeded ErrorKind = "upstream_quota_exceeded"
	KindUpstreamUnavailable   ErrorKind = "upstream_unavailable"
	KindSchemaViolation       ErrorKind = "schema_violation"
	KindUnconfigured          ErrorKind = "unconfigured"
)

// User-facing messages, one per kind. Causes are never appended to these.
var kindMessages = map[ErrorKind]string{
	KindInvalidInput:          "Please provide at least 20 characters of news text to analyze.",
	KindUpstreamRateLimited:   "Rate limit exceeded. Please try again in a moment.",
	KindUpstreamQuotaExceeded: "AI usage limit reached. Please try again later.",
	KindUpstreamUnavailable:   "AI analysis failed.",
	KindSchemaViolation:       "AI did not return structured output.",
	KindUnconfigured:          "Analysis service is not configured.",
}

// ParseErrorKind converts a config string into an ErrorKind
func ParseErrorKind(s string) (ErrorKind, error) {
	kind := ErrorKind(s)
	if _, ok := kindMessages[kind]; !ok {
		return "", fmt.Errorf("unknown error kind: %q", s)
	}
	return kind, nil
}

// Status returns the HTTP status code a kind is surfaced with
func (k ErrorKind) Status() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUpstreamRateLimited:
		return http.StatusTooManyRequests
	case KindUpstreamQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-displayable message for a kind
func (k ErrorKind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return kindMessages[KindUpstreamUnavailable]
}

// Internal reports whether the kind indicates a deployment or upstream
// contract problem rather than a caller mistake or an upstream throttle.
func (k ErrorKind) Internal() bool {
	switch k {
	case KindUnconfigured, KindSchemaViolation, KindUpstreamUnavailable:
		return true
	}
	return false
}

// PipelineError is a mapped failure. Message is safe to show to callers;
// Err holds the underlying cause for server-side logging only.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError builds a PipelineError with the kind's default message
func NewError(kind ErrorKind, cause error) *PipelineError {
	return &PipelineError{
		Kind:    kind,
		Message: kind.Message(),
		Err:     cause,
	}
}

// Errorf builds a PipelineError whose cause is a formatted error
func Errorf(kind ErrorKind, format string, args ...interface{}) *PipelineError {
	return NewError(kind, fmt.Errorf(format, args...))
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error
func (e *PipelineError) Status() int {
	return e.Kind.Status()
}

// ErrorBody is the JSON shape of every failure response
type ErrorBody struct {
	Error string `json:"error"`
}

// Body returns the caller-facing JSON body for the error
func (e *PipelineError) Body() ErrorBody {
	return ErrorBody{Error: e.Message}
}

// KindOf returns the kind of err if it wraps a PipelineError
func KindOf(err error) (ErrorKind, bool) {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return "", false
}
