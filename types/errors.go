package types

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrMissingCredential is returned when no API key could be resolved
// from the flag, the environment, the config file or the keyring.
var ErrMissingCredential = errors.New("no API key found")

// InvalidOptionError reports a flag value or combination rejected before
// any request is sent.
type InvalidOptionError struct {
	Option string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("invalid option: %s", e.Reason)
	}
	return fmt.Sprintf("invalid --%s: %s", e.Option, e.Reason)
}

func InvalidOption(option, format string, args ...any) error {
	return &InvalidOptionError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

// APIError is a non-2xx response from the service. Status 0 means the
// request never got a response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return fmt.Sprintf("request failed: %s", e.Message)
	}

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("API error %d: %s", e.Status, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func (e *APIError) IsRateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IOError wraps a local filesystem failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RenderError means an image could not be shown in the terminal. It is
// never fatal for a command.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot display image: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot display image: %s", e.Reason)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// JobFailedError is returned when an async job ends in the failed or
// cancelled state.
type JobFailedError struct {
	JobID   string
	Status  JobStatus
	Code    string
	Message string
}

func (e *JobFailedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no error message provided"
	}
	if e.Code != "" {
		return fmt.Sprintf("job %s %s (%s): %s", e.JobID, e.Status, e.Code, msg)
	}
	return fmt.Sprintf("job %s %s: %s", e.JobID, e.Status, msg)
}

// JobTimeoutError is returned when a job does not finish within the
// caller supplied deadline.
type JobTimeoutError struct {
	JobID      string
	LastStatus JobStatus
	Timeout    time.Duration
}

func (e *JobTimeoutError) Error() string {
	return fmt.Sprintf("job %s still %s after %s", e.JobID, e.LastStatus, e.Timeout)
}

// PartialFailureError summarises a multi-item run where some items failed.
type PartialFailureError struct {
	Succeeded int
	Failed    int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d captures failed", e.Failed, e.Succeeded+e.Failed)
}
