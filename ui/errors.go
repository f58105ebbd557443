package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/types"
)

// FormatError turns an error into a message with a hint on how to fix
// it.
func FormatError(err error) string {
	var (
		apiErr     *types.APIError
		optErr     *types.InvalidOptionError
		timeoutErr *types.JobTimeoutError
		ioErr      *types.IOError
	)

	var msg, hint string
	switch {
	case errors.Is(err, types.ErrMissingCredential):
		msg = "No API key found."
		hint = "Run 'allscreenshots config add-authtoken <KEY>' or set ALLSCREENSHOTS_API_KEY."
	case errors.Is(err, context.Canceled):
		msg = "Interrupted."
	case errors.As(err, &apiErr):
		msg, hint = formatAPIError(apiErr)
	case errors.As(err, &optErr):
		msg = optErr.Error()
		hint = "Run with --help to see valid values."
	case errors.As(err, &timeoutErr):
		msg = timeoutErr.Error()
		hint = fmt.Sprintf("The job may still finish; check it with 'allscreenshots jobs get %s'.", timeoutErr.JobID)
	case errors.As(err, &ioErr):
		msg = ioErr.Error()
	default:
		msg = err.Error()
	}

	var b strings.Builder
	b.WriteString(Error("Error: "))
	b.WriteString(msg)
	if hint != "" {
		b.WriteString("\n  ")
		b.WriteString(Dim(hint))
	}
	return b.String()
}

func formatAPIError(e *types.APIError) (string, string) {
	switch {
	case e.Status == 0:
		return "Connection failed: " + errorDetail(e), "Check your network connection."
	case e.IsUnauthorized():
		return "Authentication failed: " + errorDetail(e), "Check your API key with 'allscreenshots config show'."
	case e.IsRateLimited():
		return "Rate limit exceeded: " + errorDetail(e), "Wait a moment and try again, or check 'allscreenshots usage'."
	case e.IsNotFound():
		return "Not found: " + errorDetail(e), ""
	case e.Status == 400 || e.Status == 422:
		return "Validation error: " + errorDetail(e), ""
	default:
		return e.Error(), ""
	}
}

func errorDetail(e *types.APIError) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Error()
}
