package ui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "missing key",
			err:      fmt.Errorf("capture: %w", types.ErrMissingCredential),
			contains: []string{"No API key found", "config add-authtoken"},
		},
		{
			name:     "unauthorized",
			err:      &types.APIError{Status: 401, Message: "bad key"},
			contains: []string{"Authentication failed: bad key", "config show"},
		},
		{
			name:     "rate limited",
			err:      &types.APIError{Status: 429},
			contains: []string{"Rate limit exceeded"},
		},
		{
			name:     "connection",
			err:      &types.APIError{Err: errors.New("dial tcp: connection refused")},
			contains: []string{"Connection failed: dial tcp", "network"},
		},
		{
			name:     "validation",
			err:      &types.APIError{Status: 422, Message: "url invalid"},
			contains: []string{"Validation error: url invalid"},
		},
		{
			name:     "invalid option",
			err:      types.InvalidOption("quality", "must be between 1 and 100, got 0"),
			contains: []string{"invalid --quality", "--help"},
		},
		{
			name:     "timeout",
			err:      &types.JobTimeoutError{JobID: "job_7", LastStatus: types.JobRunning, Timeout: time.Minute},
			contains: []string{"job_7 still running after 1m0s", "jobs get job_7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.err)
			assert.True(t, strings.HasPrefix(out, "Error: ") || strings.Contains(out, "Error: "))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestQuotaBar(t *testing.T) {
	SetNoColor(true)
	assert.NotEmpty(t, QuotaBar(10, 20))
	assert.NotEmpty(t, QuotaBar(150, 20))
	assert.NotEmpty(t, QuotaBar(-5, 20))
}

func TestNoopSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "working", false)
	s.SetMessage("still working")
	s.Stop()
	assert.Zero(t, buf.Len())
}

func TestProgressBar_DisabledOnlyPrintsLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, 3, false)
	p.Increment()
	p.Println("line one")
	p.Increment()
	p.Finish()
	assert.Equal(t, "line one\n", buf.String())
}

func TestProgressBar_EnabledRedraws(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, 2, true)
	p.Increment()
	p.Println("done one")
	assert.Contains(t, buf.String(), "1/2")
	assert.Contains(t, buf.String(), "done one\n")
}

func TestSpinnerModel_Update(t *testing.T) {
	m := spinnerModel{message: "a"}
	next, cmd := m.Update(messageMsg("b"))
	assert.Nil(t, cmd)
	assert.Equal(t, "b", next.(spinnerModel).message)

	next, cmd = next.Update(stopMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
