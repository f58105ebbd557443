package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobStatus(t *testing.T) {
	tests := map[string]JobStatus{
		"QUEUED":     JobQueued,
		"processing": JobRunning,
		"running":    JobRunning,
		"COMPLETED":  JobDone,
		"done":       JobDone,
		"FAILED":     JobFailed,
		"CANCELLED":  JobCancelled,
		"canceled":   JobCancelled,
	}
	for input, want := range tests {
		got, err := ParseJobStatus(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseJobStatus("exploded")
	assert.Error(t, err)
}

func TestJob_UnmarshalWireFormat(t *testing.T) {
	data := `{
		"id": "job_123",
		"status": "COMPLETED",
		"url": "https://example.com",
		"startedAt": "2024-01-01T10:00:00Z",
		"completedAt": "2024-01-01T10:00:02.5Z"
	}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(data), &job))
	assert.Equal(t, "job_123", job.ID)
	assert.Equal(t, JobDone, job.Status)
	assert.True(t, job.Status.IsTerminal())
	assert.Equal(t, 2500*time.Millisecond, job.Duration())
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, JobQueued.IsTerminal())
	assert.False(t, JobRunning.IsTerminal())
	assert.True(t, JobFailed.IsTerminal())
	assert.True(t, JobCancelled.IsTerminal())
}
