package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobDone      JobStatus = "done"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// ParseJobStatus accepts both the CLI vocabulary and the service's
// upper-case wire values (QUEUED, PROCESSING, COMPLETED, ...).
func ParseJobStatus(s string) (JobStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "queued", "pending":
		return JobQueued, nil
	case "running", "processing":
		return JobRunning, nil
	case "done", "completed", "complete", "succeeded":
		return JobDone, nil
	case "failed", "error":
		return JobFailed, nil
	case "cancelled", "canceled":
		return JobCancelled, nil
	default:
		return "", fmt.Errorf("unknown job status %q", s)
	}
}

func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseJobStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobFailed || s == JobCancelled
}

// Job is a server-side async capture.
type Job struct {
	ID           string     `json:"id"`
	Status       JobStatus  `json:"status"`
	URL          string     `json:"url,omitempty"`
	StatusURL    string     `json:"statusUrl,omitempty"`
	ResultURL    string     `json:"resultUrl,omitempty"`
	ErrorCode    string     `json:"errorCode,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// Duration is the processing time of a finished job, or zero.
func (j *Job) Duration() time.Duration {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(*j.StartedAt)
}
