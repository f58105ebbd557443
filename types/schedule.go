package types

import "time"

// Schedule is a recurring capture stored by the service.
type Schedule struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	URL             string          `json:"url"`
	Schedule        string          `json:"schedule"`
	Description     string          `json:"scheduleDescription,omitempty"`
	Timezone        string          `json:"timezone"`
	Status          string          `json:"status"`
	Options         *CaptureRequest `json:"options,omitempty"`
	WebhookURL      string          `json:"webhookUrl,omitempty"`
	RetentionDays   int             `json:"retentionDays,omitempty"`
	NextExecutionAt *time.Time      `json:"nextExecutionAt,omitempty"`
	LastExecutedAt  *time.Time      `json:"lastExecutedAt,omitempty"`
	ExecutionCount  int64           `json:"executionCount"`
	SuccessCount    int64           `json:"successCount"`
	FailureCount    int64           `json:"failureCount"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

type CreateScheduleRequest struct {
	Name          string          `json:"name"`
	URL           string          `json:"url"`
	Schedule      string          `json:"schedule"`
	Timezone      string          `json:"timezone,omitempty"`
	Options       *CaptureRequest `json:"options,omitempty"`
	WebhookURL    string          `json:"webhookUrl,omitempty"`
	RetentionDays int             `json:"retentionDays,omitempty"`
}

// UpdateScheduleRequest only sends the fields that were set.
type UpdateScheduleRequest struct {
	Name          *string `json:"name,omitempty"`
	URL           *string `json:"url,omitempty"`
	Schedule      *string `json:"schedule,omitempty"`
	Timezone      *string `json:"timezone,omitempty"`
	WebhookURL    *string `json:"webhookUrl,omitempty"`
	RetentionDays *int    `json:"retentionDays,omitempty"`
}

func (u UpdateScheduleRequest) IsEmpty() bool {
	return u.Name == nil && u.URL == nil && u.Schedule == nil && u.Timezone == nil && u.WebhookURL == nil && u.RetentionDays == nil
}

type ScheduleExecution struct {
	ID           string     `json:"id"`
	ExecutedAt   time.Time  `json:"executedAt"`
	Status       string     `json:"status"`
	ResultURL    string     `json:"resultUrl,omitempty"`
	StorageURL   string     `json:"storageUrl,omitempty"`
	FileSize     int64      `json:"fileSize,omitempty"`
	RenderTimeMs int64      `json:"renderTimeMs,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

type ScheduleHistory struct {
	ScheduleID      string              `json:"scheduleId"`
	TotalExecutions int64               `json:"totalExecutions"`
	Executions      []ScheduleExecution `json:"executions"`
}
