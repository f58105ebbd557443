package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/google/uuid"
)

// Capture takes a synchronous screenshot and returns the encoded image.
func (c *Client) Capture(ctx context.Context, req types.CaptureRequest) ([]byte, error) {
	data, err := c.do(ctx, http.MethodPost, "/v1/screenshots", requestOptions{
		body:   req,
		accept: "image/*, application/pdf",
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &types.APIError{Status: http.StatusOK, Message: "empty response body"}
	}
	return data, nil
}

// SubmitAsync queues a capture job. Each submission carries a fresh
// idempotency key so a transport-level resend cannot create two jobs.
func (c *Client) SubmitAsync(ctx context.Context, req types.CaptureRequest) (*types.Job, error) {
	data, err := c.do(ctx, http.MethodPost, "/v1/screenshots/async", requestOptions{
		body:    req,
		headers: map[string]string{"Idempotency-Key": uuid.NewString()},
	})
	if err != nil {
		return nil, err
	}

	job, err := decodeJob(data)
	if err != nil {
		return nil, err
	}
	if job.Status == "" {
		job.Status = types.JobQueued
	}
	if job.URL == "" {
		job.URL = req.URL
	}
	return job, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*types.Job, error) {
	data, err := c.do(ctx, http.MethodGet, jobPath(id, ""), requestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeJob(data)
}

// GetJobResult downloads the image of a completed job.
func (c *Client) GetJobResult(ctx context.Context, id string) ([]byte, error) {
	if data, ok := c.results.Get(id); ok {
		return data, nil
	}

	data, err := c.do(ctx, http.MethodGet, jobPath(id, "/result"), requestOptions{
		accept: "image/*, application/pdf",
	})
	if err != nil {
		return nil, err
	}

	c.results.Add(id, data)
	return data, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]types.Job, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/screenshots/jobs", requestOptions{})
	if err != nil {
		return nil, err
	}
	jobs, err := decodeList[types.Job](data, "jobs")
	if err != nil {
		return nil, fmt.Errorf("invalid job list response: %w", err)
	}
	return jobs, nil
}

func (c *Client) CancelJob(ctx context.Context, id string) (*types.Job, error) {
	data, err := c.do(ctx, http.MethodPost, jobPath(id, "/cancel"), requestOptions{})
	if err != nil {
		return nil, err
	}
	return decodeJob(data)
}

func decodeJob(data []byte) (*types.Job, error) {
	var job types.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("invalid job response: %w", err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("invalid job response: missing id")
	}
	return &job, nil
}
