// Package jobs drives async capture jobs from submission to result.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultTimeout      = 5 * time.Minute
)

// JobAPI is the subset of the service a Tracker needs.
type JobAPI interface {
	SubmitAsync(ctx context.Context, req types.CaptureRequest) (*types.Job, error)
	GetJob(ctx context.Context, id string) (*types.Job, error)
	GetJobResult(ctx context.Context, id string) ([]byte, error)
}

// Tracker polls a job through Queued -> Running -> Done | Failed at a
// fixed interval until it finishes or Timeout elapses.
type Tracker struct {
	client   JobAPI
	Interval time.Duration
	Timeout  time.Duration

	// OnStatus is called after every poll.
	OnStatus func(job *types.Job, elapsed time.Duration)

	after func(d time.Duration) <-chan time.Time
	now   func() time.Time
}

func NewTracker(client JobAPI) *Tracker {
	return &Tracker{
		client:   client,
		Interval: DefaultPollInterval,
		Timeout:  DefaultTimeout,
		after:    time.After,
		now:      time.Now,
	}
}

type Result struct {
	Job     *types.Job
	Data    []byte
	Elapsed time.Duration
	Polls   int
}

func (t *Tracker) Submit(ctx context.Context, req types.CaptureRequest) (*types.Job, error) {
	job, err := t.client.SubmitAsync(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit job: %w", err)
	}
	utils.Verbose("submitted job %s (%s)", job.ID, job.Status)
	return job, nil
}

// Run submits req and waits for its result.
func (t *Tracker) Run(ctx context.Context, req types.CaptureRequest) (*Result, error) {
	job, err := t.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	return t.Wait(ctx, job.ID)
}

// Wait polls an existing job until it reaches a terminal state.
func (t *Tracker) Wait(ctx context.Context, id string) (*Result, error) {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	start := t.now()
	state := types.JobQueued
	result := &Result{}

	for {
		switch state {
		case types.JobQueued, types.JobRunning:
			elapsed := t.now().Sub(start)
			if elapsed >= timeout {
				return nil, &types.JobTimeoutError{JobID: id, LastStatus: state, Timeout: timeout}
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.after(interval):
			}

			job, err := t.client.GetJob(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to poll job %s: %w", id, err)
			}
			result.Job = job
			result.Polls++

			if job.Status != state {
				utils.Verbose("job %s: %s -> %s", id, state, job.Status)
			}
			state = job.Status

			if t.OnStatus != nil {
				t.OnStatus(job, t.now().Sub(start))
			}

		case types.JobDone:
			data, err := t.client.GetJobResult(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch result of job %s: %w", id, err)
			}
			result.Data = data
			result.Elapsed = t.now().Sub(start)
			return result, nil

		case types.JobFailed, types.JobCancelled:
			return nil, &types.JobFailedError{
				JobID:   id,
				Status:  state,
				Code:    result.Job.ErrorCode,
				Message: result.Job.ErrorMessage,
			}

		default:
			return nil, fmt.Errorf("job %s reported unknown status %q", id, state)
		}
	}
}
