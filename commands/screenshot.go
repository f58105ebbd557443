package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/jobs"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

// CaptureRequest represents the parameters for a synchronous capture
type CaptureRequest struct {
	Options types.CaptureOptions
	Output  OutputOptions
}

// CaptureCommand captures a page and saves or displays the image
func CaptureCommand(ctx context.Context, rt *Runtime, req CaptureRequest) *CommandResponse {
	capReq, err := rt.buildCaptureRequest(req.Options)
	if err != nil {
		return NewErrorResponse(err)
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner(fmt.Sprintf("Capturing %s...", capReq.URL))
	start := rt.now()
	data, err := client.Capture(ctx, capReq)
	elapsed := rt.now().Sub(start)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("capture of %s failed: %w", capReq.URL, err))
	}

	result, err := rt.deliver(ctx, capReq, data, req.Output, elapsed)
	if err != nil {
		return NewErrorResponse(err)
	}

	rt.printCaptureSummary("Screenshot captured", result)
	return NewSuccessResponse(result)
}

// AsyncRequest represents the parameters for an async capture
type AsyncRequest struct {
	Options      types.CaptureOptions
	Output       OutputOptions
	NoPoll       bool
	PollInterval time.Duration
	Timeout      time.Duration
}

type AsyncSubmitted struct {
	JobID  string          `json:"jobId"`
	Status types.JobStatus `json:"status"`
	URL    string          `json:"url"`
}

// AsyncCommand submits a capture job and, unless NoPoll is set, waits
// for it and delivers the result like CaptureCommand.
func AsyncCommand(ctx context.Context, rt *Runtime, req AsyncRequest) *CommandResponse {
	capReq, err := rt.buildCaptureRequest(req.Options)
	if err != nil {
		return NewErrorResponse(err)
	}
	if req.PollInterval < 0 {
		return NewErrorResponse(types.InvalidOption("poll-interval", "must be positive"))
	}
	if req.Timeout < 0 {
		return NewErrorResponse(types.InvalidOption("timeout", "must be positive"))
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	tracker := jobs.NewTracker(client)
	if req.PollInterval > 0 {
		tracker.Interval = req.PollInterval
	}
	if req.Timeout > 0 {
		tracker.Timeout = req.Timeout
	}

	spinner := rt.Spinner(fmt.Sprintf("Submitting %s...", capReq.URL))
	job, err := tracker.Submit(ctx, capReq)
	if err != nil {
		spinner.Stop()
		return NewErrorResponse(err)
	}

	if req.NoPoll {
		spinner.Stop()
		rt.Printf("%s %s\n", ui.Success(ui.CheckMark), ui.Bold("Job submitted"))
		rt.Printf("  Job ID: %s\n", ui.Accent(job.ID))
		rt.Printf("  Status: %s\n", ui.StatusColor(string(job.Status)))
		rt.Printf("\n  Check it with: allscreenshots jobs get %s\n", job.ID)
		return NewSuccessResponse(AsyncSubmitted{JobID: job.ID, Status: job.Status, URL: capReq.URL})
	}

	tracker.OnStatus = func(j *types.Job, elapsed time.Duration) {
		spinner.SetMessage(fmt.Sprintf("Job %s %s (%s)", j.ID, j.Status, utils.FormatDuration(elapsed)))
	}
	res, err := tracker.Wait(ctx, job.ID)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(err)
	}

	result, err := rt.deliver(ctx, capReq, res.Data, req.Output, res.Elapsed)
	if err != nil {
		return NewErrorResponse(err)
	}
	result.JobID = job.ID

	rt.printCaptureSummary("Async screenshot completed", result)
	return NewSuccessResponse(result)
}
