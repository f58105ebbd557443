package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/jobs"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

func JobsListCommand(ctx context.Context, rt *Runtime) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Fetching jobs...")
	list, err := client.ListJobs(ctx)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to list jobs: %w", err))
	}

	if len(list) == 0 {
		rt.Println(ui.Dim("No jobs found."))
		return NewSuccessResponse(map[string]interface{}{"jobs": list})
	}

	if !rt.JSON {
		w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tURL\tCREATED")
		for _, j := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.ID, j.Status, j.URL, formatTime(j.CreatedAt))
		}
		w.Flush()
	}

	return NewSuccessResponse(map[string]interface{}{"jobs": list})
}

func JobsGetCommand(ctx context.Context, rt *Runtime, id string) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Fetching job...")
	job, err := client.GetJob(ctx, id)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to get job %s: %w", id, err))
	}

	rt.printJob(job)
	return NewSuccessResponse(job)
}

func JobsCancelCommand(ctx context.Context, rt *Runtime, id string) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Cancelling job...")
	job, err := client.CancelJob(ctx, id)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to cancel job %s: %w", id, err))
	}

	rt.Printf("%s Job %s %s\n", ui.Warn(ui.CheckMark), ui.Accent(job.ID), ui.StatusColor(string(job.Status)))
	return NewSuccessResponse(job)
}

// JobsResultCommand downloads the image of a finished job and delivers
// it like a capture.
func JobsResultCommand(ctx context.Context, rt *Runtime, id string, output OutputOptions) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Fetching job...")
	job, err := client.GetJob(ctx, id)
	if err != nil {
		spinner.Stop()
		return NewErrorResponse(fmt.Errorf("failed to get job %s: %w", id, err))
	}
	if job.Status != types.JobDone {
		spinner.Stop()
		return NewErrorResponse(types.InvalidOption("", "job %s is %s, results are only available once it is done (try: allscreenshots jobs wait %s)", id, job.Status, id))
	}

	spinner.SetMessage("Downloading result...")
	start := rt.now()
	data, err := client.GetJobResult(ctx, id)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to download result of job %s: %w", id, err))
	}

	result, err := rt.deliver(ctx, resultRequest(job, data), data, output, rt.now().Sub(start))
	if err != nil {
		return NewErrorResponse(err)
	}
	result.JobID = job.ID

	rt.printCaptureSummary("Job result downloaded", result)
	return NewSuccessResponse(result)
}

type JobsWaitRequest struct {
	ID           string
	Output       OutputOptions
	PollInterval time.Duration
	Timeout      time.Duration
}

// JobsWaitCommand polls an existing job until it finishes and delivers
// the result.
func JobsWaitCommand(ctx context.Context, rt *Runtime, req JobsWaitRequest) *CommandResponse {
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

	spinner := rt.Spinner(fmt.Sprintf("Waiting for job %s...", req.ID))
	tracker.OnStatus = func(j *types.Job, elapsed time.Duration) {
		spinner.SetMessage(fmt.Sprintf("Job %s %s (%s)", j.ID, j.Status, utils.FormatDuration(elapsed)))
	}
	res, err := tracker.Wait(ctx, req.ID)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(err)
	}

	result, err := rt.deliver(ctx, resultRequest(res.Job, res.Data), res.Data, req.Output, res.Elapsed)
	if err != nil {
		return NewErrorResponse(err)
	}
	result.JobID = res.Job.ID

	rt.printCaptureSummary("Job completed", result)
	return NewSuccessResponse(result)
}

func (rt *Runtime) printJob(j *types.Job) {
	rt.Printf("%s\n\n", ui.Title("Job Details"))
	rt.Printf("  ID:        %s\n", ui.Accent(j.ID))
	rt.Printf("  Status:    %s\n", ui.StatusColor(string(j.Status)))
	if j.URL != "" {
		rt.Printf("  URL:       %s\n", j.URL)
	}
	if j.CreatedAt != nil {
		rt.Printf("  Created:   %s\n", formatTime(j.CreatedAt))
	}
	if j.StartedAt != nil {
		rt.Printf("  Started:   %s\n", formatTime(j.StartedAt))
	}
	if j.CompletedAt != nil {
		rt.Printf("  Completed: %s\n", formatTime(j.CompletedAt))
	}
	if d := j.Duration(); d > 0 {
		rt.Printf("  Duration:  %s\n", utils.FormatDuration(d))
	}
	if j.ResultURL != "" {
		rt.Printf("  Result:    %s\n", ui.Dim(j.ResultURL))
	}
	if j.ExpiresAt != nil {
		rt.Printf("  Expires:   %s\n", formatTime(j.ExpiresAt))
	}
	if j.ErrorMessage != "" {
		rt.Printf("  Error:     %s\n", ui.Error(strings.TrimSpace(j.ErrorCode+" "+j.ErrorMessage)))
	}
}

// resultRequest describes a downloaded job result so it can be named
// and delivered like a fresh capture.
func resultRequest(job *types.Job, data []byte) types.CaptureRequest {
	url := job.URL
	if url == "" {
		url = job.ID
	}
	return types.CaptureRequest{URL: url, Format: sniffFormat(data)}
}

func sniffFormat(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return types.FormatJPEG
	case "image/webp":
		return types.FormatWebP
	case "application/pdf":
		return types.FormatPDF
	default:
		return types.FormatPNG
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
