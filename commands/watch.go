package commands

import (
	"context"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/daemon"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

const (
	DefaultWatchInterval = 5 * time.Second
	MinWatchInterval     = time.Second
)

type WatchRequest struct {
	Options     types.CaptureOptions
	Interval    time.Duration
	OutputDir   string
	MaxCaptures int
	Display     OutputOptions
}

// WatchCommand re-captures a page every interval until interrupted or
// MaxCaptures is reached.
func WatchCommand(ctx context.Context, rt *Runtime, req WatchRequest) *CommandResponse {
	interval := req.Interval
	if interval == 0 {
		interval = DefaultWatchInterval
	}
	if interval < MinWatchInterval {
		return NewErrorResponse(types.InvalidOption("interval", "must be at least %s", MinWatchInterval))
	}
	if req.MaxCaptures < 0 {
		return NewErrorResponse(types.InvalidOption("max-captures", "must not be negative"))
	}

	capReq, err := rt.buildCaptureRequest(req.Options)
	if err != nil {
		return NewErrorResponse(err)
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	rt.Printf("%s\n", ui.Title("Watch Mode"))
	rt.Printf("  URL:      %s\n", capReq.URL)
	rt.Printf("  Interval: %s\n", utils.FormatDuration(interval))
	if req.OutputDir != "" {
		rt.Printf("  Output:   %s\n", req.OutputDir)
	}
	if req.MaxCaptures > 0 {
		rt.Printf("  Max:      %d captures\n", req.MaxCaptures)
	}
	rt.Printf("\n%s\n\n", ui.Dim("Press Ctrl+C to stop"))

	summary := rt.runCaptureLoop(ctx, captureLoop{
		client:    client,
		req:       capReq,
		outputDir: req.OutputDir,
		display:   req.Display,
		max:       req.MaxCaptures,
		delay: func(_ time.Time, n int) (time.Duration, bool) {
			if n == 1 {
				return 0, true
			}
			return interval, true
		},
	})

	rt.printLoopSummary(summary)
	return NewSuccessResponse(summary)
}

type WatchDetached struct {
	PID     int    `json:"pid"`
	PidFile string `json:"pidFile"`
	LogFile string `json:"logFile"`
}

// WatchDetachedResponse reports a watcher started in the background.
func WatchDetachedResponse(rt *Runtime, pid int, files daemon.Files) *CommandResponse {
	rt.Printf("%s Watch running in the background (pid %d)\n", ui.Success(ui.CheckMark), pid)
	rt.Printf("  Log:  %s\n", ui.Accent(files.LogFile))
	rt.Printf("  Stop: allscreenshots watch --stop\n")
	return NewSuccessResponse(WatchDetached{PID: pid, PidFile: files.PidFile, LogFile: files.LogFile})
}

// WatchStopCommand signals the detached watcher to finish.
func WatchStopCommand(rt *Runtime, files daemon.Files) *CommandResponse {
	pid, err := daemon.Stop(files)
	if err != nil {
		return NewErrorResponse(err)
	}
	rt.Printf("%s Stopped watch process %d\n", ui.Success(ui.CheckMark), pid)
	return NewSuccessResponse(map[string]int{"pid": pid})
}
