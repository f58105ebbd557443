package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/api"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

const (
	loopDisplayWidth  = 60
	loopDisplayHeight = 20
)

// LoopSummary is reported when a repeating capture stops.
type LoopSummary struct {
	URL        string   `json:"url"`
	Captures   int      `json:"captures"`
	Succeeded  int      `json:"succeeded"`
	Failed     int      `json:"failed"`
	Paths      []string `json:"paths,omitempty"`
	DurationMs int64    `json:"durationMs"`
	// StoppedBy is "interrupt", "max-captures" or "schedule-ended".
	StoppedBy string `json:"stoppedBy"`
}

type captureLoop struct {
	client    api.API
	req       types.CaptureRequest
	outputDir string
	display   OutputOptions
	max       int
	// delay returns how long to wait before capture n (1-based), or
	// false when there is no further capture.
	delay func(now time.Time, n int) (time.Duration, bool)
}

// run captures until ctx is cancelled or max captures were taken.
// A failed iteration is reported and the loop carries on.
func (rt *Runtime) runCaptureLoop(ctx context.Context, l captureLoop) LoopSummary {
	summary := LoopSummary{URL: l.req.URL, StoppedBy: "interrupt"}
	start := rt.now()

	for n := 1; ; n++ {
		d, ok := l.delay(rt.now(), n)
		if !ok {
			summary.StoppedBy = "schedule-ended"
			break
		}
		if d > 0 {
			if err := rt.sleep(ctx, d); err != nil {
				break
			}
		}

		path, err := rt.loopIteration(ctx, l, n)
		if ctx.Err() != nil {
			break
		}
		summary.Captures++
		if err != nil {
			summary.Failed++
			utils.Verbose("capture #%d of %s failed: %v", n, l.req.URL, err)
			rt.Printf("  %s #%d %s\n", ui.Error(ui.CrossMark), n, ui.FormatError(err))
		} else {
			summary.Succeeded++
			if path != "" {
				summary.Paths = append(summary.Paths, path)
			}
		}

		if l.max > 0 && summary.Captures >= l.max {
			summary.StoppedBy = "max-captures"
			break
		}
	}

	summary.DurationMs = rt.now().Sub(start).Milliseconds()
	return summary
}

func (rt *Runtime) loopIteration(ctx context.Context, l captureLoop, n int) (string, error) {
	spinner := rt.Spinner(fmt.Sprintf("Capture #%d: %s...", n, l.req.URL))
	data, err := l.client.Capture(ctx, l.req)
	spinner.Stop()
	if err != nil {
		return "", err
	}

	name := utils.AutoFilename(l.req.URL, l.req.Extension(), rt.now())
	var path string
	if l.outputDir != "" {
		if path, err = saveInDir(ctx, l.outputDir, name, data); err != nil {
			return "", err
		}
	}

	displayed := false
	if rt.shouldDisplay(l.display) && !rt.JSON && rt.Renderer != nil {
		if err := rt.Renderer.WithSize(loopDisplayWidth, loopDisplayHeight).Display(data); err != nil {
			utils.Verbose("display failed: %v", err)
		} else {
			displayed = true
		}
	}

	if path == "" && !displayed {
		if path, err = saveInDir(ctx, rt.Config.Defaults.OutputDir, name, data); err != nil {
			return "", err
		}
	}

	info := utils.FormatFileSize(int64(len(data)))
	if w, h, err := utils.ImageSize(data); err == nil {
		info = fmt.Sprintf("%dx%d, %s", w, h, info)
	}
	if path != "" {
		rt.Printf("  %s #%d saved %s (%s)\n", ui.Success(ui.CheckMark), n, ui.Accent(path), info)
	} else {
		rt.Printf("  %s #%d captured (%s)\n", ui.Success(ui.CheckMark), n, info)
	}
	return path, nil
}

func (rt *Runtime) printLoopSummary(s LoopSummary) {
	rt.Println()
	switch s.StoppedBy {
	case "max-captures":
		rt.Printf("%s Maximum captures (%d) reached\n", ui.Success(ui.CheckMark), s.Captures)
	case "schedule-ended":
		rt.Printf("%s Schedule has no further runs\n", ui.Dim(ui.Bullet))
	default:
		rt.Printf("%s Stopped\n", ui.Dim(ui.Bullet))
	}
	rt.Printf("  Captures:  %d\n", s.Captures)
	rt.Printf("  Succeeded: %s\n", ui.Success(fmt.Sprint(s.Succeeded)))
	if s.Failed > 0 {
		rt.Printf("  Failed:    %s\n", ui.Error(fmt.Sprint(s.Failed)))
	}
	rt.Printf("  Duration:  %s\n", utils.FormatDuration(time.Duration(s.DurationMs)*time.Millisecond))
}
