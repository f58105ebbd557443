package commands

import (
	"context"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/storage"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

// OutputOptions decide where a captured image goes.
type OutputOptions struct {
	// Output is a file path or s3://bucket/key.
	Output    string
	Display   bool
	NoDisplay bool
}

// CaptureResult describes one delivered image.
type CaptureResult struct {
	URL        string `json:"url"`
	Path       string `json:"path,omitempty"`
	Displayed  bool   `json:"displayed"`
	Format     string `json:"format"`
	Size       int64  `json:"size"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	DurationMs int64  `json:"durationMs"`
	JobID      string `json:"jobId,omitempty"`
}

// shouldDisplay: --no-display never, --display always, an explicit
// output file means no, otherwise the configured default.
func (rt *Runtime) shouldDisplay(o OutputOptions) bool {
	switch {
	case o.NoDisplay:
		return false
	case o.Display:
		return true
	case o.Output != "":
		return false
	default:
		return rt.Config.Defaults.Display
	}
}

// deliver writes the image to the explicit output, displays it when
// wanted and, when neither happened, saves it under the default output
// directory so the capture is never lost.
func (rt *Runtime) deliver(ctx context.Context, req types.CaptureRequest, data []byte, o OutputOptions, elapsed time.Duration) (*CaptureResult, error) {
	result := &CaptureResult{
		URL:        req.URL,
		Format:     req.Format,
		Size:       int64(len(data)),
		DurationMs: elapsed.Milliseconds(),
	}
	if w, h, err := utils.ImageSize(data); err == nil {
		result.Width, result.Height = w, h
	}

	if o.Output != "" {
		path, err := saveFile(ctx, o.Output, data)
		if err != nil {
			return nil, err
		}
		result.Path = path
	}

	if rt.shouldDisplay(o) && !rt.JSON && rt.Renderer != nil {
		if err := rt.Renderer.Display(data); err != nil {
			utils.Verbose("display failed: %v", err)
			rt.Printf("%s %s\n", ui.Warn("!"), ui.Dim(err.Error()))
		} else {
			result.Displayed = true
		}
	}

	if result.Path == "" && !result.Displayed {
		name := utils.AutoFilename(req.URL, req.Extension(), rt.now())
		path, err := saveInDir(ctx, rt.Config.Defaults.OutputDir, name, data)
		if err != nil {
			return nil, err
		}
		result.Path = path
	}

	return result, nil
}

func saveFile(ctx context.Context, target string, data []byte) (string, error) {
	s, key, err := storage.ForFile(ctx, target)
	if err != nil {
		return "", err
	}
	return s.Put(ctx, key, data)
}

func saveInDir(ctx context.Context, dir, name string, data []byte) (string, error) {
	s, prefix, err := storage.ForDirectory(ctx, dir)
	if err != nil {
		return "", err
	}
	return s.Put(ctx, storage.JoinKey(prefix, name), data)
}

func (rt *Runtime) printCaptureSummary(title string, r *CaptureResult) {
	rt.Printf("%s %s\n", ui.Success(ui.CheckMark), ui.Bold(title))
	rt.Printf("  URL:        %s\n", r.URL)
	if r.JobID != "" {
		rt.Printf("  Job:        %s\n", ui.Accent(r.JobID))
	}
	if r.Path != "" {
		rt.Printf("  Saved to:   %s\n", ui.Accent(r.Path))
	}
	if r.Width > 0 {
		rt.Printf("  Dimensions: %dx%d\n", r.Width, r.Height)
	}
	rt.Printf("  Size:       %s\n", utils.FormatFileSize(r.Size))
	rt.Printf("  Duration:   %s\n", utils.FormatDuration(time.Duration(r.DurationMs)*time.Millisecond))
}
