package commands

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/render"
	"github.com/allscreenshots/allscreenshots-cli/storage"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
)

const (
	DefaultGalleryLimit = 10

	galleryLabelWidth = 50
)

var thumbnailSizes = map[string][2]int{
	"small":  {40, 10},
	"medium": {60, 15},
}

type GalleryRequest struct {
	// Dir is a local directory or s3://bucket/prefix; empty means recent
	// completed API jobs.
	Dir     string
	Limit   int
	Size    string
	Display OutputOptions
}

type GalleryItem struct {
	Label     string `json:"label"`
	Path      string `json:"path,omitempty"`
	JobID     string `json:"jobId,omitempty"`
	Size      int64  `json:"size"`
	Displayed bool   `json:"displayed"`
	Error     string `json:"error,omitempty"`
}

type GalleryResult struct {
	Source string        `json:"source"`
	Total  int           `json:"total"`
	Items  []GalleryItem `json:"items"`
}

// GalleryCommand shows thumbnails of local images or of recent results.
func GalleryCommand(ctx context.Context, rt *Runtime, req GalleryRequest) *CommandResponse {
	size := strings.ToLower(req.Size)
	if size == "" {
		size = "small"
	}
	cells, ok := thumbnailSizes[size]
	if !ok {
		return NewErrorResponse(types.InvalidOption("size", "must be small or medium"))
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultGalleryLimit
	}
	if limit < 0 {
		return NewErrorResponse(types.InvalidOption("limit", "must be positive"))
	}

	// --display is implied; only --no-display turns thumbnails off
	var thumbs render.Displayer
	if rt.Renderer != nil && !rt.JSON && !req.Display.NoDisplay {
		thumbs = rt.Renderer.WithSize(cells[0], cells[1])
	}

	var (
		result *GalleryResult
		err    error
	)
	if req.Dir != "" {
		result, err = rt.storedGallery(ctx, req.Dir, limit, thumbs)
	} else {
		result, err = rt.remoteGallery(ctx, limit, thumbs)
	}
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(result)
}

// storedGallery shows the images of a local directory or S3 prefix,
// newest first.
func (rt *Runtime) storedGallery(ctx context.Context, dir string, limit int, thumbs render.Displayer) (*GalleryResult, error) {
	store, prefix, err := storage.ForDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	spinner := rt.Spinner(fmt.Sprintf("Listing %s...", dir))
	objects, err := store.List(ctx, prefix)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	result := &GalleryResult{Source: dir, Total: len(objects), Items: []GalleryItem{}}
	rt.printGalleryHeader(dir)
	if len(objects) == 0 {
		rt.Println(ui.Dim("No images found in directory."))
		return result, nil
	}

	for _, obj := range objects[:min(limit, len(objects))] {
		item := GalleryItem{Label: path.Base(obj.Key), Path: obj.Location, Size: obj.Size}
		data, err := store.Get(ctx, obj.Key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			item.Error = err.Error()
			rt.Printf("  %s failed to load %s: %s\n", ui.Warn("!"), obj.Key, err)
		} else {
			rt.showThumbnail(thumbs, &item, data)
		}
		result.Items = append(result.Items, item)
	}

	if result.Total > len(result.Items) {
		rt.Println(ui.Dim(fmt.Sprintf("Showing %d of %d images", len(result.Items), result.Total)))
	}
	return result, nil
}

func (rt *Runtime) remoteGallery(ctx context.Context, limit int, thumbs render.Displayer) (*GalleryResult, error) {
	client, err := rt.Client()
	if err != nil {
		return nil, err
	}

	spinner := rt.Spinner("Fetching recent screenshots...")
	list, err := client.ListJobs(ctx)
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	var done []types.Job
	for _, j := range list {
		if j.Status == types.JobDone {
			done = append(done, j)
		}
	}

	result := &GalleryResult{Source: "api", Total: len(done), Items: []GalleryItem{}}
	rt.printGalleryHeader("Recent API jobs")
	if len(done) == 0 {
		rt.Println(ui.Dim("No completed screenshots found."))
		return result, nil
	}

	for _, j := range done[:min(limit, len(done))] {
		label := j.URL
		if label == "" {
			label = j.ID
		}
		item := GalleryItem{Label: truncate(label, galleryLabelWidth), JobID: j.ID}

		spinner := rt.Spinner(fmt.Sprintf("Loading %s...", j.ID))
		data, err := client.GetJobResult(ctx, j.ID)
		spinner.Stop()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			item.Error = err.Error()
			rt.Printf("  %s failed to load %s: %s\n", ui.Warn("!"), j.ID, err)
		} else {
			item.Size = int64(len(data))
			rt.showThumbnail(thumbs, &item, data)
		}
		result.Items = append(result.Items, item)
	}

	rt.Println(ui.Dim(fmt.Sprintf("Showing %d screenshots", len(result.Items))))
	return result, nil
}

func (rt *Runtime) printGalleryHeader(source string) {
	rt.Printf("%s\n", ui.Title("Gallery"))
	rt.Printf("  Source: %s\n\n", ui.Accent(source))
}

func (rt *Runtime) showThumbnail(thumbs render.Displayer, item *GalleryItem, data []byte) {
	if thumbs != nil {
		if err := thumbs.Display(data); err != nil {
			item.Error = err.Error()
			rt.Printf("  %s failed to display: %s\n", ui.Warn("!"), err)
			return
		}
		item.Displayed = true
	}
	rt.Printf("  %s\n\n", ui.Dim(item.Label))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
