package commands

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/allscreenshots/allscreenshots-cli/storage"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBatchConcurrency = 4
	MaxBatchConcurrency     = 8
)

type BatchRequest struct {
	URLs        []string
	File        string
	OutputDir   string
	Concurrency int
	Options     types.CaptureOptions
}

type BatchItem struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	Path  string `json:"path,omitempty"`
	Size  int64  `json:"size,omitempty"`
	Error string `json:"error,omitempty"`
}

type BatchResult struct {
	Total      int         `json:"total"`
	Succeeded  int         `json:"succeeded"`
	Failed     int         `json:"failed"`
	OutputDir  string      `json:"outputDir"`
	DurationMs int64       `json:"durationMs"`
	Items      []BatchItem `json:"items"`
}

// batchTally is shared by the capture goroutines.
type batchTally struct {
	mu        sync.Mutex
	succeeded int
	failed    int
	items     []BatchItem
}

func (t *batchTally) record(item BatchItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if item.Error == "" {
		t.succeeded++
	} else {
		t.failed++
	}
	t.items = append(t.items, item)
}

// BatchCommand captures every URL, continuing past failures. The
// response is an error iff at least one capture failed.
func BatchCommand(ctx context.Context, rt *Runtime, req BatchRequest) *CommandResponse {
	urls := append([]string{}, req.URLs...)
	if req.File != "" {
		fromFile, err := utils.ReadURLsFromFile(req.File)
		if err != nil {
			return NewErrorResponse(&types.IOError{Op: "read URL list", Path: req.File, Err: err})
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return NewErrorResponse(types.InvalidOption("", "no URLs given (pass URLs as arguments or use --file)"))
	}

	concurrency := req.Concurrency
	if concurrency == 0 {
		concurrency = DefaultBatchConcurrency
	}
	if concurrency < 1 || concurrency > MaxBatchConcurrency {
		return NewErrorResponse(types.InvalidOption("concurrency", "must be between 1 and %d", MaxBatchConcurrency))
	}

	// options shared by every URL are checked once, before any request
	template := req.Options
	template.URL = "example.com"
	if _, err := rt.buildCaptureRequest(template); err != nil {
		return NewErrorResponse(err)
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = rt.Config.Defaults.OutputDir
	}
	store, prefix, err := storage.ForDirectory(ctx, outputDir)
	if err != nil {
		return NewErrorResponse(err)
	}

	rt.Printf("%s %d URLs to %s\n\n", ui.Bold("Capturing"), len(urls), ui.Accent(outputDir))

	bar := ui.NewProgressBar(rt.Err, len(urls), rt.Interactive && !rt.JSON)
	tally := &batchTally{}
	start := rt.now()

	var eg errgroup.Group
	eg.SetLimit(concurrency)
	for i, rawURL := range urls {
		eg.Go(func() error {
			item := BatchItem{Index: i + 1, URL: rawURL}

			opts := req.Options
			opts.URL = rawURL
			capReq, err := rt.buildCaptureRequest(opts)
			if err == nil {
				item.URL = capReq.URL
				var data []byte
				data, err = client.Capture(ctx, capReq)
				if err == nil {
					key := storage.JoinKey(prefix, utils.BatchFilename(i, capReq.URL, capReq.Extension()))
					item.Path, err = store.Put(ctx, key, data)
					item.Size = int64(len(data))
				}
			}

			if err != nil {
				item.Error = err.Error()
				utils.Verbose("batch item %d (%s) failed: %v", item.Index, rawURL, err)
				if !rt.JSON {
					bar.Println(fmt.Sprintf("  %s [%d/%d] %s: %s", ui.Error(ui.CrossMark), item.Index, len(urls), rawURL, err))
				}
			} else if !rt.JSON {
				bar.Println(fmt.Sprintf("  %s [%d/%d] %s -> %s", ui.Success(ui.CheckMark), item.Index, len(urls), item.URL, item.Path))
			}

			tally.record(item)
			bar.Increment()
			// per-item failures are counted, never propagated
			return nil
		})
	}
	_ = eg.Wait()
	bar.Finish()

	sort.Slice(tally.items, func(i, j int) bool { return tally.items[i].Index < tally.items[j].Index })

	result := BatchResult{
		Total:      len(urls),
		Succeeded:  tally.succeeded,
		Failed:     tally.failed,
		OutputDir:  outputDir,
		DurationMs: rt.now().Sub(start).Milliseconds(),
		Items:      tally.items,
	}

	rt.Println()
	rt.Printf("%s\n", ui.Title("Batch complete"))
	rt.Printf("  Succeeded: %s\n", ui.Success(fmt.Sprint(result.Succeeded)))
	rt.Printf("  Failed:    %s\n", ui.Error(fmt.Sprint(result.Failed)))
	rt.Printf("  Output:    %s\n", outputDir)

	if result.Failed > 0 {
		return NewPartialResponse(result, &types.PartialFailureError{Succeeded: result.Succeeded, Failed: result.Failed})
	}
	return NewSuccessResponse(result)
}
