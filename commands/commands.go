package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/api"
	"github.com/allscreenshots/allscreenshots-cli/config"
	"github.com/allscreenshots/allscreenshots-cli/render"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`

	err error
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
		err:    err,
	}
}

// NewPartialResponse is an error response that still carries results,
// e.g. a batch where some captures failed.
func NewPartialResponse(data interface{}, err error) *CommandResponse {
	resp := NewErrorResponse(err)
	resp.Data = data
	return resp
}

// Err returns the typed error behind an error response, or nil.
func (r *CommandResponse) Err() error {
	if r.Status != "error" {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return fmt.Errorf("%s", r.Error)
}

// Runtime carries everything a command needs for one invocation.
type Runtime struct {
	Config     *config.Config
	ConfigPath string
	APIKeyFlag string

	NewClient func(apiKey string) api.API
	Renderer  render.Displayer

	// Out receives human readable results, Err spinners and progress.
	Out io.Writer
	Err io.Writer

	JSON        bool
	Interactive bool

	Now func() time.Time
	// Sleep waits between loop iterations; it returns early with the
	// context error when ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Client resolves the API key and builds a client. It fails with
// types.ErrMissingCredential when no key is configured.
func (rt *Runtime) Client() (api.API, error) {
	key, source, err := config.ResolveAPIKey(rt.APIKeyFlag, rt.Config)
	if err != nil {
		return nil, err
	}
	utils.Verbose("using API key %s from %s", config.MaskAPIKey(key), source)
	return rt.NewClient(key), nil
}

func (rt *Runtime) now() time.Time {
	if rt.Now != nil {
		return rt.Now()
	}
	return time.Now()
}

func (rt *Runtime) sleep(ctx context.Context, d time.Duration) error {
	if rt.Sleep != nil {
		return rt.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (rt *Runtime) Printf(format string, args ...any) {
	if rt.JSON {
		return
	}
	fmt.Fprintf(rt.Out, format, args...)
}

func (rt *Runtime) Println(args ...any) {
	if rt.JSON {
		return
	}
	fmt.Fprintln(rt.Out, args...)
}

// Spinner shows progress on stderr when attached to a terminal.
func (rt *Runtime) Spinner(msg string) ui.Spinner {
	return ui.NewSpinner(rt.Err, msg, rt.Interactive && !rt.JSON)
}

func (rt *Runtime) captureOptions(opts types.CaptureOptions) types.CaptureOptions {
	opts.DefaultDevice = rt.Config.Defaults.Device
	opts.DefaultFormat = rt.Config.Defaults.Format
	return opts
}

func (rt *Runtime) buildCaptureRequest(opts types.CaptureOptions) (types.CaptureRequest, error) {
	return types.NewCaptureRequest(rt.captureOptions(opts))
}

func printJSONTo(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		utils.Warn("failed to encode JSON: %v", err)
		return
	}
	fmt.Fprintln(w, string(data))
}
