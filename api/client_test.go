package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL), WithUserAgent("allscreenshots-cli/test"))
}

func testRequest(t *testing.T) types.CaptureRequest {
	t.Helper()
	req, err := types.NewCaptureRequest(types.CaptureOptions{URL: "example.com", FullPage: true})
	require.NoError(t, err)
	return req
}

func TestCapture_SendsRequest(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/screenshots", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "allscreenshots-cli/test", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))

	data, err := client.Capture(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "https://example.com", got["url"])
	assert.Equal(t, true, got["fullPage"])
	assert.Equal(t, "Desktop HD", got["device"])
}

func TestCapture_APIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nested error object",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"code":"INVALID_API_KEY","message":"API key is invalid"}}`,
			wantCode:    "INVALID_API_KEY",
			wantMessage: "API key is invalid",
		},
		{
			name:        "flat error string",
			status:      http.StatusTooManyRequests,
			body:        `{"error":"Too Many Requests","message":"Rate limit exceeded"}`,
			wantCode:    "Too Many Requests",
			wantMessage: "Rate limit exceeded",
		},
		{
			name:        "code and message",
			status:      http.StatusBadRequest,
			body:        `{"code":"VALIDATION","message":"url is required"}`,
			wantCode:    "VALIDATION",
			wantMessage: "url is required",
		},
		{
			name:        "plain text",
			status:      http.StatusBadGateway,
			body:        "upstream exploded\n",
			wantMessage: "upstream exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.Capture(context.Background(), testRequest(t))
			var apiErr *types.APIError
			require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestCapture_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient("k", WithBaseURL(url))
	_, err := client.Capture(context.Background(), testRequest(t))

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Error(t, apiErr.Unwrap())
}

func TestCapture_ContextCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Capture(ctx, testRequest(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitAsync(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/screenshots/async", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"job_1","status":"QUEUED","statusUrl":"/v1/screenshots/jobs/job_1"}`))
	}))

	job, err := client.SubmitAsync(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "job_1", job.ID)
	assert.Equal(t, types.JobQueued, job.Status)
	assert.Equal(t, "https://example.com", job.URL)
}

func TestGetJob_EscapesID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/screenshots/jobs/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":"a/b","status":"PROCESSING"}`))
	}))

	job, err := client.GetJob(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, types.JobRunning, job.Status)
}

func TestGetJob_MissingID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"QUEUED"}`))
	}))

	_, err := client.GetJob(context.Background(), "x")
	assert.Error(t, err)
}

func TestGetJobResult_Cached(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/screenshots/jobs/job_9/result", r.URL.Path)
		_, _ = w.Write(pngBytes)
	}))

	for range 3 {
		data, err := client.GetJobResult(context.Background(), "job_9")
		require.NoError(t, err)
		assert.Equal(t, pngBytes, data)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestListJobs_AcceptsArrayAndObject(t *testing.T) {
	bodies := []string{
		`[{"id":"1","status":"COMPLETED"},{"id":"2","status":"FAILED"}]`,
		`{"jobs":[{"id":"1","status":"COMPLETED"},{"id":"2","status":"FAILED"}]}`,
	}

	for _, body := range bodies {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		jobs, err := client.ListJobs(context.Background())
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, types.JobDone, jobs[0].Status)
		assert.Equal(t, types.JobFailed, jobs[1].Status)
	}
}

func TestCancelJob(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/screenshots/jobs/j/cancel", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"j","status":"CANCELLED"}`))
	}))

	job, err := client.CancelJob(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, types.JobCancelled, job.Status)
}

func TestNewClient_EnvBaseURL(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://localhost:9999/")
	assert.Equal(t, "http://localhost:9999", NewClient("k").BaseURL())
	assert.Equal(t, "http://other", NewClient("k", WithBaseURL("http://other")).BaseURL())
}

func TestDo_LogsResponseFields(t *testing.T) {
	var buf strings.Builder
	utils.Logger().SetOutput(&buf)
	utils.SetVerbose(true)
	t.Cleanup(func() {
		utils.SetVerbose(false)
		utils.Logger().SetOutput(os.Stderr)
	})

	var requestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))

	_, err := client.Capture(context.Background(), testRequest(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "api response")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "request_id="+requestID)
}
