// Package api is the HTTP client for the AllScreenshots service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.allscreenshots.com"

	// EnvBaseURL points the client at another deployment.
	EnvBaseURL = "ALLSCREENSHOTS_API_URL"

	defaultTimeout  = 120 * time.Second
	resultCacheSize = 32
)

// API is the set of remote operations the commands depend on.
type API interface {
	Capture(ctx context.Context, req types.CaptureRequest) ([]byte, error)
	SubmitAsync(ctx context.Context, req types.CaptureRequest) (*types.Job, error)
	GetJob(ctx context.Context, id string) (*types.Job, error)
	GetJobResult(ctx context.Context, id string) ([]byte, error)
	ListJobs(ctx context.Context) ([]types.Job, error)
	CancelJob(ctx context.Context, id string) (*types.Job, error)
	GetUsage(ctx context.Context) (*types.Usage, error)
	GetQuota(ctx context.Context) (*types.QuotaStatus, error)
	ScheduleAPI
}

type ScheduleAPI interface {
	ListSchedules(ctx context.Context) ([]types.Schedule, error)
	CreateSchedule(ctx context.Context, req types.CreateScheduleRequest) (*types.Schedule, error)
	GetSchedule(ctx context.Context, id string) (*types.Schedule, error)
	UpdateSchedule(ctx context.Context, id string, req types.UpdateScheduleRequest) (*types.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	PauseSchedule(ctx context.Context, id string) (*types.Schedule, error)
	ResumeSchedule(ctx context.Context, id string) (*types.Schedule, error)
	TriggerSchedule(ctx context.Context, id string) (*types.Schedule, error)
	GetScheduleHistory(ctx context.Context, id string, limit int) (*types.ScheduleHistory, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client

	// completed job results never change
	results *lru.Cache[string, []byte]
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	results, _ := lru.New[string, []byte](resultCacheSize)

	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		userAgent: "allscreenshots-cli/dev",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		results: results,
	}

	if env := os.Getenv(EnvBaseURL); env != "" {
		c.baseURL = strings.TrimRight(env, "/")
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestOptions struct {
	body    any
	accept  string
	headers map[string]string
}

func (c *Client) do(ctx context.Context, method, path string, ro requestOptions) ([]byte, error) {
	var body io.Reader
	if ro.body != nil {
		data, err := json.Marshal(ro.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if ro.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	accept := ro.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	for k, v := range ro.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	utils.Verbose("%s %s (request %s)", method, path, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &types.APIError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.APIError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	utils.Logger().WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
		"status":     resp.StatusCode,
		"duration":   time.Since(start).Round(time.Millisecond).String(),
		"size":       utils.FormatFileSize(int64(len(data))),
	}).Debug("api response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	return data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, requestOptions{body: body})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid JSON response from %s: %w", path, err)
	}
	return nil
}

// parseAPIError understands {"error":{"code","message"}},
// {"error":"...","message":"..."} and {"code","message"} bodies, falling
// back to the raw text.
func parseAPIError(status int, body []byte) *types.APIError {
	apiErr := &types.APIError{Status: status}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Code    string          `json:"code"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message

		if len(envelope.Error) > 0 {
			var nested struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			var flat string
			switch {
			case json.Unmarshal(envelope.Error, &nested) == nil:
				if nested.Code != "" {
					apiErr.Code = nested.Code
				}
				if nested.Message != "" {
					apiErr.Message = nested.Message
				}
			case json.Unmarshal(envelope.Error, &flat) == nil:
				if apiErr.Message == "" {
					apiErr.Message = flat
				} else if apiErr.Code == "" {
					apiErr.Code = flat
				}
			}
		}
		if apiErr.Message != "" || apiErr.Code != "" {
			return apiErr
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	apiErr.Message = text
	return apiErr
}

func jobPath(id string, suffix string) string {
	return "/v1/screenshots/jobs/" + url.PathEscape(id) + suffix
}

func schedulePath(id string, suffix string) string {
	return "/v1/schedules/" + url.PathEscape(id) + suffix
}

// decodeList accepts either a bare JSON array or an object holding the
// array under key.
func decodeList[T any](data []byte, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var items []T
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, err
	}
	raw, ok := obj[key]
	if !ok {
		return nil, errors.New("missing " + key + " in response")
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
