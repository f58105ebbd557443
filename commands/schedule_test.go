package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCron(t *testing.T) {
	tests := []struct {
		expr    string
		tz      string
		wantErr string
	}{
		{expr: "0 9 * * *"},
		{expr: "*/15 * * * 1-5", tz: "America/New_York"},
		{expr: "@daily"},
		{expr: "  30 6 1 * *  "},
		{expr: "0 9 * *", wantErr: "cron"},
		{expr: "61 * * * *", wantErr: "cron"},
		{expr: "every day", wantErr: "cron"},
		{expr: "0 0 30 2 *", wantErr: "cron"},
		{expr: "0 9 * * *", tz: "Mars/Olympus", wantErr: "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.expr+tt.tz, func(t *testing.T) {
			sched, loc, err := ParseCron(tt.expr, tt.tz)
			if tt.wantErr != "" {
				var optErr *types.InvalidOptionError
				require.ErrorAs(t, err, &optErr)
				assert.Equal(t, tt.wantErr, optErr.Option)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sched)
			assert.NotNil(t, loc)
		})
	}
}

func TestNextRuns(t *testing.T) {
	sched, _, err := ParseCron("0 9 * * *", "")
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	runs := NextRuns(sched, from, 3)
	require.Len(t, runs, 3)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), runs[0])
	assert.Equal(t, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), runs[2])
}

// scheduleServer records the schedule calls it receives.
type scheduleServer struct {
	mu     sync.Mutex
	calls  []string
	bodies []map[string]any
}

func (s *scheduleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, r.Method+" "+r.URL.Path)

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		var body map[string]any
		if json.NewDecoder(r.Body).Decode(&body) == nil {
			s.bodies = append(s.bodies, body)
		}
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/schedules":
		_, _ = w.Write([]byte(`{"schedules":[{"id":"s1","name":"home","url":"https://example.com","schedule":"0 9 * * *","status":"ACTIVE"}]}`))
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/v1/schedules/s1/history":
		_, _ = w.Write([]byte(`{"scheduleId":"s1","totalExecutions":1,"executions":[{"id":"e1","executedAt":"2026-03-01T09:00:00Z","status":"COMPLETED","renderTimeMs":1200}]}`))
	default:
		_, _ = w.Write([]byte(`{"id":"s1","name":"home","url":"https://example.com","schedule":"0 9 * * *","status":"PAUSED"}`))
	}
}

func newScheduleRuntime(t *testing.T) (*Runtime, *fakeService, *scheduleServer) {
	t.Helper()
	svc, server := newFakeService(t)
	sched := &scheduleServer{}
	svc.extra = sched
	rt, _ := newTestRuntime(t, server.URL)
	return rt, svc, sched
}

func TestScheduleCreateCommand(t *testing.T) {
	rt, _, server := newScheduleRuntime(t)

	resp := ScheduleCreateCommand(context.Background(), rt, ScheduleCreateRequest{
		Name:     "home",
		URL:      "example.com",
		Cron:     " 0 9 * * * ",
		Timezone: "Europe/Amsterdam",
		Options:  types.CaptureOptions{Device: "iPhone 14"},
	})
	require.NoError(t, resp.Err())

	require.Equal(t, []string{"POST /v1/schedules"}, server.calls)
	body := server.bodies[0]
	assert.Equal(t, "home", body["name"])
	assert.Equal(t, "https://example.com", body["url"])
	assert.Equal(t, "0 9 * * *", body["schedule"])
	assert.Equal(t, "Europe/Amsterdam", body["timezone"])
	assert.Equal(t, "iPhone 14", body["options"].(map[string]any)["device"])
}

func TestScheduleCreateCommand_RejectsLocally(t *testing.T) {
	tests := []struct {
		name string
		req  ScheduleCreateRequest
	}{
		{name: "bad cron", req: ScheduleCreateRequest{Name: "x", URL: "example.com", Cron: "0 9 * *"}},
		{name: "missing name", req: ScheduleCreateRequest{URL: "example.com", Cron: "0 9 * * *"}},
		{name: "retention", req: ScheduleCreateRequest{Name: "x", URL: "example.com", Cron: "0 9 * * *", RetentionDays: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, svc, _ := newScheduleRuntime(t)
			resp := ScheduleCreateCommand(context.Background(), rt, tt.req)
			var optErr *types.InvalidOptionError
			assert.ErrorAs(t, resp.Err(), &optErr)
			assert.Zero(t, svc.requests.Load())
		})
	}
}

func TestScheduleUpdateCommand(t *testing.T) {
	rt, _, server := newScheduleRuntime(t)
	cron := "*/30 * * * *"

	resp := ScheduleUpdateCommand(context.Background(), rt, ScheduleUpdateRequest{ID: "s1", Cron: &cron})
	require.NoError(t, resp.Err())
	assert.Equal(t, []string{"PUT /v1/schedules/s1"}, server.calls)
	assert.Equal(t, map[string]any{"schedule": cron}, server.bodies[0])

	resp = ScheduleUpdateCommand(context.Background(), rt, ScheduleUpdateRequest{ID: "s1"})
	var optErr *types.InvalidOptionError
	assert.ErrorAs(t, resp.Err(), &optErr)
}

func TestScheduleActions(t *testing.T) {
	rt, _, server := newScheduleRuntime(t)
	ctx := context.Background()

	require.NoError(t, ScheduleListCommand(ctx, rt).Err())
	require.NoError(t, ScheduleGetCommand(ctx, rt, "s1").Err())
	require.NoError(t, ScheduleActionCommand(ctx, rt, SchedulePause, "s1").Err())
	require.NoError(t, ScheduleActionCommand(ctx, rt, ScheduleResume, "s1").Err())
	require.NoError(t, ScheduleActionCommand(ctx, rt, ScheduleTrigger, "s1").Err())
	require.NoError(t, ScheduleDeleteCommand(ctx, rt, "s1").Err())

	resp := ScheduleHistoryCommand(ctx, rt, "s1", 0)
	require.NoError(t, resp.Err())
	history := resp.Data.(*types.ScheduleHistory)
	assert.Len(t, history.Executions, 1)

	assert.Equal(t, []string{
		"GET /v1/schedules",
		"GET /v1/schedules/s1",
		"POST /v1/schedules/s1/pause",
		"POST /v1/schedules/s1/resume",
		"POST /v1/schedules/s1/trigger",
		"DELETE /v1/schedules/s1",
		"GET /v1/schedules/s1/history",
	}, server.calls)
}

// fakeClock advances only when the loop sleeps.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

func TestScheduleRunCommand(t *testing.T) {
	svc, server := newFakeService(t)
	rt, _ := newTestRuntime(t, server.URL)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC)}
	rt.Now = clock.Now
	rt.Sleep = clock.Sleep
	outDir := t.TempDir()

	resp := ScheduleRunCommand(context.Background(), rt, ScheduleRunRequest{
		Options:   types.CaptureOptions{URL: "example.com"},
		Cron:      "*/5 * * * *",
		OutputDir: outDir,
		MaxRuns:   3,
		Display:   OutputOptions{NoDisplay: true},
	})
	require.NoError(t, resp.Err())

	summary := resp.Data.(LoopSummary)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, "max-captures", summary.StoppedBy)
	assert.Equal(t, []time.Duration{4 * time.Minute, 5 * time.Minute, 5 * time.Minute}, clock.sleeps)
	assert.Equal(t, int32(3), svc.requests.Load())

	require.Len(t, summary.Paths, 3)
	assert.Equal(t, filepath.Join(outDir, "example_com_20260301_120500.png"), summary.Paths[0])
	for _, p := range summary.Paths {
		assert.FileExists(t, p)
	}
}

func TestScheduleRunCommand_NeverFires(t *testing.T) {
	svc, server := newFakeService(t)
	rt, _ := newTestRuntime(t, server.URL)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rt.Now = clock.Now
	rt.Sleep = clock.Sleep

	resp := ScheduleRunCommand(context.Background(), rt, ScheduleRunRequest{
		Options:   types.CaptureOptions{URL: "example.com"},
		Cron:      "0 0 30 2 *",
		OutputDir: t.TempDir(),
		Display:   OutputOptions{NoDisplay: true},
	})

	var optErr *types.InvalidOptionError
	require.ErrorAs(t, resp.Err(), &optErr)
	assert.Equal(t, "cron", optErr.Option)
	assert.Contains(t, optErr.Reason, "never fires")
	assert.Zero(t, svc.requests.Load())
	assert.Empty(t, clock.sleeps)
}

func TestRunCaptureLoop_ScheduleEnds(t *testing.T) {
	svc, server := newFakeService(t)
	rt, _ := newTestRuntime(t, server.URL)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rt.Now = clock.Now
	rt.Sleep = clock.Sleep

	client, err := rt.Client()
	require.NoError(t, err)
	req, err := types.NewCaptureRequest(types.CaptureOptions{URL: "example.com"})
	require.NoError(t, err)

	// two activations left, then nothing
	summary := rt.runCaptureLoop(context.Background(), captureLoop{
		client:    client,
		req:       req,
		outputDir: t.TempDir(),
		display:   OutputOptions{NoDisplay: true},
		delay: func(_ time.Time, n int) (time.Duration, bool) {
			return time.Minute, n <= 2
		},
	})

	assert.Equal(t, 2, summary.Captures)
	assert.Equal(t, "schedule-ended", summary.StoppedBy)
	assert.Equal(t, []time.Duration{time.Minute, time.Minute}, clock.sleeps)
	assert.Equal(t, int32(2), svc.requests.Load())
}
