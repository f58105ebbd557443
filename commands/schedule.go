package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/robfig/cron/v3"
)

const (
	DefaultHistoryLimit = 10
	MaxRetentionDays    = 365

	cronPreviewRuns = 3
)

// cronParser accepts the five-field form the service stores plus the
// @daily style descriptors.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseCron validates a cron expression in the given timezone.
func ParseCron(expr, timezone string) (cron.Schedule, *time.Location, error) {
	loc := time.UTC
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, nil, types.InvalidOption("timezone", "unknown timezone %q", timezone)
		}
		loc = l
	}

	sched, err := cronParser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return nil, nil, types.InvalidOption("cron", "%v", err)
	}
	// Next gives up after five years and returns the zero time
	if sched.Next(time.Now().In(loc)).IsZero() {
		return nil, nil, types.InvalidOption("cron", "%q never fires", strings.TrimSpace(expr))
	}
	return sched, loc, nil
}

// NextRuns lists the next n activation times after from.
func NextRuns(sched cron.Schedule, from time.Time, n int) []time.Time {
	runs := make([]time.Time, 0, n)
	t := from
	for range n {
		t = sched.Next(t)
		if t.IsZero() {
			break
		}
		runs = append(runs, t)
	}
	return runs
}

func ScheduleListCommand(ctx context.Context, rt *Runtime) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Fetching schedules...")
	schedules, err := client.ListSchedules(ctx)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to list schedules: %w", err))
	}

	if len(schedules) == 0 {
		rt.Println(ui.Dim("No schedules found."))
		return NewSuccessResponse(map[string]interface{}{"schedules": schedules})
	}

	rt.Printf("%s\n\n", ui.Title("Schedules"))
	for _, s := range schedules {
		rt.Printf("  %s %s\n", ui.Bold(s.Name), ui.Dim("("+s.ID+")"))
		rt.Printf("    URL:      %s\n", s.URL)
		rt.Printf("    Schedule: %s (%s)\n", s.Schedule, timezoneOrUTC(s.Timezone))
		if s.Description != "" {
			rt.Printf("              %s\n", ui.Dim(s.Description))
		}
		rt.Printf("    Status:   %s\n", ui.StatusColor(s.Status))
		if s.NextExecutionAt != nil {
			rt.Printf("    Next:     %s\n", ui.Accent(s.NextExecutionAt.Format(time.RFC3339)))
		}
		rt.Printf("    Runs:     %d (%s ok, %s failed)\n\n", s.ExecutionCount,
			ui.Success(fmt.Sprint(s.SuccessCount)), ui.Error(fmt.Sprint(s.FailureCount)))
	}

	return NewSuccessResponse(map[string]interface{}{"schedules": schedules})
}

type ScheduleCreateRequest struct {
	Name          string
	URL           string
	Cron          string
	Timezone      string
	WebhookURL    string
	RetentionDays int
	Options       types.CaptureOptions
}

func ScheduleCreateCommand(ctx context.Context, rt *Runtime, req ScheduleCreateRequest) *CommandResponse {
	if strings.TrimSpace(req.Name) == "" {
		return NewErrorResponse(types.InvalidOption("name", "is required"))
	}
	sched, loc, err := ParseCron(req.Cron, req.Timezone)
	if err != nil {
		return NewErrorResponse(err)
	}
	if req.RetentionDays < 0 || req.RetentionDays > MaxRetentionDays {
		return NewErrorResponse(types.InvalidOption("retention-days", "must be between 1 and %d", MaxRetentionDays))
	}

	opts := req.Options
	opts.URL = req.URL
	capReq, err := rt.buildCaptureRequest(opts)
	if err != nil {
		return NewErrorResponse(err)
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	body := types.CreateScheduleRequest{
		Name:          req.Name,
		URL:           capReq.URL,
		Schedule:      strings.TrimSpace(req.Cron),
		Timezone:      req.Timezone,
		Options:       &capReq,
		WebhookURL:    req.WebhookURL,
		RetentionDays: req.RetentionDays,
	}

	spinner := rt.Spinner("Creating schedule...")
	created, err := client.CreateSchedule(ctx, body)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to create schedule: %w", err))
	}

	rt.Printf("%s %s\n", ui.Success(ui.CheckMark), ui.Bold("Schedule created"))
	rt.Printf("  ID:       %s\n", ui.Accent(created.ID))
	rt.Printf("  Name:     %s\n", created.Name)
	rt.Printf("  URL:      %s\n", created.URL)
	rt.Printf("  Schedule: %s (%s)\n", created.Schedule, timezoneOrUTC(created.Timezone))
	rt.printNextRuns(sched, loc)

	return NewSuccessResponse(created)
}

func ScheduleGetCommand(ctx context.Context, rt *Runtime, id string) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Fetching schedule...")
	s, err := client.GetSchedule(ctx, id)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to get schedule %s: %w", id, err))
	}

	rt.Printf("%s\n\n", ui.Title("Schedule Details"))
	rt.Printf("  ID:         %s\n", ui.Accent(s.ID))
	rt.Printf("  Name:       %s\n", ui.Bold(s.Name))
	rt.Printf("  URL:        %s\n", s.URL)
	rt.Printf("  Schedule:   %s\n", s.Schedule)
	if s.Description != "" {
		rt.Printf("              %s\n", ui.Dim(s.Description))
	}
	rt.Printf("  Timezone:   %s\n", timezoneOrUTC(s.Timezone))
	rt.Printf("  Status:     %s\n", ui.StatusColor(s.Status))
	if s.RetentionDays > 0 {
		rt.Printf("  Retention:  %d days\n", s.RetentionDays)
	}
	if s.WebhookURL != "" {
		rt.Printf("  Webhook:    %s\n", s.WebhookURL)
	}
	if s.LastExecutedAt != nil {
		rt.Printf("  Last run:   %s\n", s.LastExecutedAt.Format(time.RFC3339))
	}
	if s.NextExecutionAt != nil {
		rt.Printf("  Next run:   %s\n", ui.Accent(s.NextExecutionAt.Format(time.RFC3339)))
	}
	rt.Printf("  Executions: %d (%s ok, %s failed)\n", s.ExecutionCount,
		ui.Success(fmt.Sprint(s.SuccessCount)), ui.Error(fmt.Sprint(s.FailureCount)))
	if s.CreatedAt != nil {
		rt.Printf("  Created:    %s\n", ui.Dim(s.CreatedAt.Format(time.RFC3339)))
	}

	return NewSuccessResponse(s)
}

type ScheduleUpdateRequest struct {
	ID            string
	Name          *string
	URL           *string
	Cron          *string
	Timezone      *string
	WebhookURL    *string
	RetentionDays *int
}

func ScheduleUpdateCommand(ctx context.Context, rt *Runtime, req ScheduleUpdateRequest) *CommandResponse {
	body := types.UpdateScheduleRequest{
		Name:          req.Name,
		Timezone:      req.Timezone,
		WebhookURL:    req.WebhookURL,
		RetentionDays: req.RetentionDays,
	}
	if body.IsEmpty() && req.URL == nil && req.Cron == nil {
		return NewErrorResponse(types.InvalidOption("", "nothing to update, pass at least one of --name, --url, --cron, --timezone, --webhook-url, --retention-days"))
	}

	if req.URL != nil {
		u, err := utils.NormalizeURL(*req.URL)
		if err != nil {
			return NewErrorResponse(err)
		}
		body.URL = &u
	}
	if req.Cron != nil || req.Timezone != nil {
		tz := ""
		if req.Timezone != nil {
			tz = *req.Timezone
		}
		if req.Cron != nil {
			if _, _, err := ParseCron(*req.Cron, tz); err != nil {
				return NewErrorResponse(err)
			}
			expr := strings.TrimSpace(*req.Cron)
			body.Schedule = &expr
		} else if _, err := time.LoadLocation(tz); err != nil {
			return NewErrorResponse(types.InvalidOption("timezone", "unknown timezone %q", tz))
		}
	}
	if req.RetentionDays != nil && (*req.RetentionDays < 1 || *req.RetentionDays > MaxRetentionDays) {
		return NewErrorResponse(types.InvalidOption("retention-days", "must be between 1 and %d", MaxRetentionDays))
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Updating schedule...")
	s, err := client.UpdateSchedule(ctx, req.ID, body)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to update schedule %s: %w", req.ID, err))
	}

	rt.Printf("%s %s\n", ui.Success(ui.CheckMark), ui.Bold("Schedule updated"))
	rt.Printf("  ID:   %s\n", s.ID)
	rt.Printf("  Name: %s\n", s.Name)
	return NewSuccessResponse(s)
}

func ScheduleDeleteCommand(ctx context.Context, rt *Runtime, id string) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Deleting schedule...")
	err = client.DeleteSchedule(ctx, id)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to delete schedule %s: %w", id, err))
	}

	rt.Printf("%s Schedule %s deleted\n", ui.Success(ui.CheckMark), id)
	return NewSuccessResponse(map[string]string{"id": id, "status": "deleted"})
}

// ScheduleAction is a state change applied to a remote schedule.
type ScheduleAction string

const (
	SchedulePause   ScheduleAction = "pause"
	ScheduleResume  ScheduleAction = "resume"
	ScheduleTrigger ScheduleAction = "trigger"
)

func ScheduleActionCommand(ctx context.Context, rt *Runtime, action ScheduleAction, id string) *CommandResponse {
	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	var (
		s    *types.Schedule
		verb string
	)
	spinner := rt.Spinner(fmt.Sprintf("Applying %s to schedule...", action))
	switch action {
	case SchedulePause:
		s, err = client.PauseSchedule(ctx, id)
		verb = "paused"
	case ScheduleResume:
		s, err = client.ResumeSchedule(ctx, id)
		verb = "resumed"
	case ScheduleTrigger:
		s, err = client.TriggerSchedule(ctx, id)
		verb = "triggered"
	default:
		err = types.InvalidOption("", "unknown schedule action %q", action)
	}
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to %s schedule %s: %w", action, id, err))
	}

	rt.Printf("%s Schedule %s %s\n", ui.Success(ui.CheckMark), ui.Bold(s.Name), verb)
	if action == ScheduleResume && s.NextExecutionAt != nil {
		rt.Printf("  Next run: %s\n", ui.Accent(s.NextExecutionAt.Format(time.RFC3339)))
	}
	return NewSuccessResponse(s)
}

func ScheduleHistoryCommand(ctx context.Context, rt *Runtime, id string, limit int) *CommandResponse {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	spinner := rt.Spinner("Fetching history...")
	history, err := client.GetScheduleHistory(ctx, id, limit)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to get history for schedule %s: %w", id, err))
	}

	rt.Printf("%s %s\n\n", ui.Title("Execution History"), ui.Dim(fmt.Sprintf("(%d total)", history.TotalExecutions)))
	if len(history.Executions) == 0 {
		rt.Println(ui.Dim("No executions yet."))
		return NewSuccessResponse(history)
	}

	for _, e := range history.Executions {
		icon := ui.Dim(ui.Bullet)
		switch strings.ToUpper(e.Status) {
		case "COMPLETED":
			icon = ui.Success(ui.CheckMark)
		case "FAILED":
			icon = ui.Error(ui.CrossMark)
		}
		rt.Printf("%s %s - %s\n", icon, e.ExecutedAt.Format(time.RFC3339), ui.Bold(e.Status))
		if e.ResultURL != "" {
			rt.Printf("    Result: %s\n", ui.Dim(e.ResultURL))
		}
		if e.ErrorMessage != "" {
			rt.Printf("    Error:  %s\n", ui.Error(e.ErrorMessage))
		}
		if e.RenderTimeMs > 0 {
			rt.Printf("    Render: %s\n", ui.Dim(utils.FormatDuration(time.Duration(e.RenderTimeMs)*time.Millisecond)))
		}
	}

	return NewSuccessResponse(history)
}

func (rt *Runtime) printNextRuns(sched cron.Schedule, loc *time.Location) {
	runs := NextRuns(sched, rt.now().In(loc), cronPreviewRuns)
	if len(runs) == 0 {
		return
	}
	rt.Println("  Next runs:")
	for _, r := range runs {
		rt.Printf("    %s %s\n", ui.Dim(ui.Bullet), r.Format("Mon 2006-01-02 15:04 MST"))
	}
}

func timezoneOrUTC(tz string) string {
	if tz == "" {
		return "UTC"
	}
	return tz
}

type ScheduleRunRequest struct {
	Options   types.CaptureOptions
	Cron      string
	Timezone  string
	OutputDir string
	MaxRuns   int
	Display   OutputOptions
}

// ScheduleRunCommand is a local foreground scheduler: it captures at
// every cron activation until interrupted or MaxRuns is reached.
func ScheduleRunCommand(ctx context.Context, rt *Runtime, req ScheduleRunRequest) *CommandResponse {
	sched, loc, err := ParseCron(req.Cron, req.Timezone)
	if err != nil {
		return NewErrorResponse(err)
	}
	if req.MaxRuns < 0 {
		return NewErrorResponse(types.InvalidOption("max-runs", "must not be negative"))
	}

	capReq, err := rt.buildCaptureRequest(req.Options)
	if err != nil {
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

	rt.Printf("%s\n", ui.Title("Local Schedule"))
	rt.Printf("  URL:      %s\n", capReq.URL)
	rt.Printf("  Schedule: %s (%s)\n", strings.TrimSpace(req.Cron), loc)
	rt.Printf("  Output:   %s\n", outputDir)
	rt.printNextRuns(sched, loc)
	rt.Printf("\n%s\n\n", ui.Dim("Press Ctrl+C to stop"))

	summary := rt.runCaptureLoop(ctx, captureLoop{
		client:    client,
		req:       capReq,
		outputDir: outputDir,
		display:   req.Display,
		max:       req.MaxRuns,
		delay: func(now time.Time, _ int) (time.Duration, bool) {
			next := sched.Next(now.In(loc))
			if next.IsZero() {
				return 0, false
			}
			utils.Verbose("next run at %s", next.Format(time.RFC3339))
			return next.Sub(now), true
		},
	})

	rt.printLoopSummary(summary)
	return NewSuccessResponse(summary)
}
