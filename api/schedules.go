package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/allscreenshots/allscreenshots-cli/types"
)

func (c *Client) ListSchedules(ctx context.Context) ([]types.Schedule, error) {
	data, err := c.do(ctx, http.MethodGet, "/v1/schedules", requestOptions{})
	if err != nil {
		return nil, err
	}
	schedules, err := decodeList[types.Schedule](data, "schedules")
	if err != nil {
		return nil, fmt.Errorf("invalid schedule list response: %w", err)
	}
	return schedules, nil
}

func (c *Client) CreateSchedule(ctx context.Context, req types.CreateScheduleRequest) (*types.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, "/v1/schedules", req)
}

func (c *Client) GetSchedule(ctx context.Context, id string) (*types.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodGet, schedulePath(id, ""), nil)
}

func (c *Client) UpdateSchedule(ctx context.Context, id string, req types.UpdateScheduleRequest) (*types.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPut, schedulePath(id, ""), req)
}

func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, schedulePath(id, ""), requestOptions{})
	return err
}

func (c *Client) PauseSchedule(ctx context.Context, id string) (*types.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, schedulePath(id, "/pause"), nil)
}

func (c *Client) ResumeSchedule(ctx context.Context, id string) (*types.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, schedulePath(id, "/resume"), nil)
}

func (c *Client) TriggerSchedule(ctx context.Context, id string) (*types.Schedule, error) {
	return c.scheduleCall(ctx, http.MethodPost, schedulePath(id, "/trigger"), nil)
}

func (c *Client) GetScheduleHistory(ctx context.Context, id string, limit int) (*types.ScheduleHistory, error) {
	path := schedulePath(id, "/history")
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var history types.ScheduleHistory
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &history); err != nil {
		return nil, err
	}
	if history.ScheduleID == "" {
		history.ScheduleID = id
	}
	return &history, nil
}

func (c *Client) scheduleCall(ctx context.Context, method, path string, body any) (*types.Schedule, error) {
	var schedule types.Schedule
	if err := c.doJSON(ctx, method, path, body, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}
