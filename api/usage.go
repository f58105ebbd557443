package api

import (
	"context"
	"net/http"

	"github.com/allscreenshots/allscreenshots-cli/types"
)

func (c *Client) GetUsage(ctx context.Context) (*types.Usage, error) {
	var usage types.Usage
	if err := c.doJSON(ctx, http.MethodGet, "/v1/usage", nil, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

func (c *Client) GetQuota(ctx context.Context) (*types.QuotaStatus, error) {
	var quota types.QuotaStatus
	if err := c.doJSON(ctx, http.MethodGet, "/v1/usage/quota", nil, &quota); err != nil {
		return nil, err
	}
	return &quota, nil
}
