// Package api is the HTTP client for the power-telemetry service. It speaks
// the three read endpoints the dashboard synchronizes against and normalizes
// their optionally-enveloped JSON payloads into core collections.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gridscope/gridscope/internal/core"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080"

const (
	latestPath = "/v1/api/power/latest"
	seriesPath = "/v1/api/power/time-series"
	dailyPath  = "/v1/api/power/daily-usage"
)

type Client struct {
	rc *resty.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{rc: resty.New().SetBaseURL(baseURL)}
}

func (c *Client) BaseURL() string {
	return c.rc.BaseURL
}

// Latest fetches the most recent reading per metric for a device.
func (c *Client) Latest(ctx context.Context, req core.LatestRequest) ([]core.LatestReading, error) {
	v, err := c.getJSON(ctx, latestPath, map[string]string{
		"device_id": req.DeviceID,
	})
	if err != nil {
		return nil, err
	}
	readings, ok := core.CollectionOf[core.LatestReading](v)
	if !ok {
		return nil, nil
	}
	return readings, nil
}

// Series fetches one metric's samples for a device over the request's
// window. Sample order is whatever the service returned.
func (c *Client) Series(ctx context.Context, req core.SeriesRequest) ([]core.SeriesPoint, error) {
	v, err := c.getJSON(ctx, seriesPath, map[string]string{
		"device_id": req.DeviceID,
		"metric":    string(req.Metric),
		"from":      req.From.Format(time.RFC3339),
		"to":        req.To.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	points, ok := core.CollectionOf[core.SeriesPoint](v)
	if !ok {
		return nil, nil
	}
	return points, nil
}

// DailyUsage fetches the daily-aggregated usage report for a device over
// the request's inclusive calendar-date window.
func (c *Client) DailyUsage(ctx context.Context, req core.DailyRequest) ([]core.DailyUsage, error) {
	v, err := c.getJSON(ctx, dailyPath, map[string]string{
		"device_id": req.DeviceID,
		"from":      req.From,
		"to":        req.To,
	})
	if err != nil {
		return nil, err
	}
	rows, ok := core.CollectionOf[core.DailyUsage](v)
	if !ok {
		return nil, nil
	}
	return rows, nil
}

// getJSON issues the request and decodes the body. A non-2xx status is an
// error carrying the status line and the response body text; an
// undecodable body on a 2xx response is a transport-level error.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string) (any, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp)
	}

	var v any
	if err := json.Unmarshal(resp.Body(), &v); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return v, nil
}

func statusError(resp *resty.Response) error {
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		return fmt.Errorf("HTTP %s", resp.Status())
	}
	return fmt.Errorf("HTTP %s: %s", resp.Status(), body)
}
