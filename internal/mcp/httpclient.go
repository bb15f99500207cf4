package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/stats"
)

// HTTPClient implements DataSource by calling the IronLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the tracker runs in a long-lived server (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) GetStats(ctx context.Context) (stats.Report, error) {
	var report stats.Report
	err := c.get(ctx, "/api/v1/stats", nil, &report)
	return report, err
}

func (c *HTTPClient) GetDailyRollup(ctx context.Context, days int) ([]stats.DayBucket, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))

	var buckets []stats.DayBucket
	if err := c.get(ctx, "/api/v1/stats/daily", params, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (c *HTTPClient) GetTopExercises(ctx context.Context, limit int) ([]stats.ExerciseStat, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var top []stats.ExerciseStat
	if err := c.get(ctx, "/api/v1/stats/exercises", params, &top); err != nil {
		return nil, err
	}
	return top, nil
}

func (c *HTTPClient) ListLogs(ctx context.Context, start, end time.Time) ([]models.WorkoutLog, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))

	var logs []models.WorkoutLog
	if err := c.get(ctx, "/api/v1/logs", params, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *HTTPClient) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	var routines []models.Routine
	if err := c.get(ctx, "/api/v1/routines", nil, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}
