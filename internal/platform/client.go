package platform

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

	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/pkg/config"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

// Client talks to the learning platform's HTTP API. All calls retry
// transient failures with exponential backoff and honour Retry-After.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	pageSize   int
	logger     *zap.Logger
}

// NewClient constructs a platform client from configuration.
func NewClient(cfg config.PlatformConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 4
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		backoff:    backoff,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// HTTPError carries status and body of a non-2xx platform response.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("platform: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return code >= 500 && code <= 599
}

// getJSON performs a GET with retries and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries {
				if werr := c.wait(ctx, attempt, 0); werr != nil {
					return werr
				}
				continue
			}
			break
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			if attempt < c.maxRetries {
				if werr := c.wait(ctx, attempt, 0); werr != nil {
					return werr
				}
				continue
			}
			break
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode platform response %s: %w", path, err)
			}
			return nil
		}

		herr := &HTTPError{Method: http.MethodGet, URL: endpoint, StatusCode: resp.StatusCode, Body: body}
		if !retryableStatus(resp.StatusCode) || attempt == c.maxRetries {
			return herr
		}
		lastErr = herr
		c.logger.Warn("platform request failed, retrying",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.Int("attempt", attempt))
		if werr := c.wait(ctx, attempt, parseRetryAfter(resp)); werr != nil {
			return werr
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("platform request failed: %s", endpoint)
}

func (c *Client) wait(ctx context.Context, attempt int, retryAfter time.Duration) error {
	sleep := retryAfter
	if sleep <= 0 {
		sleep = c.backoff * time.Duration(1<<(attempt-1))
	}
	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func parseRetryAfter(resp *http.Response) time.Duration {
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// upstream wraps a transport-level failure into the systemic upstream error
// so callers can distinguish it from per-entry resolution failures.
func upstream(err error, what string) error {
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch "+what)
}
