// Copyright (c) 2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package weather implements a client for the wttr.in console weather
// service.  Requests are rate limited and retried on transient server
// errors with a cubic backoff.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public wttr.in endpoint.
const DefaultBaseURL = "https://wttr.in"

const (
	defNumAttempts = 3
	// maxBody caps the response size; wttr.in reports are a few KB.
	maxBody = 1 << 20
)

var (
	// maxAllowedWaitTime is the cap on a single backoff delay.
	maxAllowedWaitTime = 5 * time.Minute
	// waitFn returns the delay before the next attempt.  It is a variable
	// to reduce the test time.
	waitFn = cubicWait
)

var (
	// ErrRetryFailed is returned when the request did not complete within
	// the allowed number of attempts.
	ErrRetryFailed = errors.New("request was unable to complete without errors within the allowed number of retries")
	// ErrNoCity is returned when the city argument is empty.
	ErrNoCity = errors.New("city is required")
)

// StatusError is returned for non-recoverable HTTP status codes.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with %d %s", e.Code, http.StatusText(e.Code))
}

// Client is a wttr.in API client.
type Client struct {
	baseURL     string
	cl          *http.Client
	lim         *rate.Limiter
	lg          *slog.Logger
	maxAttempts int
}

// Option is a functional option for New.
type Option func(*Client)

// WithBaseURL overrides the service endpoint (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client to use.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) {
		if cl != nil {
			c.cl = cl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.lg = lg
		}
	}
}

// WithLimiter overrides the default rate limiter of 1 rps, burst 2.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.lim = l
		}
	}
}

// New creates a new weather client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		cl:          &http.Client{Timeout: 30 * time.Second},
		lim:         rate.NewLimiter(1, 2),
		lg:          slog.Default(),
		maxAttempts: defNumAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the plain text weather report for the city.
func (c *Client) Current(ctx context.Context, city string) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", ErrNoCity
	}
	uri := c.baseURL + "/" + url.PathEscape(city)

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if err := c.lim.Wait(ctx); err != nil {
			return "", err
		}
		body, err := c.get(ctx, uri)
		if err == nil {
			return body, nil
		}

		var se *StatusError
		if errors.As(err, &se) && isRecoverable(se.Code) {
			delay := waitFn(attempt)
			c.lg.DebugContext(ctx, "weather: transient error, retrying",
				"city", city, "status", se.Code, "delay", delay, "attempt", attempt+1)
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return "", fmt.Errorf("weather for %q: %w", city, err)
	}
	return "", ErrRetryFailed
}

func (c *Client) get(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", err
	}
	// curl gets the console report rather than the HTML page.
	req.Header.Set("User-Agent", "curl/8.0")

	resp, err := c.cl.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// isRecoverable returns true if the status code is worth a retry.
func isRecoverable(statusCode int) bool {
	return (statusCode >= http.StatusInternalServerError && statusCode <= 599 && statusCode != http.StatusNotImplemented) ||
		statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests
}

// cubicWait calculates the delay as (attempt+2)^3 seconds, capped at
// maxAllowedWaitTime.
func cubicWait(attempt int) time.Duration {
	x := attempt + 2
	delay := time.Duration(x*x*x) * time.Second
	if delay > maxAllowedWaitTime {
		return maxAllowedWaitTime
	}
	return delay
}
