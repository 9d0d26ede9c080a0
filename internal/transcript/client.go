package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
	"github.com/MimeLyc/transcript-downloader/pkg/log"
)

const (
	DefaultBaseURL    = "https://transcriptapi.com/api/v2/youtube/transcript"
	DefaultMaxRetries = 3
	DefaultTimeout    = 30 * time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config holds the configuration for the transcript client.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
	// BackoffUnit is the base of the exponential backoff; 2^attempt units.
	BackoffUnit time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be greater than 0")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	return nil
}

// Client fetches transcripts. It reuses one http.Client for every request
// and is meant to be used sequentially.
//
// config: Configuration for the transcript API
// httpClient: HTTP client shared across attempts
// sleep: wait used between attempts
type Client struct {
	config     Config
	httpClient *http.Client
	sleep      SleepFunc
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// overridden with the configured per-attempt timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSleep replaces the wait used between attempts.
func WithSleep(fn SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = fn
	}
}

// NewClient creates a new transcript client with the given configuration
//
// Example:
//
//	client, err := transcript.NewClient(transcript.Config{
//		APIKey:     os.Getenv("TRANSCRIPT_API_KEY"),
//		BaseURL:    transcript.DefaultBaseURL,
//		MaxRetries: transcript.DefaultMaxRetries,
//		Timeout:    transcript.DefaultTimeout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	resp, err := client.Fetch(ctx, "https://youtu.be/dQw4w9WgXcQ", transcript.DefaultOptions())
func NewClient(config Config, opts ...ClientOption) (*Client, error) {
	if config.BackoffUnit <= 0 {
		config.BackoffUnit = time.Second
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client := &Client{
		config:     config,
		httpClient: &http.Client{},
		sleep:      Sleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.httpClient.Timeout = config.Timeout

	return client, nil
}

// Fetch retrieves the transcript for ref. The reference is sent unmodified;
// the service resolves the video itself.
//
// At most MaxRetries requests are made. 429 responses and transport errors
// are retried after a wait; every other non-200 status fails immediately.
// The returned error is always a *failure.Error.
func (c *Client) Fetch(ctx context.Context, ref string, opts Options) (*Response, error) {
	endpoint, err := c.buildURL(ref, opts)
	if err != nil {
		return nil, failure.Wrap(err, failure.InvalidRequest, "Bad Request: cannot build request URL")
	}

	var lastErr error
	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		last := attempt == c.config.MaxRetries-1

		resp, err := c.do(ctx, endpoint)
		if err != nil {
			lastErr = err
			if last {
				continue
			}
			wait := c.backoff(attempt)
			log.Warn("Request failed: %v. Retrying in %s...", err, wait)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, failure.Wrap(err, failure.Transport, "request cancelled").WithContext("video_url", ref)
			}
			continue
		}

		switch resp.status {
		case http.StatusTooManyRequests:
			lastErr = nil
			if last {
				continue
			}
			wait := c.retryAfter(resp.header, attempt)
			log.Warn("Rate limit exceeded. Waiting %s...", wait)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, failure.Wrap(err, failure.Transport, "request cancelled").WithContext("video_url", ref)
			}

		case http.StatusOK:
			var out Response
			if err := json.Unmarshal(resp.body, &out); err != nil {
				return nil, failure.Wrap(err, failure.Decode, "cannot decode transcript response").
					WithContext("video_url", ref)
			}
			return &out, nil

		default:
			return nil, classify(resp.status, resp.body, ref)
		}
	}

	if lastErr != nil {
		return nil, failure.Wrap(lastErr,
			failure.Transport,
			fmt.Sprintf("Request failed after %d attempts", c.config.MaxRetries)).
			WithContext("video_url", ref)
	}
	return nil, failure.New(failure.RateLimited,
		fmt.Sprintf("Too Many Requests: rate limit still exceeded after %d attempts", c.config.MaxRetries)).
		WithContext("video_url", ref)
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) buildURL(ref string, opts Options) (string, error) {
	u, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", err
	}

	format := opts.Format
	if format == "" {
		format = FormatJSON
	}

	q := u.Query()
	q.Set("video_url", ref)
	q.Set("format", string(format))
	q.Set("include_timestamp", strconv.FormatBool(opts.IncludeTimestamp))
	q.Set("send_metadata", strconv.FormatBool(opts.SendMetadata))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// do performs a single attempt. A non-nil error is a transport failure.
func (c *Client) do(ctx context.Context, endpoint string) (*rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return nil, fmt.Errorf("request timed out: %w", err)
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &rawResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * c.config.BackoffUnit
}

// retryAfter honours a Retry-After header given in seconds or as an HTTP
// date, falling back to exponential backoff.
func (c *Client) retryAfter(h http.Header, attempt int) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return c.backoff(attempt)
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * c.config.BackoffUnit
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}
	return c.backoff(attempt)
}

// classify maps a non-retryable status to a failure.
func classify(status int, body []byte, ref string) *failure.Error {
	detail := errorDetail(body)

	var (
		kind failure.Kind
		msg  string
	)
	switch status {
	case http.StatusBadRequest:
		kind, msg = failure.InvalidRequest, "Bad Request: "+detail
	case http.StatusUnauthorized:
		kind, msg = failure.Unauthorized, "Unauthorized: invalid or missing API key. Check your TRANSCRIPT_API_KEY."
	case http.StatusPaymentRequired:
		kind, msg = failure.PaymentRequired, "Payment Required: "+detail
	case http.StatusNotFound:
		kind, msg = failure.NotFound, "Not Found: video not found or transcript unavailable for "+ref
	case http.StatusUnprocessableEntity:
		kind, msg = failure.ValidationError, "Validation Error: invalid YouTube URL or ID - "+ref
	case http.StatusInternalServerError:
		kind, msg = failure.ServerError, "Server Error: "+detail
	default:
		kind, msg = failure.UnknownStatus, fmt.Sprintf("Error %d: %s", status, detail)
	}

	return failure.New(kind, msg).
		WithContext("status", status).
		WithContext("detail", detail)
}

const unknownDetail = "Unknown error"

// errorDetail prefers the JSON "detail" field, then the raw body.
func errorDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 && string(eb.Detail) != "null" {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			if s != "" {
				return s
			}
		} else {
			return string(eb.Detail)
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return unknownDetail
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
