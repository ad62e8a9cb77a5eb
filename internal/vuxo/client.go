package vuxo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	_ "embed"

	"github.com/handiism/muzbot/internal/model"
)

// MaxAudioSize is the hard ceiling on a downloadable audio payload.
// Payloads whose advertised Content-Length exceeds it are rejected
// before the body is read.
const MaxAudioSize = 50 * 1024 * 1024

//go:embed headers.json
var rawDefaultHeaders []byte

// defaultHeaders are the request headers sent with every catalog
// request, loaded from the embedded headers.json at startup.
// The resource is compiled in, so a parse failure is a build defect.
var defaultHeaders = func() map[string]string {
	headers := make(map[string]string)
	if err := json.Unmarshal(rawDefaultHeaders, &headers); err != nil {
		panic("vuxo: malformed embedded headers.json: " + err.Error())
	}
	return headers
}()

// Config holds the client's network settings.
//
// A Config is created once per client and read-only thereafter.
type Config struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Headers are the default request headers.
	Headers map[string]string

	// MaxAttempts is the total number of tries per operation,
	// including the first.
	MaxAttempts int

	// RetryWait is the backoff before the second attempt; it doubles
	// per attempt up to RetryMaxWait.
	RetryWait time.Duration

	// RetryMaxWait caps the backoff between attempts.
	RetryMaxWait time.Duration
}

// DefaultConfig returns the production configuration: 30 second
// timeout, embedded default headers, and 3 attempts with exponential
// backoff starting at 1s, capped at 5s.
func DefaultConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		Headers:      defaultHeaders,
		MaxAttempts:  3,
		RetryWait:    time.Second,
		RetryMaxWait: 5 * time.Second,
	}
}

// Client searches the music catalog and downloads audio payloads.
//
// A Client owns one logical network session. The intended usage is one
// short-lived client per incoming chat request:
//
//	client := vuxo.NewClient(nil)
//	err := client.Session(func() error {
//	    tracks, err := client.Search(ctx, "daft punk")
//	    ...
//	})
//
// Connect and Disconnect are idempotent; Session guarantees the session
// is released on every exit path. Operations on one Client must not be
// interleaved from multiple goroutines; concurrent requests get their
// own Client instances, which share nothing.
type Client struct {
	cfg *Config

	mu      sync.Mutex
	session *http.Client
}

// NewClient creates a Client with the given configuration.
// A nil cfg means DefaultConfig.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{cfg: cfg}
}

// Connect establishes the network session. Calling Connect on a
// connected client is a no-op.
func (c *Client) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return
	}
	c.session = &http.Client{Timeout: c.cfg.Timeout}
}

// Disconnect tears the session down and clears the handle. Calling
// Disconnect on a disconnected client is a no-op.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return
	}
	c.session.CloseIdleConnections()
	c.session = nil
}

// Session connects, runs fn, and always disconnects, including when fn
// returns an error or panics.
func (c *Client) Session(fn func() error) error {
	c.Connect()
	defer c.Disconnect()
	return fn()
}

// Search fetches the search page for the keyword and returns its
// tracks. It fails with a ServiceError if no session is active or if
// fetching and parsing still fail after retries.
func (c *Client) Search(ctx context.Context, keyword string) ([]model.Track, error) {
	slog.Info("searching music", "keyword", keyword)
	return c.fetchTracks(ctx, "search", BuildSearchURL(keyword))
}

// TopHits fetches the catalog's root page and returns its tracks.
// Same failure contract as Search.
func (c *Client) TopHits(ctx context.Context) ([]model.Track, error) {
	return c.fetchTracks(ctx, "top hits", "https://"+BaseDomain)
}

// AudioBytes downloads the track's audio payload.
//
// It fails with a ServiceError if no session is active, if the track
// carries no audio locator, if the server advertises a payload over
// MaxAudioSize (checked before the body is read, never retried), or if
// the fetch still fails after retries.
func (c *Client) AudioBytes(ctx context.Context, track model.Track) ([]byte, error) {
	session, err := c.activeSession()
	if err != nil {
		return nil, &ServiceError{Op: "download", Err: err}
	}
	if !track.Downloadable() {
		return nil, &ServiceError{Op: "download", Err: ErrNoAudioURL}
	}

	slog.Info("downloading audio", "track", track.Name)

	var body []byte
	err = c.withRetry(ctx, func() error {
		resp, err := c.get(ctx, session, track.AudioURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.ContentLength > MaxAudioSize {
			return fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, &ServiceError{Op: "download", Err: err}
	}

	return body, nil
}

// fetchTracks retrieves url and parses its playlist. Fetch and parse
// run inside the same retried attempt: a page whose layout does not
// match is retried exactly like a network failure.
func (c *Client) fetchTracks(ctx context.Context, op, pageURL string) ([]model.Track, error) {
	session, err := c.activeSession()
	if err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}

	var tracks []model.Track
	err = c.withRetry(ctx, func() error {
		resp, err := c.get(ctx, session, pageURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		page, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		tracks, err = ParseTracks(string(page))
		return err
	})
	if err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}

	slog.Info("found tracks", "count", len(tracks))
	return tracks, nil
}

// get issues one GET with the configured default headers and returns
// the response if its status is 2xx. The caller owns the body.
func (c *Client) get(ctx context.Context, session *http.Client, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := session.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &statusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}

// withRetry runs one attempt up to cfg.MaxAttempts times, sleeping
// RetryWait·2ⁿ (capped at RetryMaxWait) between attempts. Only
// retryable failures are attempted again.
func (c *Client) withRetry(ctx context.Context, attempt func() error) error {
	var lastErr error

	for try := 0; try < c.cfg.MaxAttempts; try++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = attempt()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}

		if try < c.cfg.MaxAttempts-1 {
			wait := c.backoff(try)
			slog.Warn("retrying", "attempt", try+1, "wait", wait, "error", lastErr)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return lastErr
}

// backoff returns the wait before the attempt following try (0-based).
func (c *Client) backoff(try int) time.Duration {
	wait := time.Duration(float64(c.cfg.RetryWait) * math.Pow(2, float64(try)))
	if wait > c.cfg.RetryMaxWait {
		wait = c.cfg.RetryMaxWait
	}
	return wait
}

// retryable reports whether the failure is worth another attempt:
// connection failures, timeouts, non-2xx statuses, and parse
// failures, which share the fetch attempt and are indistinguishable
// from a transiently broken page.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return true
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return false
}

// activeSession returns the session handle, or ErrNoSession when the
// client is disconnected.
func (c *Client) activeSession() (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, ErrNoSession
	}
	return c.session, nil
}
