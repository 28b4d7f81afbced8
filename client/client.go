// Package client provides a Go client for the linkwish HTTP API with
// retry semantics suitable for interactive callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linkwish/linkwish"
)

// Retry defaults. Extraction is slow when the AI strategy runs, so the
// per-attempt timeout has to cover a render plus an inference call.
const (
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = 500 * time.Millisecond
	DefaultAttemptTimeout = 45 * time.Second
)

// Client calls the linkwish HTTP API. The zero value is not usable; use New.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	maxAttempts    int
	baseDelay      time.Duration
	attemptTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxAttempts sets the number of attempts for retryable operations.
// Defaults to DefaultMaxAttempts if not specified.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		c.maxAttempts = n
	}
}

// WithBaseDelay sets the backoff unit between attempts. The wait before
// attempt n+1 is baseDelay*n.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = d
	}
}

// WithAttemptTimeout sets the per-attempt request timeout.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.attemptTimeout = d
	}
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{},
		maxAttempts:    DefaultMaxAttempts,
		baseDelay:      DefaultBaseDelay,
		attemptTimeout: DefaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preview is the result of a FetchPreview call.
type Preview struct {
	Record          linkwish.ExtractionRecord
	SourceURL       string
	Method          string
	Confidence      float64
	AIUsed          bool
	FieldsExtracted int
}

// FetchPreview extracts metadata for rawURL via the API, retrying transient
// failures. Invalid URLs fail immediately without touching the network.
func (c *Client) FetchPreview(ctx context.Context, rawURL string) (*Preview, error) {
	sanitized := linkwish.Sanitize(rawURL)
	if _, err := linkwish.Canonicalize(sanitized); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.wait(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		preview, err := c.fetchPreviewOnce(ctx, sanitized)
		if err == nil {
			return preview, nil
		}
		if !linkwish.Retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, linkwish.Errorf(linkwish.EUNAVAILABLE,
		"extraction failed after %d attempts: %s", c.maxAttempts, linkwish.ErrorMessage(lastErr))
}

// AddEntry saves a URL to the wishlist via the API. A URL whose canonical
// form is already saved returns ECONFLICT.
func (c *Client) AddEntry(ctx context.Context, rawURL string) (*linkwish.WishlistEntry, error) {
	sanitized := linkwish.Sanitize(rawURL)
	if _, err := linkwish.Canonicalize(sanitized); err != nil {
		return nil, err
	}

	var entry linkwish.WishlistEntry
	if err := c.post(ctx, "/api/wishlist", map[string]string{"url": sanitized}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// fetchPreviewOnce performs a single extraction attempt under the
// per-attempt timeout.
func (c *Client) fetchPreviewOnce(ctx context.Context, url string) (*Preview, error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	var envelope struct {
		Data struct {
			linkwish.ExtractionRecord
			SourceURL string `json:"sourceUrl"`
		} `json:"data"`
		Metadata struct {
			ExtractionMethod string  `json:"extractionMethod"`
			Confidence       float64 `json:"confidence"`
			AIUsed           bool    `json:"aiUsed"`
			FieldsExtracted  int     `json:"fieldsExtracted"`
		} `json:"metadata"`
	}

	if err := c.post(ctx, "/api/extract", map[string]string{"url": url}, &envelope); err != nil {
		return nil, err
	}

	return &Preview{
		Record:          envelope.Data.ExtractionRecord,
		SourceURL:       envelope.Data.SourceURL,
		Method:          envelope.Metadata.ExtractionMethod,
		Confidence:      envelope.Metadata.Confidence,
		AIUsed:          envelope.Metadata.AIUsed,
		FieldsExtracted: envelope.Metadata.FieldsExtracted,
	}, nil
}

// post sends a JSON request and decodes a JSON response into out.
// Non-2xx responses are mapped onto application error codes.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return linkwish.Errorf(linkwish.ETIMEOUT, "request to %s timed out", path)
		}
		return linkwish.Errorf(linkwish.EUNAVAILABLE, "request to %s failed: %s", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return linkwish.Errorf(linkwish.EINTERNAL, "decoding %s response: %s", path, err)
	}
	return nil
}

// apiError converts an API error response into an application error.
func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	var code string
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = linkwish.EINVALID
	case http.StatusNotFound:
		code = linkwish.ENOTFOUND
	case http.StatusConflict:
		code = linkwish.ECONFLICT
	case http.StatusRequestTimeout:
		code = linkwish.ETIMEOUT
	case http.StatusUnprocessableEntity:
		code = linkwish.EUNPROCESSABLE
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusBadGateway:
		code = linkwish.EUNAVAILABLE
	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			code = linkwish.EUNAVAILABLE
		} else {
			code = linkwish.EINTERNAL
		}
	}
	return linkwish.Errorf(code, "%s", body.Message)
}

// wait sleeps for baseDelay*n, returning early if ctx is canceled.
func (c *Client) wait(ctx context.Context, n int) error {
	timer := time.NewTimer(c.baseDelay * time.Duration(n))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
