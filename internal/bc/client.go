// Package bc talks to the Business Central OData API and falls back to
// local sample data when the API is unreachable or unconfigured.
package bc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Record is one entity row from either data source. The shape is
// source-defined; the gateway passes it through untouched.
type Record = map[string]any

// Query carries the supported OData query options.
type Query struct {
	Top    int
	Filter string
}

// TokenSource supplies bearer tokens for API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
)

// Client issues authenticated requests against the standard Business
// Central API of one company. Failures are returned as values; the caller
// decides whether to fall back.
type Client struct {
	base    string
	company string
	tokens  TokenSource
	client  *http.Client
	log     *logrus.Entry

	// backoffBase is the 5xx retry unit; shortened in tests.
	backoffBase time.Duration
}

// NewClient builds a client for base URL (up to /api/v2.0) and company.
func NewClient(base, company string, tokens TokenSource, log *logrus.Entry) *Client {
	return &Client{
		base:        base,
		company:     company,
		tokens:      tokens,
		client:      &http.Client{Timeout: requestTimeout},
		log:         log,
		backoffBase: time.Second,
	}
}

// List fetches a collection, unwrapping the OData value array.
func (c *Client) List(ctx context.Context, collection string, q Query) ([]Record, error) {
	body, err := c.get(ctx, collection, q)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Value []Record `json:"value"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", collection, err)
	}
	if envelope.Value == nil {
		return nil, fmt.Errorf("%s response missing value field", collection)
	}
	return envelope.Value, nil
}

// Get fetches a single resource, e.g. "customers(id)".
func (c *Client) Get(ctx context.Context, resource string) (Record, error) {
	body, err := c.get(ctx, resource, Query{})
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resource, err)
	}
	return rec, nil
}

func (c *Client) get(ctx context.Context, resource string, q Query) ([]byte, error) {
	target := fmt.Sprintf("%s/companies(%s)/%s", c.base, c.company, resource)
	if params := q.encode(); params != "" {
		target += "?" + params
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire token: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		body, status, err := c.do(req)
		if err != nil {
			return nil, err
		}

		switch {
		case status >= 200 && status < 300:
			return body, nil
		case status == http.StatusUnauthorized:
			// Stale token: drop it and retry with a fresh one.
			c.tokens.Invalidate()
			lastErr = fmt.Errorf("GET %s: status 401", resource)
			if c.log != nil {
				c.log.Warnf("token rejected for %s, retrying", resource)
			}
		case status >= 500:
			lastErr = fmt.Errorf("GET %s: status %d", resource, status)
			if c.log != nil {
				c.log.Warnf("server error %d for %s, retrying", status, resource)
			}
			if !sleep(ctx, c.backoffBase<<attempt) {
				return nil, ctx.Err()
			}
		default:
			return nil, fmt.Errorf("GET %s: status %d", resource, status)
		}
	}
	return nil, lastErr
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return buf, resp.StatusCode, nil
}

func (q Query) encode() string {
	values := url.Values{}
	if q.Top > 0 {
		values.Set("$top", strconv.Itoa(q.Top))
	}
	if q.Filter != "" {
		values.Set("$filter", q.Filter)
	}
	return values.Encode()
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
