package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/baharkarakas/moviefav-backend/internal/metrics"
)

// upstream bodies above this size are treated as a bad response
const maxResponseBytes = 8 << 20

var (
	ErrNotConfigured = errors.New("catalog api key not configured")
	ErrNotFound      = errors.New("catalog resource not found")
)

// UpstreamError is any failure talking to the catalog other than a 404.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog upstream status %d", e.Status)
	}
	return "catalog upstream: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// TMDb v3 pass-through; api key server'da kalır
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "popular", "/movie/popular", pageParams(page))
}

func (c *Client) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "top_rated", "/movie/top_rated", pageParams(page))
}

func (c *Client) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	q := pageParams(page)
	q.Set("query", query)
	return c.get(ctx, "search", "/search/movie", q)
}

// credits + videos tek istekte
func (c *Client) Details(ctx context.Context, id int64) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("append_to_response", "credits,videos")
	return c.get(ctx, "details", "/movie/"+strconv.FormatInt(id, 10), q)
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values) (json.RawMessage, error) {
	body, err := c.do(ctx, path, q)
	outcome := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
	return body, err
}

func (c *Client) do(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	if len(data) > maxResponseBytes {
		return nil, &UpstreamError{Err: errors.New("response too large")}
	}
	if !json.Valid(data) {
		return nil, &UpstreamError{Err: errors.New("response is not JSON")}
	}
	return json.RawMessage(data), nil
}
