// Package client is a Go consumer of the offers API. It mirrors the
// browser client's contract: array filters go out as repeated query
// parameters and the response is the {data, pagination} envelope.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"offers-api/internal/domain"
	"offers-api/internal/httpx"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   httpx.RetryConfig
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 30 * time.Second, // por-request
		},
		Retry: httpx.DefaultRetryConfig(),
	}
}

// GetOffers queries one page of offers.
func (c *Client) GetOffers(ctx context.Context, filters domain.QueryFilters) (domain.QueryResult, error) {
	endpoint := c.BaseURL + "/api/offers"
	if q := encodeFilters(filters); q != "" {
		endpoint += "?" + q
	}

	var out domain.QueryResult
	err := httpx.DoJSON(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, &out, c.Retry)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("client: get offers: %w", err)
	}
	return out, nil
}

// Health checks the API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	err := httpx.DoJSON(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	}, &out, c.Retry)
	if err != nil {
		return fmt.Errorf("client: health: %w", err)
	}
	if out.Status != "OK" {
		return fmt.Errorf("client: health status %q", out.Status)
	}
	return nil
}

func encodeFilters(f domain.QueryFilters) string {
	q := url.Values{}

	for _, v := range f.Level {
		q.Add("level", v)
	}
	for _, v := range f.Kind {
		q.Add("kind", v)
	}
	for _, v := range f.Fields {
		q.Add("fields", v)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
		if f.SortOrder != "" {
			q.Set("sortOrder", f.SortOrder)
		}
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	return q.Encode()
}
