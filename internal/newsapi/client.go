// Package newsapi wraps the newsapi.org v2 HTTP API.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"newsdesk/config"
	"newsdesk/internal/model"
)

// Response is the upstream envelope for both endpoints.
type Response struct {
	Status       string          `json:"status"`
	Code         string          `json:"code,omitempty"`
	Message      string          `json:"message,omitempty"`
	TotalResults int             `json:"totalResults"`
	Articles     []model.Article `json:"articles"`
}

type Client struct {
	baseURL     string
	apiKey      string
	country     string
	maxPageSize int
	client      *http.Client
	limiter     *rate.Limiter
}

func NewClient(cfg config.NewsAPIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxPageSize := cfg.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		country:     cfg.Country,
		maxPageSize: maxPageSize,
		client:      &http.Client{Timeout: timeout},
		limiter:     limiter,
	}
}

// TopHeadlines fetches one page of headlines for a category, optionally
// narrowed by a search query. Article order is upstream-defined.
func (c *Client) TopHeadlines(ctx context.Context, category model.Category, query string, page, pageSize int) (*Response, error) {
	params := url.Values{}
	params.Set("country", c.country)

	// general means no category filter upstream
	if category != "" && category != model.CategoryGeneral {
		params.Set("category", string(category))
	}

	if query != "" {
		params.Set("q", query)
	}

	return c.get(ctx, "/top-headlines", params, page, pageSize)
}

// Everything searches all indexed articles, newest first.
func (c *Client) Everything(ctx context.Context, query string, page, pageSize int) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")

	return c.get(ctx, "/everything", params, page, pageSize)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, page, pageSize int) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 || pageSize > c.maxPageSize {
		return nil, fmt.Errorf("pageSize must be within [1, %d], got %d", c.maxPageSize, pageSize)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Err: err}
		}
	}

	params.Set("apiKey", c.apiKey)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAPIKey, body.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Code: body.Code, Message: body.Message}
	}

	return &body, nil
}
