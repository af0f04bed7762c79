package service

import (
	"context"
	"sync"

	"newsdesk/internal/model"
	"newsdesk/internal/newsapi"
)

// Fetcher is the slice of the news API the feed controller drives.
type Fetcher interface {
	TopHeadlines(ctx context.Context, category model.Category, query string, page, pageSize int) (*newsapi.Response, error)
}

// FeedState is the controller's position in its loading cycle.
type FeedState string

const (
	FeedIdle        FeedState = "idle"
	FeedLoading     FeedState = "loading"
	FeedReady       FeedState = "ready"
	FeedLoadingMore FeedState = "loadingMore"
	FeedExhausted   FeedState = "exhausted"
	FeedError       FeedState = "error"
)

// FeedPage is a point-in-time copy of the controller state.
type FeedPage struct {
	Category     model.Category  `json:"category"`
	Query        string          `json:"query,omitempty"`
	PageSize     int             `json:"pageSize"`
	Items        []model.Article `json:"items"`
	TotalResults int             `json:"totalResults"`
	State        FeedState       `json:"state"`
	Complete     bool            `json:"complete"`
	Error        string          `json:"error,omitempty"`
}

// FeedController accumulates pages of one category feed. It keeps a
// single outstanding fetch: load signals arriving while a fetch is in
// flight are dropped, and every fetch is tagged with the epoch it was
// issued under so a stale completion (category switched mid-flight)
// is discarded instead of being appended to the wrong feed.
type FeedController struct {
	mu       sync.Mutex
	fetcher  Fetcher
	pageSize int

	category     model.Category
	query        string
	items        []model.Article
	totalResults int
	state        FeedState
	lastErr      error
	epoch        uint64
}

func NewFeedController(fetcher Fetcher, pageSize int) *FeedController {
	if pageSize < 1 {
		pageSize = 20
	}
	return &FeedController{
		fetcher:  fetcher,
		pageSize: pageSize,
		category: model.CategoryGeneral,
		state:    FeedIdle,
	}
}

// SetCategory switches the feed, discarding accumulated items, and
// loads the first page. Switching always resets, even to the same
// category (that is the user-facing reload path).
func (c *FeedController) SetCategory(ctx context.Context, category model.Category) error {
	return c.reset(ctx, category, "")
}

// SetQuery narrows the current category by a search term and reloads.
func (c *FeedController) SetQuery(ctx context.Context, query string) error {
	c.mu.Lock()
	category := c.category
	c.mu.Unlock()
	return c.reset(ctx, category, query)
}

func (c *FeedController) reset(ctx context.Context, category model.Category, query string) error {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.category = category
	c.query = query
	c.items = nil
	c.totalResults = 0
	c.lastErr = nil
	c.state = FeedLoading
	c.mu.Unlock()

	return c.load(ctx, epoch, category, query, 1, false)
}

// LoadMore is the near-end-of-list signal. It only acts when the feed
// is Ready and more results remain; anything else is ignored.
func (c *FeedController) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.state != FeedReady || len(c.items) >= c.totalResults {
		c.mu.Unlock()
		return nil
	}
	epoch := c.epoch
	category := c.category
	query := c.query
	page := len(c.items)/c.pageSize + 1
	c.state = FeedLoadingMore
	c.mu.Unlock()

	return c.load(ctx, epoch, category, query, page, true)
}

// Retry re-issues the failed fetch. If nothing was accumulated it is an
// initial reload, otherwise it resumes from the next page.
func (c *FeedController) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != FeedError {
		c.mu.Unlock()
		return nil
	}
	epoch := c.epoch
	category := c.category
	query := c.query
	appendResults := len(c.items) > 0
	page := 1
	if appendResults {
		page = len(c.items)/c.pageSize + 1
		c.state = FeedLoadingMore
	} else {
		c.state = FeedLoading
	}
	c.mu.Unlock()

	return c.load(ctx, epoch, category, query, page, appendResults)
}

// Refresh reloads the current selection from page 1. Used by the
// auto-refresh scheduler.
func (c *FeedController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	category := c.category
	query := c.query
	c.mu.Unlock()
	return c.reset(ctx, category, query)
}

func (c *FeedController) load(ctx context.Context, epoch uint64, category model.Category, query string, page int, appendResults bool) error {
	resp, err := c.fetcher.TopHeadlines(ctx, category, query, page, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A stale completion: the feed moved on while this fetch was in
	// flight. Drop it, successful or not.
	if epoch != c.epoch {
		return nil
	}

	if err != nil {
		c.state = FeedError
		c.lastErr = err
		return err
	}

	if appendResults {
		c.items = append(c.items, resp.Articles...)
	} else {
		c.items = resp.Articles
	}
	c.totalResults = resp.TotalResults
	c.lastErr = nil

	if len(c.items) >= c.totalResults {
		c.state = FeedExhausted
	} else {
		c.state = FeedReady
	}
	return nil
}

// Snapshot copies the current state for presentation.
func (c *FeedController) Snapshot() FeedPage {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]model.Article, len(c.items))
	copy(items, c.items)

	page := FeedPage{
		Category:     c.category,
		Query:        c.query,
		PageSize:     c.pageSize,
		Items:        items,
		TotalResults: c.totalResults,
		State:        c.state,
		Complete:     c.state == FeedExhausted,
	}
	if c.lastErr != nil {
		page.Error = c.lastErr.Error()
	}
	return page
}

// TopArticle returns the newest headline, if any. The scheduler uses it
// for the breaking-news marker.
func (c *FeedController) TopArticle() (model.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return model.Article{}, false
	}
	return c.items[0], true
}
