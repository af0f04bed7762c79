package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/model"
	"newsdesk/internal/newsapi"
)

type fetchCall struct {
	Category model.Category
	Query    string
	Page     int
	PageSize int
}

// stubFetcher serves a fixed universe of articles per category and
// records every call. An optional gate blocks chosen categories so
// tests can hold a fetch in flight.
type stubFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	total   map[model.Category]int
	failOn  map[int]error // page -> error
	blockOn map[model.Category]chan struct{}
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		total:   make(map[model.Category]int),
		failOn:  make(map[int]error),
		blockOn: make(map[model.Category]chan struct{}),
	}
}

func (f *stubFetcher) TopHeadlines(ctx context.Context, category model.Category, query string, page, pageSize int) (*newsapi.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{category, query, page, pageSize})
	gate := f.blockOn[category]
	failErr := f.failOn[page]
	total := f.total[category]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if failErr != nil {
		return nil, failErr
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	var articles []model.Article
	for i := start; i < end; i++ {
		articles = append(articles, model.Article{
			Title: fmt.Sprintf("%s story %d", category, i),
			URL:   fmt.Sprintf("https://example.com/%s/%d", category, i),
		})
	}
	return &newsapi.Response{Status: "ok", TotalResults: total, Articles: articles}, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *stubFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func waitForCalls(t *testing.T, f *stubFetcher, n int) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if f.callCount() >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d fetch calls", n)
}

func TestFeedControllerPagesUntilExhausted(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryBusiness] = 25

	c := NewFeedController(fetcher, 10)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryBusiness))

	page := c.Snapshot()
	assert.Equal(t, FeedReady, page.State)
	assert.Len(t, page.Items, 10)
	assert.False(t, page.Complete)

	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, 2, fetcher.lastCall().Page)
	assert.Len(t, c.Snapshot().Items, 20)

	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, 3, fetcher.lastCall().Page)

	page = c.Snapshot()
	assert.Equal(t, FeedExhausted, page.State)
	assert.Len(t, page.Items, 25)
	assert.True(t, page.Complete)

	// A further scroll signal must not fetch.
	before := fetcher.callCount()
	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, before, fetcher.callCount())
}

func TestFeedControllerAppendsPreservingOrder(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryScience] = 5

	c := NewFeedController(fetcher, 2)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryScience))
	require.NoError(t, c.LoadMore(context.Background()))

	page := c.Snapshot()
	require.Len(t, page.Items, 4)
	for i, item := range page.Items {
		assert.Equal(t, fmt.Sprintf("https://example.com/science/%d", i), item.URL)
	}
}

func TestFeedControllerInitialPartialPage(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryTechnology] = 5

	c := NewFeedController(fetcher, 2)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryTechnology))

	page := c.Snapshot()
	assert.Equal(t, FeedReady, page.State)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 5, page.TotalResults)
	assert.False(t, page.Complete)

	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, 2, fetcher.lastCall().Page)
}

func TestFeedControllerDiscardsStaleCompletion(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryBusiness] = 10
	fetcher.total[model.CategoryHealth] = 10

	gate := make(chan struct{})
	fetcher.blockOn[model.CategoryBusiness] = gate

	c := NewFeedController(fetcher, 10)

	done := make(chan error, 1)
	go func() {
		done <- c.SetCategory(context.Background(), model.CategoryBusiness)
	}()

	// Wait for the business fetch to be issued, then switch away
	// while it is still in flight.
	waitForCalls(t, fetcher, 1)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryHealth))

	// Let the stale business fetch complete; it must be dropped.
	close(gate)
	require.NoError(t, <-done)

	page := c.Snapshot()
	assert.Equal(t, model.CategoryHealth, page.Category)
	require.Len(t, page.Items, 10)
	for _, item := range page.Items {
		assert.Contains(t, item.URL, "/health/")
	}
}

func TestFeedControllerIgnoresSignalsWhileLoading(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategorySports] = 50

	gate := make(chan struct{})
	fetcher.blockOn[model.CategorySports] = gate

	c := NewFeedController(fetcher, 10)

	done := make(chan error, 1)
	go func() {
		done <- c.SetCategory(context.Background(), model.CategorySports)
	}()
	waitForCalls(t, fetcher, 1)

	// Scroll signals during the in-flight load are dropped, not queued.
	require.NoError(t, c.LoadMore(context.Background()))
	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, 1, fetcher.callCount())

	close(gate)
	require.NoError(t, <-done)
	assert.Len(t, c.Snapshot().Items, 10)
}

func TestFeedControllerErrorKeepsItems(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryBusiness] = 30
	upstream := errors.New("boom")
	fetcher.failOn[2] = upstream

	c := NewFeedController(fetcher, 10)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryBusiness))

	err := c.LoadMore(context.Background())
	require.Error(t, err)

	page := c.Snapshot()
	assert.Equal(t, FeedError, page.State)
	assert.Len(t, page.Items, 10, "accumulated items survive a failed fetch")
	assert.Equal(t, "boom", page.Error)

	// While in Error, scroll signals do nothing; only Retry proceeds.
	before := fetcher.callCount()
	require.NoError(t, c.LoadMore(context.Background()))
	assert.Equal(t, before, fetcher.callCount())

	fetcher.mu.Lock()
	delete(fetcher.failOn, 2)
	fetcher.mu.Unlock()

	require.NoError(t, c.Retry(context.Background()))
	page = c.Snapshot()
	assert.Equal(t, FeedReady, page.State)
	assert.Len(t, page.Items, 20)
}

func TestFeedControllerRetryAfterInitialFailure(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryGeneral] = 5
	fetcher.failOn[1] = errors.New("offline")

	c := NewFeedController(fetcher, 10)
	require.Error(t, c.SetCategory(context.Background(), model.CategoryGeneral))
	assert.Equal(t, FeedError, c.Snapshot().State)
	assert.Empty(t, c.Snapshot().Items)

	fetcher.mu.Lock()
	delete(fetcher.failOn, 1)
	fetcher.mu.Unlock()

	require.NoError(t, c.Retry(context.Background()))
	page := c.Snapshot()
	assert.Equal(t, FeedExhausted, page.State)
	assert.Len(t, page.Items, 5)
}

func TestFeedControllerEmptyFeedIsExhausted(t *testing.T) {
	fetcher := newStubFetcher()

	c := NewFeedController(fetcher, 10)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryHealth))

	page := c.Snapshot()
	assert.Equal(t, FeedExhausted, page.State)
	assert.Empty(t, page.Items)
	assert.True(t, page.Complete)
}

func TestFeedControllerQueryReload(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.total[model.CategoryTechnology] = 8

	c := NewFeedController(fetcher, 10)
	require.NoError(t, c.SetCategory(context.Background(), model.CategoryTechnology))
	require.NoError(t, c.SetQuery(context.Background(), "chips"))

	call := fetcher.lastCall()
	assert.Equal(t, model.CategoryTechnology, call.Category)
	assert.Equal(t, "chips", call.Query)
	assert.Equal(t, 1, call.Page, "query change restarts from page 1")
}
