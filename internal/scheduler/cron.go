package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"newsdesk/config"
	"newsdesk/internal/model"
	"newsdesk/internal/service"
	"newsdesk/internal/store"
)

// Scheduler ticks on a cron spec and applies the user's auto-refresh
// and notification preferences: reload the feed once the configured
// interval has elapsed, and mark a new top headline when it changes.
type Scheduler struct {
	cron           *cron.Cron
	feed           *service.FeedController
	prefs          *service.PrefsService
	kv             store.KV
	config         config.CronConfig
	refreshEntryID cron.EntryID
	lastRefresh    time.Time
}

func NewScheduler(feed *service.FeedController, prefs *service.PrefsService, kv store.KV, cfg config.CronConfig) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		feed:   feed,
		prefs:  prefs,
		kv:     kv,
		config: cfg,
	}
}

func (s *Scheduler) Start() {
	s.refreshEntryID, _ = s.cron.AddFunc(s.config.RefreshSpec, s.Tick)

	s.cron.Start()
	log.Printf("[Cron] Scheduler started (spec: %s)", s.config.RefreshSpec)
}

// Tick runs one scheduler pass. Exported so tests can drive it without
// waiting on the cron clock.
func (s *Scheduler) Tick() {
	enabled, err := s.prefs.Bool(model.KeyAutoRefresh)
	if err != nil || !enabled {
		return
	}

	intervalMs, err := s.prefs.RefreshIntervalMs()
	if err != nil {
		return
	}

	if time.Since(s.lastRefresh) < time.Duration(intervalMs)*time.Millisecond {
		return
	}

	log.Println("[Cron] Auto-refreshing feed...")
	if err := s.feed.Refresh(context.Background()); err != nil {
		log.Printf("[Cron] Refresh failed: %v", err)
		return
	}
	s.lastRefresh = time.Now()

	s.notifyBreakingNews()
}

// notifyBreakingNews records the newest headline under the transient
// lastNotifiedArticle key so the same story is not announced twice.
func (s *Scheduler) notifyBreakingNews() {
	enabled, err := s.prefs.Bool(model.KeyNotifications)
	if err != nil || !enabled {
		return
	}

	top, ok := s.feed.TopArticle()
	if !ok {
		return
	}

	last, err := s.kv.Get(model.KeyLastNotified)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return
	}
	if top.URL == last {
		return
	}

	log.Printf("[Cron] Breaking news: %s", top.Title)
	if err := s.kv.Set(model.KeyLastNotified, top.URL); err != nil {
		log.Printf("[Cron] Failed to record notified article: %v", err)
	}
}

// NextRefreshTime returns the next scheduled tick.
func (s *Scheduler) NextRefreshTime() time.Time {
	entry := s.cron.Entry(s.refreshEntryID)
	return entry.Next
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
