package service

import "time"

// SystemStatus summarizes stored state and the refresh schedule.
type SystemStatus struct {
	Favorites       int64     `json:"favorites"`
	StoredSettings  int       `json:"stored_settings"`
	Authenticated   bool      `json:"authenticated"`
	FeedState       FeedState `json:"feed_state"`
	FeedItems       int       `json:"feed_items"`
	NextRefreshTime time.Time `json:"next_refresh_time"`
}

type StatusService struct {
	favorites *FavoritesService
	prefs     *PrefsService
	sessions  *SessionService
	feed      *FeedController
}

func NewStatusService(favorites *FavoritesService, prefs *PrefsService, sessions *SessionService, feed *FeedController) *StatusService {
	return &StatusService{
		favorites: favorites,
		prefs:     prefs,
		sessions:  sessions,
		feed:      feed,
	}
}

// GetSystemStatus collects the current counters.
func (s *StatusService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{}

	favorites, err := s.favorites.Count()
	if err != nil {
		return nil, err
	}
	status.Favorites = favorites

	settings, err := s.prefs.SettingCount()
	if err != nil {
		return nil, err
	}
	status.StoredSettings = settings

	status.Authenticated = s.sessions.IsAuthenticated()

	page := s.feed.Snapshot()
	status.FeedState = page.State
	status.FeedItems = len(page.Items)

	return status, nil
}
