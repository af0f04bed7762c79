package service

import (
	"context"
	"log"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdesk/internal/model"
)

// VideosService serves the video feed: a built-in catalog, optionally
// extended by entries pulled from configured RSS feeds.
type VideosService struct {
	parser   *gofeed.Parser
	feedURLs []string
}

func NewVideosService(feedURLs []string) *VideosService {
	return &VideosService{
		parser:   gofeed.NewParser(),
		feedURLs: feedURLs,
	}
}

// List returns videos for a category. General means unfiltered.
func (s *VideosService) List(ctx context.Context, category model.Category) ([]model.VideoArticle, error) {
	videos := append([]model.VideoArticle(nil), builtinVideos...)

	for _, url := range s.feedURLs {
		fetched, err := s.fetchFeed(ctx, url)
		if err != nil {
			// A dead feed degrades to the catalog, it does not fail
			// the whole listing.
			log.Printf("[Videos] skipping feed %s: %v", url, err)
			continue
		}
		videos = append(videos, fetched...)
	}

	if category == model.CategoryGeneral {
		return videos, nil
	}

	filtered := make([]model.VideoArticle, 0, len(videos))
	for _, v := range videos {
		if v.Category == string(category) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

func (s *VideosService) fetchFeed(ctx context.Context, url string) ([]model.VideoArticle, error) {
	parsed, err := s.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	var videos []model.VideoArticle
	for _, item := range parsed.Items {
		video := model.VideoArticle{
			ID:          item.GUID,
			Title:       item.Title,
			Description: item.Description,
			VideoURL:    item.Link,
			Source:      parsed.Title,
			PublishedAt: s.parseTime(item).Format(time.RFC3339),
			Category:    string(model.CategoryGeneral),
		}
		if video.ID == "" {
			video.ID = item.Link
		}
		if item.Image != nil {
			video.Thumbnail = item.Image.URL
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *VideosService) parseTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return time.Now()
}

// builtinVideos mirrors the curated catalog served when no video feed
// is configured.
var builtinVideos = []model.VideoArticle{
	{
		ID:          "1",
		Title:       "Breaking: Major Economic Policy Changes Announced",
		Description: "Government announces sweeping changes to economic policy affecting millions of citizens nationwide",
		Thumbnail:   "/economic-policy-government.jpg",
		VideoURL:    "https://www.youtube.com/embed/jfKfPfyJRdk",
		Source:      "News Network",
		PublishedAt: time.Now().Format(time.RFC3339),
		Duration:    "5:32",
		Category:    "business",
	},
	{
		ID:          "2",
		Title:       "Tech Giants Unveil Revolutionary AI Technology",
		Description: "Leading technology companies showcase groundbreaking artificial intelligence advancements at annual conference",
		Thumbnail:   "/artificial-intelligence-technology.png",
		VideoURL:    "https://www.youtube.com/embed/aircAruvnKk",
		Source:      "Tech Today",
		PublishedAt: time.Now().Add(-1 * time.Hour).Format(time.RFC3339),
		Duration:    "8:15",
		Category:    "technology",
	},
	{
		ID:          "3",
		Title:       "Championship Finals: Thrilling Match Recap",
		Description: "Highlights from today's championship match with stunning plays and dramatic moments that kept fans on edge",
		Thumbnail:   "/sports-championship-celebration.png",
		VideoURL:    "https://www.youtube.com/embed/EngW7tLk6R8",
		Source:      "Sports Central",
		PublishedAt: time.Now().Add(-2 * time.Hour).Format(time.RFC3339),
		Duration:    "12:45",
		Category:    "sports",
	},
	{
		ID:          "4",
		Title:       "Medical Breakthrough: New Treatment Shows Promise",
		Description: "Researchers announce significant progress in treating chronic diseases with innovative medical approach",
		Thumbnail:   "/medical-research-lab.png",
		VideoURL:    "https://www.youtube.com/embed/RrAg6hNvS_4",
		Source:      "Health News",
		PublishedAt: time.Now().Add(-3 * time.Hour).Format(time.RFC3339),
		Duration:    "6:20",
		Category:    "health",
	},
	{
		ID:          "5",
		Title:       "Climate Summit: World Leaders Reach Historic Agreement",
		Description: "International climate conference concludes with unprecedented commitments to reduce carbon emissions",
		Thumbnail:   "/climate-summit-leaders.png",
		VideoURL:    "https://www.youtube.com/embed/ipVxxxqwBQw",
		Source:      "Global News",
		PublishedAt: time.Now().Add(-4 * time.Hour).Format(time.RFC3339),
		Duration:    "10:30",
		Category:    "science",
	},
	{
		ID:          "6",
		Title:       "Entertainment Awards: Red Carpet Highlights",
		Description: "Stars shine at annual entertainment awards ceremony with memorable performances and emotional speeches",
		Thumbnail:   "/red-carpet-awards-ceremony.jpg",
		VideoURL:    "https://www.youtube.com/embed/TcMBFSGVi1c",
		Source:      "Entertainment Tonight",
		PublishedAt: time.Now().Add(-5 * time.Hour).Format(time.RFC3339),
		Duration:    "15:45",
		Category:    "entertainment",
	},
	{
		ID:          "7",
		Title:       "Space Exploration: New Mission to Mars Announced",
		Description: "Space agency reveals ambitious plans for next-generation Mars exploration mission with advanced technology",
		Thumbnail:   "/mars-mission-space-exploration.jpg",
		VideoURL:    "https://www.youtube.com/embed/P6MOnehCOUw",
		Source:      "Science Daily",
		PublishedAt: time.Now().Add(-6 * time.Hour).Format(time.RFC3339),
		Duration:    "7:55",
		Category:    "science",
	},
	{
		ID:          "8",
		Title:       "Stock Market Update: Markets Reach New Heights",
		Description: "Financial markets continue upward trend as investors respond positively to economic indicators",
		Thumbnail:   "/stock-market-trading-floor.png",
		VideoURL:    "https://www.youtube.com/embed/p7HKvqRI_Bo",
		Source:      "Financial Times",
		PublishedAt: time.Now().Add(-7 * time.Hour).Format(time.RFC3339),
		Duration:    "4:30",
		Category:    "business",
	},
	{
		ID:          "9",
		Title:       "Olympic Qualifiers: Athletes Compete for Glory",
		Description: "Top athletes from around the world compete in intense qualifying rounds for upcoming Olympic games",
		Thumbnail:   "/olympic-athletes-competition.jpg",
		VideoURL:    "https://www.youtube.com/embed/WXiMmFV4W_8",
		Source:      "Sports Network",
		PublishedAt: time.Now().Add(-8 * time.Hour).Format(time.RFC3339),
		Duration:    "11:20",
		Category:    "sports",
	},
}
