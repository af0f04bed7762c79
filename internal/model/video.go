package model

// VideoArticle is one entry of the video feed.
type VideoArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
}
