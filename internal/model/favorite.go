package model

import "time"

// FavoriteEntry is a bookmarked article. At most one row per URL;
// display order is insertion order (ascending ID).
type FavoriteEntry struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	SourceID    string    `gorm:"size:100" json:"-"`
	SourceName  string    `gorm:"size:255" json:"-"`
	Author      string    `gorm:"size:255" json:"-"`
	Title       string    `gorm:"size:500;not null" json:"-"`
	Description string    `gorm:"type:text" json:"-"`
	URL         string    `gorm:"size:500;uniqueIndex;not null" json:"-"`
	URLToImage  string    `gorm:"size:500" json:"-"`
	PublishedAt string    `gorm:"size:40" json:"-"`
	Content     string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// Article rebuilds the stored article for API responses.
func (f *FavoriteEntry) Article() Article {
	return Article{
		Source:      Source{ID: f.SourceID, Name: f.SourceName},
		Author:      f.Author,
		Title:       f.Title,
		Description: f.Description,
		URL:         f.URL,
		URLToImage:  f.URLToImage,
		PublishedAt: f.PublishedAt,
		Content:     f.Content,
	}
}

// NewFavoriteEntry flattens an article into its stored form.
func NewFavoriteEntry(a Article) FavoriteEntry {
	return FavoriteEntry{
		SourceID:    a.Source.ID,
		SourceName:  a.Source.Name,
		Author:      a.Author,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  a.URLToImage,
		PublishedAt: a.PublishedAt,
		Content:     a.Content,
	}
}
