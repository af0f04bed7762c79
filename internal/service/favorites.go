package service

import (
	"errors"

	"gorm.io/gorm"

	"newsdesk/internal/model"
)

// ErrNotAuthenticated rejects favorite mutations attempted without a
// session. The store itself stays usable; the gate lives at the API
// boundary.
var ErrNotAuthenticated = errors.New("sign-in required")

// FavoritesService keeps the user's bookmarked articles, unique by URL,
// in insertion order. Every mutation is durable before it returns.
type FavoritesService struct {
	db *gorm.DB
}

func NewFavoritesService(db *gorm.DB) *FavoritesService {
	return &FavoritesService{db: db}
}

// Add bookmarks an article. Adding a URL that is already bookmarked is
// a no-op; the existing entry and its position win.
func (s *FavoritesService) Add(article model.Article) error {
	entry := model.NewFavoriteEntry(article)
	return s.db.Where("url = ?", article.URL).FirstOrCreate(&entry).Error
}

// Remove deletes the bookmark with the given URL, if present.
func (s *FavoritesService) Remove(url string) error {
	return s.db.Where("url = ?", url).Delete(&model.FavoriteEntry{}).Error
}

// Contains reports whether a URL is bookmarked.
func (s *FavoritesService) Contains(url string) (bool, error) {
	var count int64
	err := s.db.Model(&model.FavoriteEntry{}).Where("url = ?", url).Count(&count).Error
	return count > 0, err
}

// List returns all bookmarked articles in the order they were added.
func (s *FavoritesService) List() ([]model.Article, error) {
	var entries []model.FavoriteEntry
	if err := s.db.Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	articles := make([]model.Article, 0, len(entries))
	for i := range entries {
		articles = append(articles, entries[i].Article())
	}
	return articles, nil
}

// Count returns the number of bookmarks.
func (s *FavoritesService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.FavoriteEntry{}).Count(&count).Error
	return count, err
}
