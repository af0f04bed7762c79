// Package store provides key/value persistence for settings and
// session state. Call sites depend on the KV interface so the sqlite
// backing can be swapped for a remote store without touching them.
package store

import (
	"errors"

	"gorm.io/gorm"

	"newsdesk/internal/model"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// KV is a durable string key/value store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	// Keys returns every stored key with the given prefix.
	Keys(prefix string) ([]string, error)
}

// GormKV stores key/value pairs in the settings table.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (s *GormKV) Get(key string) (string, error) {
	var setting model.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *GormKV) Set(key, value string) error {
	return s.db.Where("key = ?", key).
		Assign(model.Setting{Value: value}).
		FirstOrCreate(&model.Setting{Key: key}).Error
}

func (s *GormKV) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&model.Setting{}).Error
}

func (s *GormKV) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.Model(&model.Setting{}).
		Where("key LIKE ?", prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	return keys, err
}
