package model

import "time"

// Setting is one persisted key/value pair. Keys share the newsapp_
// namespace so transient data can be swept without touching settings.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// KeyPrefix namespaces every persisted key.
const KeyPrefix = "newsapp_"

// Persisted key names.
const (
	KeyUser                = KeyPrefix + "user"
	KeyFavorites           = KeyPrefix + "favorites"
	KeyTheme               = KeyPrefix + "theme"
	KeyFontSize            = KeyPrefix + "fontSize"
	KeyReadingMode         = KeyPrefix + "readingMode"
	KeyViewMode            = KeyPrefix + "viewMode"
	KeyAutoRefresh         = KeyPrefix + "autoRefresh"
	KeyAutoRefreshInterval = KeyPrefix + "autoRefreshInterval"
	KeyDataSavingMode      = KeyPrefix + "dataSavingMode"
	KeyShowReadingTime     = KeyPrefix + "showReadingTime"
	KeyNotifications       = KeyPrefix + "notifications"
	KeyCategoryPrefs       = KeyPrefix + "preferences"
	KeyLastNotified        = KeyPrefix + "lastNotifiedArticle"
)
