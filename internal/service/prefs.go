package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"newsdesk/internal/model"
	"newsdesk/internal/store"
)

// ValidationError reports a preference write outside the key's domain.
// The stored value is left untouched; values are never clamped.
type ValidationError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}

// Auto-refresh interval bounds in milliseconds.
const (
	MinRefreshIntervalMs = 60_000    // 1 minute
	MaxRefreshIntervalMs = 1_800_000 // 30 minutes
)

var prefDefaults = map[string]string{
	model.KeyTheme:               "system",
	model.KeyFontSize:            "medium",
	model.KeyReadingMode:         "comfortable",
	model.KeyViewMode:            "grid",
	model.KeyAutoRefresh:         "false",
	model.KeyAutoRefreshInterval: "300000",
	model.KeyDataSavingMode:      "false",
	model.KeyShowReadingTime:     "true",
	model.KeyNotifications:       "false",
	model.KeyCategoryPrefs:       `["general"]`,
}

var prefEnums = map[string][]string{
	model.KeyTheme:       {"light", "dark", "system"},
	model.KeyFontSize:    {"small", "medium", "large"},
	model.KeyReadingMode: {"compact", "comfortable", "spacious"},
	model.KeyViewMode:    {"grid", "list"},
}

var prefBools = map[string]bool{
	model.KeyAutoRefresh:     true,
	model.KeyDataSavingMode:  true,
	model.KeyShowReadingTime: true,
	model.KeyNotifications:   true,
}

// clearKeep lists the keys "clear cache" must preserve: identity and
// every user-chosen setting. Anything else under the namespace is
// derived data and gets swept.
var clearKeep = map[string]bool{
	model.KeyUser:                true,
	model.KeyFavorites:           true,
	model.KeyTheme:               true,
	model.KeyFontSize:            true,
	model.KeyReadingMode:         true,
	model.KeyViewMode:            true,
	model.KeyAutoRefresh:         true,
	model.KeyAutoRefreshInterval: true,
	model.KeyDataSavingMode:      true,
	model.KeyShowReadingTime:     true,
	model.KeyNotifications:       true,
	model.KeyCategoryPrefs:       true,
}

// PrefsService persists display settings, one key at a time, with
// validation at the store boundary.
type PrefsService struct {
	kv store.KV
}

func NewPrefsService(kv store.KV) *PrefsService {
	return &PrefsService{kv: kv}
}

// Get returns the stored value, or the key's default when unset.
func (s *PrefsService) Get(key string) (string, error) {
	def, ok := prefDefaults[key]
	if !ok {
		return "", &ValidationError{Key: key, Reason: "unknown preference"}
	}
	val, err := s.kv.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set validates the value against the key's domain and persists it
// immediately.
func (s *PrefsService) Set(key, value string) error {
	if err := s.validate(key, value); err != nil {
		return err
	}
	return s.kv.Set(key, value)
}

func (s *PrefsService) validate(key, value string) error {
	if allowed, ok := prefEnums[key]; ok {
		for _, v := range allowed {
			if v == value {
				return nil
			}
		}
		return &ValidationError{Key: key, Value: value, Reason: fmt.Sprintf("must be one of %v", allowed)}
	}

	if prefBools[key] {
		if value != "true" && value != "false" {
			return &ValidationError{Key: key, Value: value, Reason: "must be true or false"}
		}
		return nil
	}

	switch key {
	case model.KeyAutoRefreshInterval:
		ms, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Key: key, Value: value, Reason: "must be an integer of milliseconds"}
		}
		if ms < MinRefreshIntervalMs || ms > MaxRefreshIntervalMs {
			return &ValidationError{Key: key, Value: value,
				Reason: fmt.Sprintf("must be within [%d, %d] ms", MinRefreshIntervalMs, MaxRefreshIntervalMs)}
		}
		return nil
	case model.KeyCategoryPrefs:
		var cats []string
		if err := json.Unmarshal([]byte(value), &cats); err != nil {
			return &ValidationError{Key: key, Value: value, Reason: "must be a JSON array of categories"}
		}
		for _, c := range cats {
			if _, err := model.ParseCategory(c); err != nil {
				return &ValidationError{Key: key, Value: value, Reason: err.Error()}
			}
		}
		return nil
	}

	return &ValidationError{Key: key, Value: value, Reason: "unknown preference"}
}

// Bool reads a boolean preference.
func (s *PrefsService) Bool(key string) (bool, error) {
	val, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// RefreshIntervalMs reads the auto-refresh interval.
func (s *PrefsService) RefreshIntervalMs() (int, error) {
	val, err := s.Get(model.KeyAutoRefreshInterval)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// Categories reads the subscribed category set.
func (s *PrefsService) Categories() ([]model.Category, error) {
	val, err := s.Get(model.KeyCategoryPrefs)
	if err != nil {
		return nil, err
	}
	var raw []string
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		return nil, err
	}
	cats := make([]model.Category, 0, len(raw))
	for _, r := range raw {
		c, err := model.ParseCategory(r)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// All resolves every preference to its current value.
func (s *PrefsService) All() (map[string]string, error) {
	out := make(map[string]string, len(prefDefaults))
	for key := range prefDefaults {
		val, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

// ClearTransient removes every namespaced key outside the allow-list.
// Settings, the session and the favorites key survive. Returns how many
// keys were removed.
func (s *PrefsService) ClearTransient() (int, error) {
	keys, err := s.kv.Keys(model.KeyPrefix)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, key := range keys {
		if clearKeep[key] {
			continue
		}
		if err := s.kv.Delete(key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// SettingCount reports how many preference keys are explicitly set.
// Other rows under the namespace (session, markers) do not count.
func (s *PrefsService) SettingCount() (int, error) {
	keys, err := s.kv.Keys(model.KeyPrefix)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, key := range keys {
		if _, ok := prefDefaults[key]; ok {
			count++
		}
	}
	return count, nil
}
