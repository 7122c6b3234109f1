package booking

import (
	"context"
	"fmt"

	"meeting-manager/feature/booking/models"

	"gorm.io/gorm"
)

// SettingStore reads and upserts key/value settings. It implements
// notify.SettingsSource so the dispatcher can resolve the webhook URL and
// debug flag at send time.
type SettingStore struct {
	db *gorm.DB
}

// NewSettingStore creates a setting store.
func NewSettingStore(db *gorm.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Lookup returns the value for a key, reporting whether the key exists.
func (s *SettingStore) Lookup(ctx context.Context, key string) (string, bool) {
	var setting models.Setting
	if err := s.db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&setting).Error; err != nil {
		return "", false
	}
	return setting.Value, true
}

// Set upserts a setting by key.
func (s *SettingStore) Set(ctx context.Context, key, value string) error {
	var setting models.Setting
	err := s.db.WithContext(ctx).
		Where(&models.Setting{Key: key}).
		Assign(map[string]any{"value": value}).
		FirstOrCreate(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// All returns every setting as a key/value map.
func (s *SettingStore) All(ctx context.Context) (map[string]string, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out, nil
}
