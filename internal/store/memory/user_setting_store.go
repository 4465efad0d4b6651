package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

type settingKey struct {
	userID string
	typ    string
}

// UserSettingStore implements store.UserSettingStore using in-memory storage.
type UserSettingStore struct {
	mu sync.RWMutex

	settings map[settingKey]*models.UserSetting
}

// NewUserSettingStore creates a new in-memory user setting store.
func NewUserSettingStore() *UserSettingStore {
	return &UserSettingStore{
		settings: make(map[settingKey]*models.UserSetting),
	}
}

// Create creates a setting row.
func (s *UserSettingStore) Create(ctx context.Context, setting *models.UserSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := settingKey{setting.UserID, setting.Type}
	if _, exists := s.settings[key]; exists {
		return store.ErrSettingAlreadyExists
	}

	clone := *setting
	s.settings[key] = &clone

	return nil
}

// Get retrieves the setting of the given user and type.
func (s *UserSettingStore) Get(ctx context.Context, userID, settingType string) (*models.UserSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, exists := s.settings[settingKey{userID, settingType}]
	if !exists {
		return nil, store.ErrSettingNotFound
	}

	clone := *setting
	return &clone, nil
}

// ListByUser returns all settings of the given user, ordered by type.
func (s *UserSettingStore) ListByUser(ctx context.Context, userID string) ([]*models.UserSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.UserSetting
	for key, setting := range s.settings {
		if key.userID == userID {
			clone := *setting
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Type < matched[j].Type })

	return matched, nil
}

// Update updates an existing setting row.
func (s *UserSettingStore) Update(ctx context.Context, setting *models.UserSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := settingKey{setting.UserID, setting.Type}
	if _, exists := s.settings[key]; !exists {
		return store.ErrSettingNotFound
	}

	setting.UpdatedAt = time.Now()

	clone := *setting
	s.settings[key] = &clone

	return nil
}

// Delete deletes the setting of the given user and type.
func (s *UserSettingStore) Delete(ctx context.Context, userID, settingType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := settingKey{userID, settingType}
	if _, exists := s.settings[key]; !exists {
		return store.ErrSettingNotFound
	}

	delete(s.settings, key)

	return nil
}

// DeleteByUser deletes every setting of the given user, keeping the
// "default" row unless includeDefault is set.
func (s *UserSettingStore) DeleteByUser(ctx context.Context, userID string, includeDefault bool) ([]*models.UserSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*models.UserSetting
	for key, setting := range s.settings {
		if key.userID != userID {
			continue
		}
		if !includeDefault && key.typ == models.DefaultSettingType {
			continue
		}
		clone := *setting
		removed = append(removed, &clone)
		delete(s.settings, key)
	}

	if len(removed) == 0 {
		return nil, store.ErrSettingNotFound
	}

	sort.Slice(removed, func(i, j int) bool { return removed[i].Type < removed[j].Type })

	return removed, nil
}
