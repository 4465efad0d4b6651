package store

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/models"
)

// Sentinel errors for user setting store operations
var (
	ErrSettingNotFound      = errors.New("user setting not found")
	ErrSettingAlreadyExists = errors.New("user setting already exists")
)

// UserSettingStore defines the interface for per-user, per-resource-type
// settings. Rows are keyed by (userID, type).
type UserSettingStore interface {
	// Create creates a setting row.
	// Returns ErrSettingAlreadyExists if (userID, type) is taken.
	Create(ctx context.Context, setting *models.UserSetting) error

	// Get retrieves the setting of the given user and type.
	// Returns ErrSettingNotFound if no such row exists.
	Get(ctx context.Context, userID, settingType string) (*models.UserSetting, error)

	// ListByUser returns all settings of the given user, ordered by type.
	ListByUser(ctx context.Context, userID string) ([]*models.UserSetting, error)

	// Update replaces an existing setting row.
	// Returns ErrSettingNotFound if no such row exists.
	Update(ctx context.Context, setting *models.UserSetting) error

	// Delete deletes the setting of the given user and type.
	// Returns ErrSettingNotFound if no such row exists.
	Delete(ctx context.Context, userID, settingType string) error

	// DeleteByUser deletes every setting of the given user, the "default"
	// row included when includeDefault is true. Returns the removed rows.
	// Returns ErrSettingNotFound if the user has no matching rows.
	DeleteByUser(ctx context.Context, userID string, includeDefault bool) ([]*models.UserSetting, error)
}
