package service

import (
	"context"
	"errors"
	"time"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserSettingInput carries the writable fields of a pagination setting.
type UserSettingInput struct {
	UserID             string
	Type               string
	ListLimit          *int
	BookmarkExpiration *int
}

// UserSettingService manages per-user per-resource-type pagination
// settings. Ownership-scoped; the "default" typed row is protected from
// deletion by anyone but super because pagination falls back to it.
type UserSettingService struct {
	settings store.UserSettingStore
}

// NewUserSettingService wires a setting service.
func NewUserSettingService(settings store.UserSettingStore) *UserSettingService {
	return &UserSettingService{settings: settings}
}

// List returns every setting owned by userID.
func (s *UserSettingService) List(ctx context.Context, caller *auth.Context, userID string) ([]*models.UserSetting, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_get_not_allowed")
	}

	settings, err := s.settings.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence("usersetting_read_failed", err)
	}
	return settings, nil
}

// Get returns the setting keyed by userID and type.
func (s *UserSettingService) Get(ctx context.Context, caller *auth.Context, userID, typ string) (*models.UserSetting, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_get_not_allowed")
	}
	return s.get(ctx, userID, typ)
}

// GetOrDefault returns the setting keyed by userID and type, falling back
// to the "default" typed row when no type-specific row exists.
func (s *UserSettingService) GetOrDefault(ctx context.Context, caller *auth.Context, userID, typ string) (*models.UserSetting, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_get_not_allowed")
	}

	setting, err := s.settings.Get(ctx, userID, typ)
	if errors.Is(err, store.ErrSettingNotFound) {
		return s.get(ctx, userID, models.DefaultSettingType)
	}
	if err != nil {
		return nil, persistence("usersetting_read_failed", err)
	}
	return setting, nil
}

// Create creates a type-specific setting row.
func (s *UserSettingService) Create(ctx context.Context, caller *auth.Context, input *UserSettingInput) (*models.UserSetting, error) {
	if !auth.IsOwner(input.UserID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_create_not_allowed")
	}
	if input.UserID == "" {
		return nil, invalid("usersetting_id_invalid")
	}
	if input.Type == "" {
		return nil, invalid("usersetting_type_invalid")
	}
	if err := validateSettingRanges(input); err != nil {
		return nil, err
	}

	now := time.Now()
	setting := &models.UserSetting{
		UserID:             input.UserID,
		Type:               input.Type,
		ListLimit:          models.DefaultListLimit,
		BookmarkExpiration: models.DefaultBookmarkExpiration,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if input.ListLimit != nil {
		setting.ListLimit = *input.ListLimit
	}
	if input.BookmarkExpiration != nil {
		setting.BookmarkExpiration = *input.BookmarkExpiration
	}

	if err := s.settings.Create(ctx, setting); err != nil {
		if errors.Is(err, store.ErrSettingAlreadyExists) {
			return nil, alreadyExists("usersetting_already_exists")
		}
		return nil, persistence("usersetting_create_failed", err)
	}

	return setting, nil
}

// Update merges partial fields into the setting keyed by UserID and Type.
func (s *UserSettingService) Update(ctx context.Context, caller *auth.Context, input *UserSettingInput) (*models.UserSetting, error) {
	if !auth.IsOwner(input.UserID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_update_not_allowed")
	}
	if err := validateSettingRanges(input); err != nil {
		return nil, err
	}

	found, err := s.get(ctx, input.UserID, input.Type)
	if err != nil {
		return nil, err
	}

	if input.ListLimit != nil {
		found.ListLimit = *input.ListLimit
	}
	if input.BookmarkExpiration != nil {
		found.BookmarkExpiration = *input.BookmarkExpiration
	}
	found.UpdatedAt = time.Now()

	if err := s.settings.Update(ctx, found); err != nil {
		if errors.Is(err, store.ErrSettingNotFound) {
			return nil, notFound("usersetting_not_found")
		}
		return nil, persistence("usersetting_update_failed", err)
	}

	return found, nil
}

// DeleteAll removes every setting owned by userID except the protected
// "default" row, and returns the rows removed.
func (s *UserSettingService) DeleteAll(ctx context.Context, caller *auth.Context, userID string) ([]*models.UserSetting, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_delete_not_allowed")
	}

	removed, err := s.settings.DeleteByUser(ctx, userID, false)
	if errors.Is(err, store.ErrSettingNotFound) {
		return nil, notFound("usersetting_not_found")
	}
	if err != nil {
		return nil, persistence("usersetting_delete_failed", err)
	}
	return removed, nil
}

// Delete removes the setting keyed by userID and type. The "default" row
// may only be removed by super.
func (s *UserSettingService) Delete(ctx context.Context, caller *auth.Context, userID, typ string) (*models.UserSetting, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_delete_not_allowed")
	}
	if typ == models.DefaultSettingType && !auth.IsSuper(caller) {
		return nil, notAuthorized("usersetting_delete_not_allowed")
	}

	found, err := s.get(ctx, userID, typ)
	if err != nil {
		return nil, err
	}

	if err := s.settings.Delete(ctx, userID, typ); err != nil {
		if errors.Is(err, store.ErrSettingNotFound) {
			return nil, notFound("usersetting_not_found")
		}
		return nil, persistence("usersetting_delete_failed", err)
	}

	return found, nil
}

func (s *UserSettingService) get(ctx context.Context, userID, typ string) (*models.UserSetting, error) {
	setting, err := s.settings.Get(ctx, userID, typ)
	if errors.Is(err, store.ErrSettingNotFound) {
		return nil, notFound("usersetting_not_found")
	}
	if err != nil {
		return nil, persistence("usersetting_read_failed", err)
	}
	return setting, nil
}

func validateSettingRanges(input *UserSettingInput) error {
	if input.ListLimit != nil && *input.ListLimit < 0 {
		return invalid("usersetting_listlimit_invalid")
	}
	if input.BookmarkExpiration != nil && *input.BookmarkExpiration < 0 {
		return invalid("usersetting_bookmarkexpiration_invalid")
	}
	return nil
}
