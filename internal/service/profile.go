package service

import (
	"context"
	"errors"
	"time"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserProfileInput carries the writable fields of a profile. Nil pointer
// fields are left unchanged.
type UserProfileInput struct {
	UserID      string
	DisplayName *string
	Email       *string
	Phone       *string
	ImageURL    *string
}

// UserProfileService manages the profile sub-resource. Profiles are
// ownership-scoped: a caller may read and update their own, super may touch
// any, and only super may delete one.
type UserProfileService struct {
	profiles store.UserProfileStore
}

// NewUserProfileService wires a profile service.
func NewUserProfileService(profiles store.UserProfileStore) *UserProfileService {
	return &UserProfileService{profiles: profiles}
}

// Get returns the profile keyed by userID.
func (s *UserProfileService) Get(ctx context.Context, caller *auth.Context, userID string) (*models.UserProfile, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userprofile_get_not_allowed")
	}
	return s.get(ctx, userID)
}

// Update merges partial fields into the profile keyed by input.UserID.
func (s *UserProfileService) Update(ctx context.Context, caller *auth.Context, input *UserProfileInput) (*models.UserProfile, error) {
	if !auth.IsOwner(input.UserID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userprofile_update_not_allowed")
	}
	if err := validateProfileFields(input.DisplayName, input.Email, input.Phone, input.ImageURL); err != nil {
		return nil, err
	}

	found, err := s.get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		found.DisplayName = *input.DisplayName
	}
	if input.Email != nil {
		found.Email = *input.Email
	}
	if input.Phone != nil {
		found.Phone = *input.Phone
	}
	if input.ImageURL != nil {
		found.ImageURL = *input.ImageURL
	}
	found.UpdatedAt = time.Now()

	if err := s.profiles.Update(ctx, found); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, notFound("userprofile_not_found")
		}
		return nil, persistence("userprofile_update_failed", err)
	}

	return found, nil
}

// Delete removes the profile keyed by userID. Super only.
func (s *UserProfileService) Delete(ctx context.Context, caller *auth.Context, userID string) (*models.UserProfile, error) {
	if !auth.IsSuper(caller) {
		return nil, notAuthorized("userprofile_delete_not_allowed")
	}

	found, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, notFound("userprofile_not_found")
		}
		return nil, persistence("userprofile_delete_failed", err)
	}

	return found, nil
}

func (s *UserProfileService) get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return nil, notFound("userprofile_not_found")
	}
	if err != nil {
		return nil, persistence("userprofile_read_failed", err)
	}
	return profile, nil
}
