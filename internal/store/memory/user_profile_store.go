package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserProfileStore implements store.UserProfileStore using in-memory storage.
type UserProfileStore struct {
	mu sync.RWMutex

	profiles map[string]*models.UserProfile // user id -> UserProfile
}

// NewUserProfileStore creates a new in-memory user profile store.
func NewUserProfileStore() *UserProfileStore {
	return &UserProfileStore{
		profiles: make(map[string]*models.UserProfile),
	}
}

// Create creates the profile for a user.
func (s *UserProfileStore) Create(ctx context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *profile
	s.profiles[profile.UserID] = &clone

	return nil
}

// Get retrieves the profile of the given user.
func (s *UserProfileStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, store.ErrProfileNotFound
	}

	clone := *profile
	return &clone, nil
}

// Update updates an existing profile.
func (s *UserProfileStore) Update(ctx context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[profile.UserID]; !exists {
		return store.ErrProfileNotFound
	}

	profile.UpdatedAt = time.Now()

	clone := *profile
	s.profiles[profile.UserID] = &clone

	return nil
}

// Delete deletes the profile of the given user.
func (s *UserProfileStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[userID]; !exists {
		return store.ErrProfileNotFound
	}

	delete(s.profiles, userID)

	return nil
}
