package store

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/models"
)

// ErrProfileNotFound is returned when a user has no profile record.
var ErrProfileNotFound = errors.New("user profile not found")

// UserProfileStore defines the interface for user profile storage.
// A profile shares its user's ID and lives and dies with the user.
type UserProfileStore interface {
	// Create creates the profile for a user.
	Create(ctx context.Context, profile *models.UserProfile) error

	// Get retrieves the profile of the given user.
	// Returns ErrProfileNotFound if no profile exists.
	Get(ctx context.Context, userID string) (*models.UserProfile, error)

	// Update replaces an existing profile record.
	// Returns ErrProfileNotFound if no profile exists.
	Update(ctx context.Context, profile *models.UserProfile) error

	// Delete deletes the profile of the given user.
	// Returns ErrProfileNotFound if no profile exists.
	Delete(ctx context.Context, userID string) error
}
