package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserProfileStore implements store.UserProfileStore using PostgreSQL.
type UserProfileStore struct {
	pool *pgxpool.Pool
}

// NewUserProfileStore creates a PostgreSQL-backed profile store sharing the
// given connection pool.
func NewUserProfileStore(pool *pgxpool.Pool) *UserProfileStore {
	return &UserProfileStore{pool: pool}
}

const profileColumns = `user_id, display_name, email, phone, image_url, created_at, updated_at`

func (s *UserProfileStore) Create(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		profile.UserID,
		profile.DisplayName,
		profile.Email,
		profile.Phone,
		profile.ImageURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

func (s *UserProfileStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	var profile models.UserProfile
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Email,
		&profile.Phone,
		&profile.ImageURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &profile, nil
}

func (s *UserProfileStore) Update(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE user_profiles SET
			display_name = $2,
			email = $3,
			phone = $4,
			image_url = $5,
			updated_at = $6
		WHERE user_id = $1
	`

	result, err := s.pool.Exec(ctx, query,
		profile.UserID,
		profile.DisplayName,
		profile.Email,
		profile.Phone,
		profile.ImageURL,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrProfileNotFound
	}
	return nil
}

func (s *UserProfileStore) Delete(ctx context.Context, userID string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrProfileNotFound
	}
	return nil
}
