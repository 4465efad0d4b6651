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

// UserSettingStore implements store.UserSettingStore using PostgreSQL.
type UserSettingStore struct {
	pool *pgxpool.Pool
}

// NewUserSettingStore creates a PostgreSQL-backed setting store sharing the
// given connection pool.
func NewUserSettingStore(pool *pgxpool.Pool) *UserSettingStore {
	return &UserSettingStore{pool: pool}
}

const settingColumns = `user_id, type, list_limit, bookmark_expiration, created_at, updated_at`

func (s *UserSettingStore) Create(ctx context.Context, setting *models.UserSetting) error {
	query := `
		INSERT INTO user_settings (` + settingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		setting.UserID,
		setting.Type,
		setting.ListLimit,
		setting.BookmarkExpiration,
		setting.CreatedAt,
		setting.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrSettingAlreadyExists
		}
		return fmt.Errorf("failed to create user setting: %w", err)
	}
	return nil
}

func (s *UserSettingStore) Get(ctx context.Context, userID, settingType string) (*models.UserSetting, error) {
	query := `SELECT ` + settingColumns + ` FROM user_settings WHERE user_id = $1 AND type = $2`

	setting, err := scanSetting(s.pool.QueryRow(ctx, query, userID, settingType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get user setting: %w", err)
	}
	return setting, nil
}

func (s *UserSettingStore) ListByUser(ctx context.Context, userID string) ([]*models.UserSetting, error) {
	query := `SELECT ` + settingColumns + ` FROM user_settings WHERE user_id = $1 ORDER BY type`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user settings: %w", err)
	}
	defer rows.Close()

	return collectSettings(rows)
}

func (s *UserSettingStore) Update(ctx context.Context, setting *models.UserSetting) error {
	setting.UpdatedAt = time.Now()

	query := `
		UPDATE user_settings SET
			list_limit = $3,
			bookmark_expiration = $4,
			updated_at = $5
		WHERE user_id = $1 AND type = $2
	`

	result, err := s.pool.Exec(ctx, query,
		setting.UserID,
		setting.Type,
		setting.ListLimit,
		setting.BookmarkExpiration,
		setting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user setting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrSettingNotFound
	}
	return nil
}

func (s *UserSettingStore) Delete(ctx context.Context, userID, settingType string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM user_settings WHERE user_id = $1 AND type = $2`, userID, settingType)
	if err != nil {
		return fmt.Errorf("failed to delete user setting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrSettingNotFound
	}
	return nil
}

func (s *UserSettingStore) DeleteByUser(ctx context.Context, userID string, includeDefault bool) ([]*models.UserSetting, error) {
	query := `DELETE FROM user_settings WHERE user_id = $1`
	args := []any{userID}
	if !includeDefault {
		query += ` AND type <> $2`
		args = append(args, models.DefaultSettingType)
	}
	query += ` RETURNING ` + settingColumns

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user settings: %w", err)
	}
	defer rows.Close()

	removed, err := collectSettings(rows)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, store.ErrSettingNotFound
	}
	return removed, nil
}

func scanSetting(row pgx.Row) (*models.UserSetting, error) {
	var setting models.UserSetting
	err := row.Scan(
		&setting.UserID,
		&setting.Type,
		&setting.ListLimit,
		&setting.BookmarkExpiration,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func collectSettings(rows pgx.Rows) ([]*models.UserSetting, error) {
	var settings []*models.UserSetting
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user setting: %w", err)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user settings: %w", err)
	}
	return settings, nil
}
