package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserBookmarkStore implements store.UserBookmarkStore using PostgreSQL.
type UserBookmarkStore struct {
	pool *pgxpool.Pool
}

// NewUserBookmarkStore creates a PostgreSQL-backed bookmark store sharing
// the given connection pool.
func NewUserBookmarkStore(pool *pgxpool.Pool) *UserBookmarkStore {
	return &UserBookmarkStore{pool: pool}
}

const bookmarkColumns = `user_id, type, object_id, created_at`

func (s *UserBookmarkStore) Create(ctx context.Context, bookmark *models.UserBookmark) error {
	query := `
		INSERT INTO user_bookmarks (` + bookmarkColumns + `)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query,
		bookmark.UserID,
		bookmark.Type,
		bookmark.ObjectID,
		bookmark.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrBookmarkAlreadyExists
		}
		return fmt.Errorf("failed to create user bookmark: %w", err)
	}
	return nil
}

func (s *UserBookmarkStore) Get(ctx context.Context, userID, bookmarkType, objectID string) (*models.UserBookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM user_bookmarks WHERE user_id = $1 AND type = $2 AND object_id = $3`

	bookmark, err := scanBookmark(s.pool.QueryRow(ctx, query, userID, bookmarkType, objectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("failed to get user bookmark: %w", err)
	}
	return bookmark, nil
}

func (s *UserBookmarkStore) ListByUser(ctx context.Context, userID string) ([]*models.UserBookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM user_bookmarks WHERE user_id = $1 ORDER BY type, object_id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookmarks: %w", err)
	}
	defer rows.Close()

	return collectBookmarks(rows)
}

func (s *UserBookmarkStore) ListByUserAndType(ctx context.Context, userID, bookmarkType string) ([]*models.UserBookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM user_bookmarks WHERE user_id = $1 AND type = $2 ORDER BY object_id`

	rows, err := s.pool.Query(ctx, query, userID, bookmarkType)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookmarks: %w", err)
	}
	defer rows.Close()

	return collectBookmarks(rows)
}

func (s *UserBookmarkStore) Delete(ctx context.Context, userID, bookmarkType, objectID string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM user_bookmarks WHERE user_id = $1 AND type = $2 AND object_id = $3`, userID, bookmarkType, objectID)
	if err != nil {
		return fmt.Errorf("failed to delete user bookmark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrBookmarkNotFound
	}
	return nil
}

func (s *UserBookmarkStore) DeleteByUser(ctx context.Context, userID string) ([]*models.UserBookmark, error) {
	return s.deleteMatching(ctx, `DELETE FROM user_bookmarks WHERE user_id = $1 RETURNING `+bookmarkColumns, userID)
}

func (s *UserBookmarkStore) DeleteByUserAndType(ctx context.Context, userID, bookmarkType string) ([]*models.UserBookmark, error) {
	return s.deleteMatching(ctx, `DELETE FROM user_bookmarks WHERE user_id = $1 AND type = $2 RETURNING `+bookmarkColumns, userID, bookmarkType)
}

func (s *UserBookmarkStore) deleteMatching(ctx context.Context, query string, args ...any) ([]*models.UserBookmark, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user bookmarks: %w", err)
	}
	defer rows.Close()

	removed, err := collectBookmarks(rows)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, store.ErrBookmarkNotFound
	}
	return removed, nil
}

func scanBookmark(row pgx.Row) (*models.UserBookmark, error) {
	var bookmark models.UserBookmark
	err := row.Scan(
		&bookmark.UserID,
		&bookmark.Type,
		&bookmark.ObjectID,
		&bookmark.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func collectBookmarks(rows pgx.Rows) ([]*models.UserBookmark, error) {
	var bookmarks []*models.UserBookmark
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user bookmark: %w", err)
		}
		bookmarks = append(bookmarks, bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user bookmarks: %w", err)
	}
	return bookmarks, nil
}
