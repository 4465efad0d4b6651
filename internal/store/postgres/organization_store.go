package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// OrganizationStore implements store.OrganizationStore using PostgreSQL.
type OrganizationStore struct {
	pool *pgxpool.Pool
}

// NewOrganizationStore creates a PostgreSQL-backed organization store
// sharing the given connection pool.
func NewOrganizationStore(pool *pgxpool.Pool) *OrganizationStore {
	return &OrganizationStore{pool: pool}
}

const organizationColumns = `id, name, status, is_deletable, locale, currency, timezone, parent_id, created_at, updated_at`

func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		org.ID,
		org.Name,
		org.Status,
		org.IsDeletable,
		org.Locale,
		org.Currency,
		org.Timezone,
		org.ParentID,
		org.CreatedAt,
		org.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrOrganizationAlreadyExists
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}

	log.Debug().Str("id", org.ID).Str("name", org.Name).Msg("Created organization")

	return nil
}

func (s *OrganizationStore) Get(ctx context.Context, id string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

	org, err := scanOrganization(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

func (s *OrganizationStore) Update(ctx context.Context, org *models.Organization) error {
	org.UpdatedAt = time.Now()

	query := `
		UPDATE organizations SET
			name = $2,
			status = $3,
			is_deletable = $4,
			locale = $5,
			currency = $6,
			timezone = $7,
			parent_id = $8,
			updated_at = $9
		WHERE id = $1
	`

	result, err := s.pool.Exec(ctx, query,
		org.ID,
		org.Name,
		org.Status,
		org.IsDeletable,
		org.Locale,
		org.Currency,
		org.Timezone,
		org.ParentID,
		org.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrOrganizationNotFound
	}

	log.Debug().Str("id", org.ID).Msg("Updated organization")

	return nil
}

func (s *OrganizationStore) Delete(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrOrganizationNotFound
	}

	log.Debug().Str("id", id).Msg("Deleted organization")

	return nil
}

func (s *OrganizationStore) List(ctx context.Context, filter store.ListFilter) ([]*models.Organization, error) {
	// An organization's owning tenant is itself, so the tenant restriction
	// applies to the id column.
	query, args := buildListQueryOrgColumn(`SELECT `+organizationColumns+` FROM organizations`, filter, "id")

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	return collectOrganizations(rows)
}

func (s *OrganizationStore) ListAll(ctx context.Context) ([]*models.Organization, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	return collectOrganizations(rows)
}

func (s *OrganizationStore) CountChildren(ctx context.Context, id string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM organizations WHERE parent_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var org models.Organization
	err := row.Scan(
		&org.ID,
		&org.Name,
		&org.Status,
		&org.IsDeletable,
		&org.Locale,
		&org.Currency,
		&org.Timezone,
		&org.ParentID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func collectOrganizations(rows pgx.Rows) ([]*models.Organization, error) {
	var orgs []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}
	return orgs, nil
}
