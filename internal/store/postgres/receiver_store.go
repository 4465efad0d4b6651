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

// ReceiverStore implements store.ReceiverStore using PostgreSQL.
type ReceiverStore struct {
	pool *pgxpool.Pool
}

// NewReceiverStore creates a PostgreSQL-backed receiver store sharing the
// given connection pool.
func NewReceiverStore(pool *pgxpool.Pool) *ReceiverStore {
	return &ReceiverStore{pool: pool}
}

const receiverColumns = `id, name, name_add, country, postal_code, city, street, email, phone, fax, web_site, status, is_deletable, org_id, created_at, updated_at`

func (s *ReceiverStore) Create(ctx context.Context, rcv *models.Receiver) error {
	query := `
		INSERT INTO receivers (` + receiverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := s.pool.Exec(ctx, query,
		rcv.ID,
		rcv.Name,
		rcv.NameAdd,
		rcv.Country,
		rcv.PostalCode,
		rcv.City,
		rcv.Street,
		rcv.Email,
		rcv.Phone,
		rcv.Fax,
		rcv.WebSite,
		rcv.Status,
		rcv.IsDeletable,
		rcv.OrgID,
		rcv.CreatedAt,
		rcv.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrReceiverAlreadyExists
		}
		return fmt.Errorf("failed to create receiver: %w", err)
	}

	log.Debug().Str("id", rcv.ID).Str("org_id", rcv.OrgID).Msg("Created receiver")

	return nil
}

func (s *ReceiverStore) Get(ctx context.Context, id string) (*models.Receiver, error) {
	query := `SELECT ` + receiverColumns + ` FROM receivers WHERE id = $1`

	rcv, err := scanReceiver(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrReceiverNotFound
		}
		return nil, fmt.Errorf("failed to get receiver: %w", err)
	}
	return rcv, nil
}

func (s *ReceiverStore) Update(ctx context.Context, rcv *models.Receiver) error {
	rcv.UpdatedAt = time.Now()

	query := `
		UPDATE receivers SET
			name = $2,
			name_add = $3,
			country = $4,
			postal_code = $5,
			city = $6,
			street = $7,
			email = $8,
			phone = $9,
			fax = $10,
			web_site = $11,
			status = $12,
			is_deletable = $13,
			org_id = $14,
			updated_at = $15
		WHERE id = $1
	`

	result, err := s.pool.Exec(ctx, query,
		rcv.ID,
		rcv.Name,
		rcv.NameAdd,
		rcv.Country,
		rcv.PostalCode,
		rcv.City,
		rcv.Street,
		rcv.Email,
		rcv.Phone,
		rcv.Fax,
		rcv.WebSite,
		rcv.Status,
		rcv.IsDeletable,
		rcv.OrgID,
		rcv.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update receiver: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrReceiverNotFound
	}

	return nil
}

func (s *ReceiverStore) Delete(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM receivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete receiver: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrReceiverNotFound
	}

	log.Debug().Str("id", id).Msg("Deleted receiver")

	return nil
}

func (s *ReceiverStore) List(ctx context.Context, filter store.ListFilter) ([]*models.Receiver, error) {
	query, args := buildListQuery(`SELECT `+receiverColumns+` FROM receivers`, filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivers: %w", err)
	}
	defer rows.Close()

	var receivers []*models.Receiver
	for rows.Next() {
		rcv, err := scanReceiver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receiver: %w", err)
		}
		receivers = append(receivers, rcv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receivers: %w", err)
	}
	return receivers, nil
}

func (s *ReceiverStore) CountByOrg(ctx context.Context, orgID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM receivers WHERE org_id = $1`, orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count receivers: %w", err)
	}
	return count, nil
}

func (s *ReceiverStore) MaxID(ctx context.Context) (string, error) {
	// IDs are numeric strings allocated sequentially; compare numerically.
	var maxID *string
	err := s.pool.QueryRow(ctx, `SELECT MAX(id::bigint)::text FROM receivers WHERE id ~ '^[0-9]+$'`).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get max receiver id: %w", err)
	}
	if maxID == nil {
		return "", nil
	}
	return *maxID, nil
}

func scanReceiver(row pgx.Row) (*models.Receiver, error) {
	var rcv models.Receiver
	err := row.Scan(
		&rcv.ID,
		&rcv.Name,
		&rcv.NameAdd,
		&rcv.Country,
		&rcv.PostalCode,
		&rcv.City,
		&rcv.Street,
		&rcv.Email,
		&rcv.Phone,
		&rcv.Fax,
		&rcv.WebSite,
		&rcv.Status,
		&rcv.IsDeletable,
		&rcv.OrgID,
		&rcv.CreatedAt,
		&rcv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rcv, nil
}
