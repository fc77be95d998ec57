package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/pagination"
	"github.com/deskhive/deskhive/internal/service"
)

type TicketRepository struct {
	db dbtx
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: pool}
}

func NewTicketRepositoryWithTx(tx pgx.Tx) *TicketRepository {
	return &TicketRepository{db: tx}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tickets (id, description, contact_info, status, client_id, specialist_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Description, t.ContactInfo, t.Status, t.ClientID, nullableString(t.SpecialistID), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return domain.NewStorageError(err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	var specialistID *string
	err := r.db.QueryRow(ctx,
		`SELECT id, description, contact_info, status, client_id, specialist_id, created_at, updated_at
		 FROM tickets WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Description, &t.ContactInfo, &t.Status, &t.ClientID, &specialistID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, domain.NewStorageError(err)
	}
	if specialistID != nil {
		t.SpecialistID = *specialistID
	}
	return &t, nil
}

// UpdateStatusIfCurrently performs the compare-and-set at the heart of the
// lifecycle: the status mutation commits only if the row still holds the
// expected status. Returns false when another transition won the race or the
// guard simply does not hold.
func (r *TicketRepository) UpdateStatusIfCurrently(ctx context.Context, id string, expected domain.TicketStatus, update service.StatusUpdate) (bool, error) {
	now := time.Now().UTC()

	var cmdTag interface{ RowsAffected() int64 }
	var err error
	if update.SetSpecialist {
		cmdTag, err = r.db.Exec(ctx,
			`UPDATE tickets SET status = $1, specialist_id = $2, updated_at = $3
			 WHERE id = $4 AND status = $5`,
			update.New, nullableString(update.SpecialistID), now, id, expected,
		)
	} else {
		cmdTag, err = r.db.Exec(ctx,
			`UPDATE tickets SET status = $1, updated_at = $2
			 WHERE id = $3 AND status = $4`,
			update.New, now, id, expected,
		)
	}
	if err != nil {
		return false, domain.NewStorageError(err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *TicketRepository) ListByClient(ctx context.Context, clientID string, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error) {
	return r.list(ctx,
		`SELECT id, description, contact_info, status, client_id, specialist_id, created_at, updated_at
		 FROM tickets WHERE client_id = $1`,
		[]any{clientID}, cursor, limit)
}

func (r *TicketRepository) ListByStatus(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error) {
	return r.list(ctx,
		`SELECT id, description, contact_info, status, client_id, specialist_id, created_at, updated_at
		 FROM tickets WHERE status = $1`,
		[]any{status}, cursor, limit)
}

func (r *TicketRepository) ListBySpecialist(ctx context.Context, specialistID string, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error) {
	return r.list(ctx,
		`SELECT id, description, contact_info, status, client_id, specialist_id, created_at, updated_at
		 FROM tickets WHERE specialist_id = $1 AND status = $2`,
		[]any{specialistID, status}, cursor, limit)
}

func (r *TicketRepository) list(ctx context.Context, baseQuery string, args []any, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	query := baseQuery
	if cursor != nil {
		query += ` AND (created_at, id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, cursor.Timestamp, cursor.LastID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	defer rows.Close()

	items, err := scanTicketRows(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		nextCursor = pagination.EncodeCursor(last.ID, last.CreatedAt)
	}

	return &service.TicketPageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *TicketRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&n); err != nil {
		return 0, domain.NewStorageError(err)
	}
	return n, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, domain.NewStorageError(err)
	}
	return n, nil
}

func scanTicketRows(rows pgx.Rows) ([]*domain.Ticket, error) {
	var results []*domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		var specialistID *string
		if err := rows.Scan(&t.ID, &t.Description, &t.ContactInfo, &t.Status, &t.ClientID, &specialistID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, domain.NewStorageError(err)
		}
		if specialistID != nil {
			t.SpecialistID = *specialistID
		}
		results = append(results, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(err)
	}
	return results, nil
}

