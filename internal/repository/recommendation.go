package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskhive/deskhive/internal/domain"
)

type RecommendationRepository struct {
	db dbtx
}

func NewRecommendationRepository(pool *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{db: pool}
}

func NewRecommendationRepositoryWithTx(tx pgx.Tx) *RecommendationRepository {
	return &RecommendationRepository{db: tx}
}

// InsertBatch appends one audit batch. Batches are never updated except for
// the accepted flag.
func (r *RecommendationRepository) InsertBatch(ctx context.Context, recs []*domain.Recommendation) error {
	for _, rec := range recs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO ticket_recommendations (id, ticket_id, kb_item_id, similarity, rank, was_accepted, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rec.ID, rec.TicketID, rec.KBItemID, rec.Similarity, rec.Rank, rec.WasAccepted, rec.CreatedAt,
		)
		if err != nil {
			return domain.NewStorageError(err)
		}
	}
	return nil
}

// MarkAccepted flags every recommendation row for the ticket/item pair, not
// just the latest batch.
func (r *RecommendationRepository) MarkAccepted(ctx context.Context, ticketID, kbItemID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE ticket_recommendations SET was_accepted = TRUE
		 WHERE ticket_id = $1 AND kb_item_id = $2`,
		ticketID, kbItemID,
	)
	if err != nil {
		return domain.NewStorageError(err)
	}
	return nil
}

func (r *RecommendationRepository) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Recommendation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, ticket_id, kb_item_id, similarity, rank, was_accepted, created_at
		 FROM ticket_recommendations WHERE ticket_id = $1 ORDER BY created_at ASC, rank ASC`,
		ticketID,
	)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	defer rows.Close()

	var results []*domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		if err := rows.Scan(&rec.ID, &rec.TicketID, &rec.KBItemID, &rec.Similarity, &rec.Rank, &rec.WasAccepted, &rec.CreatedAt); err != nil {
			return nil, domain.NewStorageError(err)
		}
		results = append(results, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(err)
	}
	return results, nil
}
