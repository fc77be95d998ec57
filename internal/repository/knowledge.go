package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskhive/deskhive/internal/domain"
)

// DedupPrefixLength is how many leading characters of a supplied solution
// participate in the case-insensitive dedup lookup. A heuristic carried over
// deliberately, not a correctness guarantee.
const DedupPrefixLength = 50

type KnowledgeRepository struct {
	db dbtx
}

func NewKnowledgeRepository(pool *pgxpool.Pool) *KnowledgeRepository {
	return &KnowledgeRepository{db: pool}
}

func NewKnowledgeRepositoryWithTx(tx pgx.Tx) *KnowledgeRepository {
	return &KnowledgeRepository{db: tx}
}

func (r *KnowledgeRepository) Insert(ctx context.Context, k *domain.KnowledgeItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO knowledge_base (id, problem, solution, frequency, is_auto_generated, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		k.ID, k.Problem, k.Solution, k.Frequency, k.IsAutoGenerated, k.CreatedAt,
	)
	if err != nil {
		return domain.NewStorageError(err)
	}
	return nil
}

func (r *KnowledgeRepository) Get(ctx context.Context, id string) (*domain.KnowledgeItem, error) {
	var k domain.KnowledgeItem
	err := r.db.QueryRow(ctx,
		`SELECT id, problem, solution, frequency, is_auto_generated, created_at
		 FROM knowledge_base WHERE id = $1`,
		id,
	).Scan(&k.ID, &k.Problem, &k.Solution, &k.Frequency, &k.IsAutoGenerated, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKnowledgeNotFound
		}
		return nil, domain.NewStorageError(err)
	}
	return &k, nil
}

func (r *KnowledgeRepository) TopByFrequency(ctx context.Context, n int) ([]*domain.KnowledgeItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, problem, solution, frequency, is_auto_generated, created_at
		 FROM knowledge_base ORDER BY frequency DESC, created_at ASC LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	defer rows.Close()
	return scanKnowledgeRows(rows)
}

// FindBySolutionSubstring returns the first item whose solution contains the
// leading DedupPrefixLength characters of text, case-insensitively. A nil
// item with nil error means no match.
func (r *KnowledgeRepository) FindBySolutionSubstring(ctx context.Context, text string) (*domain.KnowledgeItem, error) {
	prefix := []rune(text)
	if len(prefix) > DedupPrefixLength {
		prefix = prefix[:DedupPrefixLength]
	}

	var k domain.KnowledgeItem
	err := r.db.QueryRow(ctx,
		`SELECT id, problem, solution, frequency, is_auto_generated, created_at
		 FROM knowledge_base WHERE solution ILIKE '%' || $1 || '%' LIMIT 1`,
		string(prefix),
	).Scan(&k.ID, &k.Problem, &k.Solution, &k.Frequency, &k.IsAutoGenerated, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError(err)
	}
	return &k, nil
}

// IncrementFrequency reinforces an accepted item. A vanished id is a no-op,
// not an error.
func (r *KnowledgeRepository) IncrementFrequency(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE knowledge_base SET frequency = frequency + 1 WHERE id = $1`,
		id,
	)
	if err != nil {
		return domain.NewStorageError(err)
	}
	return nil
}

// Stats returns the item count and the summed frequency across the base.
func (r *KnowledgeRepository) Stats(ctx context.Context) (total int, usage int, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(frequency), 0) FROM knowledge_base`,
	).Scan(&total, &usage)
	if err != nil {
		return 0, 0, domain.NewStorageError(err)
	}
	return total, usage, nil
}

func scanKnowledgeRows(rows pgx.Rows) ([]*domain.KnowledgeItem, error) {
	var results []*domain.KnowledgeItem
	for rows.Next() {
		var k domain.KnowledgeItem
		if err := rows.Scan(&k.ID, &k.Problem, &k.Solution, &k.Frequency, &k.IsAutoGenerated, &k.CreatedAt); err != nil {
			return nil, domain.NewStorageError(err)
		}
		results = append(results, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(err)
	}
	return results, nil
}
