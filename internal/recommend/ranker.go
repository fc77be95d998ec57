// Package recommend ranks knowledge-base items against a ticket description
// and decides whether the ticket describes a novel problem.
package recommend

import (
	"math"
	"sort"

	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/similarity"
	"github.com/deskhive/deskhive/internal/text"
)

const (
	// NoveltyThreshold marks a ticket as novel when its best match
	// scores below it.
	NoveltyThreshold = 0.20

	// MinDisplayPercent is the smallest similarity percent worth
	// surfacing to a specialist.
	MinDisplayPercent = 5

	// DefaultTopK is the number of recommendations returned.
	DefaultTopK = 3
)

// Recommendation is one ranked suggestion out of a ranking run.
type Recommendation struct {
	KBItemID          string
	Rank              int
	SimilarityPercent int
	Problem           string
	Solution          string
}

// Result is the outcome of ranking a ticket against the knowledge base.
// MaxSimilarityPercent reflects the best pre-filter score, so it can be
// non-zero even when no recommendation clears the display threshold.
type Result struct {
	IsNovel              bool
	MaxSimilarityPercent int
	Recommendations      []Recommendation
}

// Ranker scores candidate knowledge items against ticket text. It is
// stateless apart from the shared normalizer and safe for concurrent use.
type Ranker struct {
	normalizer *text.Normalizer
}

func NewRanker(normalizer *text.Normalizer) *Ranker {
	return &Ranker{normalizer: normalizer}
}

// Rank normalizes the ticket description and every candidate's combined
// problem+solution text, scores the survivors in a shared vector space, and
// returns the top topK above the display threshold with contiguous 1-based
// ranks. Empty normalized input is treated as maximally novel, not as an
// error. topK <= 0 falls back to DefaultTopK.
func (r *Ranker) Rank(ticketDescription string, items []*domain.KnowledgeItem, topK int) Result {
	if topK <= 0 {
		topK = DefaultTopK
	}

	novel := Result{IsNovel: true, MaxSimilarityPercent: 0, Recommendations: []Recommendation{}}

	if len(items) == 0 {
		return novel
	}

	queryTokens := r.normalizer.Normalize(ticketDescription)
	if len(queryTokens) == 0 {
		return novel
	}

	// Candidates whose text normalizes to nothing cannot contribute a
	// meaningful score and are dropped before vectorization.
	var corpus [][]string
	var candidates []*domain.KnowledgeItem
	for _, item := range items {
		tokens := r.normalizer.Normalize(item.Problem + " " + item.Solution)
		if len(tokens) == 0 {
			continue
		}
		corpus = append(corpus, tokens)
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		return novel
	}

	scores := similarity.Score(queryTokens, corpus)

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > topK {
		order = order[:topK]
	}

	recs := make([]Recommendation, 0, len(order))
	rank := 1
	for _, idx := range order {
		percent := toPercent(scores[idx])
		if percent < MinDisplayPercent {
			continue
		}
		recs = append(recs, Recommendation{
			KBItemID:          candidates[idx].ID,
			Rank:              rank,
			SimilarityPercent: percent,
			Problem:           candidates[idx].Problem,
			Solution:          candidates[idx].Solution,
		})
		rank++
	}

	return Result{
		IsNovel:              maxScore < NoveltyThreshold,
		MaxSimilarityPercent: toPercent(maxScore),
		Recommendations:      recs,
	}
}

// percentEpsilon absorbs float64 rounding in the cosine: an exact match
// comes out as 0.999... and must still report 100.
const percentEpsilon = 1e-9

// toPercent truncates, it does not round: 0.199 is 19%, keeping the audit
// trail consistent with the novelty comparison on the raw score.
func toPercent(score float64) int {
	return int(math.Floor(score*100 + percentEpsilon))
}
