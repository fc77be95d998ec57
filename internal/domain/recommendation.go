package domain

import "time"

// Recommendation is one row of the append-only audit trail written when a
// specialist requests suggestions for a ticket. Similarity is a truncated
// integer percent (0-100) so the audit trail stays format-stable. Rank is
// 1-based and contiguous within a batch, strictly increasing as similarity
// decreases.
type Recommendation struct {
	ID          string
	TicketID    string
	KBItemID    string
	Similarity  int
	Rank        int
	WasAccepted bool
	CreatedAt   time.Time
}

// ValidateRecommendation validates a Recommendation instance
func ValidateRecommendation(r *Recommendation) error {
	if r == nil {
		return NewDomainError(ErrCodeValidation, "recommendation cannot be nil")
	}

	if r.ID == "" {
		return NewDomainError(ErrCodeValidation, "recommendation ID is required")
	}

	if r.TicketID == "" {
		return NewDomainError(ErrCodeValidation, "recommendation TicketID is required")
	}

	if r.KBItemID == "" {
		return NewDomainError(ErrCodeValidation, "recommendation KBItemID is required")
	}

	if r.Similarity < 0 || r.Similarity > 100 {
		return NewDomainError(ErrCodeValidation, "recommendation Similarity must be between 0 and 100")
	}

	if r.Rank < 1 {
		return NewDomainError(ErrCodeValidation, "recommendation Rank must be positive")
	}

	return nil
}
